package querybuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelationshipQuery_Directions(t *testing.T) {
	out := NewRelationshipQuery().
		To("series", 42).
		From("translation").
		Any("related", 1, 2).
		Export()

	assert.Equal(t, "AND", out["relation"])
	conditions := out["conditions"].([]map[string]any)
	require.Len(t, conditions, 3)

	assert.Equal(t, "series", conditions[0]["type"])
	assert.Equal(t, "to", conditions[0]["direction"])
	assert.Equal(t, []any{42}, conditions[0]["items"])

	_, hasItems := conditions[1]["items"]
	assert.False(t, hasItems, "directionless edge match carries no items")
	assert.Equal(t, "from", conditions[1]["direction"])

	assert.Equal(t, "any", conditions[2]["direction"])
}

func TestRelationshipQuery_NoRelation(t *testing.T) {
	out := NewRelationshipQuery().NoRelation("series").Export()
	entry := out["conditions"].([]map[string]any)[0]
	assert.Equal(t, "series", entry["type"])
	assert.Equal(t, true, entry["no_relation"])
	_, hasDirection := entry["direction"]
	assert.False(t, hasDirection)
}

func TestRelationshipQuery_RelationRules(t *testing.T) {
	t.Run("single entry no relation", func(t *testing.T) {
		out := NewRelationshipQuery().To("series", 1).Export()
		_, hasRelation := out["relation"]
		assert.False(t, hasRelation)
	})

	t.Run("explicit or", func(t *testing.T) {
		out := NewRelationshipQuery().
			To("series", 1).
			NoRelation("translation").
			SetRelation("or").
			Export()
		assert.Equal(t, "OR", out["relation"])
	})
}

func TestRelationshipQuery_Clear(t *testing.T) {
	q := NewRelationshipQuery().To("series", 1).SetRelation("or")
	assert.Empty(t, q.Clear().Export())
}
