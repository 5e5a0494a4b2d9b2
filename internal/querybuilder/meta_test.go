package querybuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetaQuery_DefaultRelation(t *testing.T) {
	t.Run("two entries get AND injected", func(t *testing.T) {
		out := NewMetaQuery().
			Equals("status", "approved").
			Equals("type", "post").
			Export()

		assert.Equal(t, "AND", out["relation"])
		conditions, ok := out["conditions"].([]map[string]any)
		require.True(t, ok)
		require.Len(t, conditions, 2)
		assert.Equal(t, "status", conditions[0]["key"])
		assert.Equal(t, "approved", conditions[0]["value"])
		assert.Equal(t, "=", conditions[0]["compare"])
	})

	t.Run("single entry omits relation", func(t *testing.T) {
		out := NewMetaQuery().Equals("status", "approved").Export()
		_, hasRelation := out["relation"]
		assert.False(t, hasRelation)
	})

	t.Run("explicit relation wins even for one entry", func(t *testing.T) {
		out := NewMetaQuery().
			Equals("status", "approved").
			SetRelation("or").
			Export()
		assert.Equal(t, "OR", out["relation"])
	})

	t.Run("explicit relation overrides default", func(t *testing.T) {
		out := NewMetaQuery().
			Equals("a", 1).
			Equals("b", 2).
			SetRelation("or").
			Export()
		assert.Equal(t, "OR", out["relation"])
	})
}

func TestMetaQuery_DefaultNotPersisted(t *testing.T) {
	// The injected AND must live in the export only. Clearing down to one
	// entry afterwards has to drop the relation again.
	q := NewMetaQuery().Equals("a", 1).Equals("b", 2)
	out := q.Export()
	assert.Equal(t, "AND", out["relation"])

	q.Clear()
	q.Equals("a", 1)
	out = q.Export()
	_, hasRelation := out["relation"]
	assert.False(t, hasRelation)
}

func TestMetaQuery_Between(t *testing.T) {
	out := NewMetaQuery().Add("price", []any{10, 50}, CompareBetween, "").Export()

	_, hasRelation := out["relation"]
	assert.False(t, hasRelation)

	conditions := out["conditions"].([]map[string]any)
	require.Len(t, conditions, 1)
	assert.Equal(t, "BETWEEN", conditions[0]["compare"])
	assert.Equal(t, []any{10, 50}, conditions[0]["value"])
}

func TestMetaQuery_BetweenFixesNumericHint(t *testing.T) {
	out := NewMetaQuery().
		Between("price", 10, 50).
		NotBetween("stock", 1, 5).
		Export()

	conditions := out["conditions"].([]map[string]any)
	require.Len(t, conditions, 2)
	assert.Equal(t, "BETWEEN", conditions[0]["compare"])
	assert.Equal(t, string(TypeNumeric), conditions[0]["type"])
	assert.Equal(t, "NOT BETWEEN", conditions[1]["compare"])
	assert.Equal(t, string(TypeNumeric), conditions[1]["type"])
}

func TestMetaQuery_ExistsOmitsValue(t *testing.T) {
	out := NewMetaQuery().Exists("color").NotExists("size").Export()
	conditions := out["conditions"].([]map[string]any)
	require.Len(t, conditions, 2)
	for _, entry := range conditions {
		_, hasValue := entry["value"]
		assert.False(t, hasValue)
	}
	assert.Equal(t, "EXISTS", conditions[0]["compare"])
	assert.Equal(t, "NOT EXISTS", conditions[1]["compare"])
}

func TestMetaQuery_Clear(t *testing.T) {
	q := NewMetaQuery().Equals("a", 1).Equals("b", 2).SetRelation("or")
	out := q.Clear().Export()
	assert.Empty(t, out)
}

func TestMetaQuery_ExportIsStable(t *testing.T) {
	q := NewMetaQuery().In("color", "red", "blue").Equals("status", "live")
	first := q.Export()
	second := q.Export()
	assert.Equal(t, first, second)
}

func TestMetaQuery_ExportIsDetached(t *testing.T) {
	q := NewMetaQuery().In("color", "red", "blue")
	out := q.Export()

	conditions := out["conditions"].([]map[string]any)
	conditions[0]["key"] = "mutated"
	conditions[0]["value"].([]any)[0] = "mutated"

	fresh := q.Export()
	entry := fresh["conditions"].([]map[string]any)[0]
	assert.Equal(t, "color", entry["key"])
	assert.Equal(t, "red", entry["value"].([]any)[0])
}

func TestMetaQuery_MutateAfterExport(t *testing.T) {
	q := NewMetaQuery().Equals("a", 1)
	first := q.Export()
	_, hasRelation := first["relation"]
	assert.False(t, hasRelation)

	// The builder stays usable after a finalization call.
	second := q.Equals("b", 2).Export()
	assert.Equal(t, "AND", second["relation"])
	assert.Len(t, second["conditions"], 2)
	assert.Len(t, first["conditions"], 1)
}

func TestMetaQuery_TypeHint(t *testing.T) {
	out := NewMetaQuery().Add("views", 100, CompareEquals, TypeNumeric).Export()
	entry := out["conditions"].([]map[string]any)[0]
	assert.Equal(t, "NUMERIC", entry["type"])

	out = NewMetaQuery().Equals("views", 100).Export()
	entry = out["conditions"].([]map[string]any)[0]
	_, hasType := entry["type"]
	assert.False(t, hasType)
}

func TestSimpleConstructors(t *testing.T) {
	out := SimpleEquals("status", "approved")
	require.Len(t, out["conditions"], 1)
	_, hasRelation := out["relation"]
	assert.False(t, hasRelation)

	out = SimpleIn("category", 1, 2, 3)
	entry := out["conditions"].([]map[string]any)[0]
	assert.Equal(t, "IN", entry["compare"])
	assert.Equal(t, []any{1, 2, 3}, entry["value"])

	out = SimpleBetween("price", 10, 50)
	entry = out["conditions"].([]map[string]any)[0]
	assert.Equal(t, "BETWEEN", entry["compare"])

	out = SimpleExists("color")
	entry = out["conditions"].([]map[string]any)[0]
	assert.Equal(t, "EXISTS", entry["compare"])
}
