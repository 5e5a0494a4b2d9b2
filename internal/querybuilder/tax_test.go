package querybuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaxQuery_Entries(t *testing.T) {
	out := NewTaxQuery().
		In("category", 7, 8).
		NotIn("post_tag", "legacy").
		Export()

	assert.Equal(t, "AND", out["relation"])
	conditions := out["conditions"].([]map[string]any)
	require.Len(t, conditions, 2)

	assert.Equal(t, "category", conditions[0]["taxonomy"])
	assert.Equal(t, "term_id", conditions[0]["field"])
	assert.Equal(t, "IN", conditions[0]["operator"])
	assert.Equal(t, []any{7, 8}, conditions[0]["terms"])
	assert.Equal(t, true, conditions[0]["include_children"])

	assert.Equal(t, "NOT IN", conditions[1]["operator"])
}

func TestTaxQuery_ExistsOmitsTerms(t *testing.T) {
	out := NewTaxQuery().Exists("category").Export()
	entry := out["conditions"].([]map[string]any)[0]
	assert.Equal(t, "EXISTS", entry["operator"])
	_, hasTerms := entry["terms"]
	assert.False(t, hasTerms)
}

func TestTaxQuery_ExcludeChildren(t *testing.T) {
	out := NewTaxQuery().
		In("category", 1).
		In("category", 2).
		ExcludeChildren().
		Export()

	conditions := out["conditions"].([]map[string]any)
	assert.Equal(t, true, conditions[0]["include_children"])
	assert.Equal(t, false, conditions[1]["include_children"])

	// No-op on an empty builder.
	assert.Empty(t, NewTaxQuery().ExcludeChildren().Export())
}

func TestTaxQuery_SlugField(t *testing.T) {
	out := NewTaxQuery().Add("category", FieldSlug, TaxIn, "news").Export()
	entry := out["conditions"].([]map[string]any)[0]
	assert.Equal(t, "slug", entry["field"])
}

func TestTaxQuery_RelationOverride(t *testing.T) {
	out := NewTaxQuery().
		In("category", 1).
		AllOf("post_tag", 2, 3).
		SetRelation("Or").
		Export()
	assert.Equal(t, "OR", out["relation"])
}

func TestSimpleTaxIn(t *testing.T) {
	out := SimpleTaxIn("category", 5)
	require.Len(t, out["conditions"], 1)
	_, hasRelation := out["relation"]
	assert.False(t, hasRelation)
}
