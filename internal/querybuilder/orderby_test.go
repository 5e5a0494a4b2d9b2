package querybuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderby_Rand(t *testing.T) {
	t.Run("rand discards prior fields", func(t *testing.T) {
		out := NewOrderby().
			AddWithOrder("created_at", Desc).
			Add("title").
			SetOrder(Desc).
			Rand().
			Export()

		assert.Equal(t, map[string]any{"orderby": "rand"}, out)
	})

	t.Run("clear resets random mode", func(t *testing.T) {
		out := NewOrderby().Rand().Clear().Add("title").Export()
		_, isRand := out["orderby"].(string)
		assert.False(t, isRand)
	})
}

func TestOrderby_Export(t *testing.T) {
	out := NewOrderby().
		AddWithOrder("created_at", Desc).
		Add("title").
		SetOrder(Asc).
		Export()

	assert.Equal(t, "ASC", out["order"])
	entries, ok := out["orderby"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, entries, 2)
	assert.Equal(t, "DESC", entries[0]["order"])
	_, hasOrder := entries[1]["order"]
	assert.False(t, hasOrder, "fields without their own direction defer to the global one")
}

func TestOrderby_GlobalOrderOnlyWhenSet(t *testing.T) {
	out := NewOrderby().Add("title").Export()
	_, hasOrder := out["order"]
	assert.False(t, hasOrder)
}

func TestOrderby_DirectionNormalized(t *testing.T) {
	out := NewOrderby().SetOrder("desc").Add("id").Export()
	assert.Equal(t, "DESC", out["order"])

	out = NewOrderby().SetOrder("sideways").Add("id").Export()
	assert.Equal(t, "ASC", out["order"])
}

func TestOrderby_Empty(t *testing.T) {
	assert.Empty(t, NewOrderby().Export())
	assert.Empty(t, NewOrderby().Add("title").Clear().Export())
}
