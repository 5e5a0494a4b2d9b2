package contentrepository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arraypress/contentquery/internal/domain"
	"github.com/arraypress/contentquery/internal/querybuilder"
)

func TestPrefixedColumns(t *testing.T) {
	assert.Equal(t,
		"c.id, c.type, c.status, c.title, c.slug, c.author_id, c.parent_id, c.created_at, c.updated_at",
		prefixedColumns("c"))
}

func TestBuildWhere(t *testing.T) {
	repo := &contentRepo{}

	t.Run("type and status filters use the table columns", func(t *testing.T) {
		clause, args, err := repo.buildWhere(domain.ContentQuery{
			ContentType: "post",
			Status:      "publish",
		})
		require.NoError(t, err)
		assert.Equal(t, " WHERE c.type = ? AND c.status = ?", clause)
		assert.Equal(t, []any{"post", "publish"}, args)
	})

	t.Run("meta conditions target the meta table", func(t *testing.T) {
		clause, args, err := repo.buildWhere(domain.ContentQuery{
			Meta: querybuilder.SimpleEquals("color", "red"),
		})
		require.NoError(t, err)
		assert.Contains(t, clause, "FROM content_meta m")
		assert.Contains(t, clause, "m.content_id = c.id")
		assert.Equal(t, []any{"color", "red"}, args)
	})

	t.Run("no filters yields no clause", func(t *testing.T) {
		clause, args, err := repo.buildWhere(domain.ContentQuery{})
		require.NoError(t, err)
		assert.Empty(t, clause)
		assert.Nil(t, args)
	})
}
