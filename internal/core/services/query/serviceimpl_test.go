package query

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arraypress/contentquery/internal/config"
	"github.com/arraypress/contentquery/internal/domain"
)

type mockContentPort struct {
	queryFn func(ctx context.Context, q domain.ContentQuery) (*domain.ContentResult, error)
}

func (m *mockContentPort) Save(context.Context, *domain.Content) error { return nil }
func (m *mockContentPort) Get(context.Context, uuid.UUID) (*domain.Content, error) {
	return nil, nil
}
func (m *mockContentPort) Query(ctx context.Context, q domain.ContentQuery) (*domain.ContentResult, error) {
	return m.queryFn(ctx, q)
}
func (m *mockContentPort) SetMeta(context.Context, uuid.UUID, string, string) error { return nil }
func (m *mockContentPort) Delete(context.Context, uuid.UUID) error                  { return nil }

type mockTransients struct {
	store map[string][]byte
}

func newMockTransients() *mockTransients {
	return &mockTransients{store: map[string][]byte{}}
}

func (m *mockTransients) Get(_ context.Context, key string) ([]byte, error) {
	return m.store[key], nil
}

func (m *mockTransients) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.store[key] = value
	return nil
}

func (m *mockTransients) Delete(_ context.Context, key string) error {
	delete(m.store, key)
	return nil
}

func (m *mockTransients) DeleteByPrefix(_ context.Context, prefix string) error {
	for key := range m.store {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(m.store, key)
		}
	}
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}

func testCfg() *config.TransientCfg {
	return &config.TransientCfg{
		DefaultTTL: 5 * time.Minute,
		QueryTTL:   time.Minute,
	}
}

func TestSearchCaching(t *testing.T) {
	req := Request{
		ContentType: "download",
		Meta: []MetaClause{
			{Key: "price", Value: 10, Compare: ">"},
		},
	}

	t.Run("repeated search hits the cache", func(t *testing.T) {
		calls := 0
		port := &mockContentPort{
			queryFn: func(_ context.Context, _ domain.ContentQuery) (*domain.ContentResult, error) {
				calls++
				return &domain.ContentResult{Total: 3}, nil
			},
		}
		svc := NewQueryService(port, newMockTransients(), testCfg(), nopLogger{})

		first, err := svc.Search(context.Background(), req)
		require.NoError(t, err)
		second, err := svc.Search(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, 1, calls)
		assert.Equal(t, first.Total, second.Total)
	})

	t.Run("invalidate forces a fresh query", func(t *testing.T) {
		calls := 0
		port := &mockContentPort{
			queryFn: func(_ context.Context, _ domain.ContentQuery) (*domain.ContentResult, error) {
				calls++
				return &domain.ContentResult{Total: int64(calls)}, nil
			},
		}
		svc := NewQueryService(port, newMockTransients(), testCfg(), nopLogger{})

		_, err := svc.Search(context.Background(), req)
		require.NoError(t, err)
		require.NoError(t, svc.InvalidateCache(context.Background()))

		result, err := svc.Search(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 2, calls)
		assert.Equal(t, int64(2), result.Total)
	})

	t.Run("random order bypasses the cache", func(t *testing.T) {
		calls := 0
		port := &mockContentPort{
			queryFn: func(_ context.Context, _ domain.ContentQuery) (*domain.ContentResult, error) {
				calls++
				return &domain.ContentResult{}, nil
			},
		}
		svc := NewQueryService(port, newMockTransients(), testCfg(), nopLogger{})

		randReq := Request{ContentType: "download", RandomOrder: true}
		_, err := svc.Search(context.Background(), randReq)
		require.NoError(t, err)
		_, err = svc.Search(context.Background(), randReq)
		require.NoError(t, err)

		assert.Equal(t, 2, calls)
	})
}

func TestSearchAssembly(t *testing.T) {
	t.Run("two meta clauses get the default AND relation", func(t *testing.T) {
		var captured domain.ContentQuery
		port := &mockContentPort{
			queryFn: func(_ context.Context, q domain.ContentQuery) (*domain.ContentResult, error) {
				captured = q
				return &domain.ContentResult{}, nil
			},
		}
		svc := NewQueryService(port, newMockTransients(), testCfg(), nopLogger{})

		_, err := svc.Search(context.Background(), Request{
			Meta: []MetaClause{
				{Key: "color", Value: "red"},
				{Key: "size", Value: "xl"},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, "AND", captured.Meta["relation"])
		conditions, ok := captured.Meta["conditions"].([]map[string]interface{})
		require.True(t, ok)
		require.Len(t, conditions, 2)
		assert.Equal(t, "=", conditions[0]["compare"])
	})

	t.Run("explicit OR relation carries through", func(t *testing.T) {
		var captured domain.ContentQuery
		port := &mockContentPort{
			queryFn: func(_ context.Context, q domain.ContentQuery) (*domain.ContentResult, error) {
				captured = q
				return &domain.ContentResult{}, nil
			},
		}
		svc := NewQueryService(port, newMockTransients(), testCfg(), nopLogger{})

		_, err := svc.Search(context.Background(), Request{
			Tax: []TaxClause{
				{Taxonomy: "category", Terms: []interface{}{1}},
				{Taxonomy: "tag", Terms: []interface{}{"sale"}},
			},
			TaxRelation: "or",
		})
		require.NoError(t, err)
		assert.Equal(t, "OR", captured.Tax["relation"])
	})

	t.Run("random order discards orderby fields", func(t *testing.T) {
		var captured domain.ContentQuery
		port := &mockContentPort{
			queryFn: func(_ context.Context, q domain.ContentQuery) (*domain.ContentResult, error) {
				captured = q
				return &domain.ContentResult{}, nil
			},
		}
		svc := NewQueryService(port, newMockTransients(), testCfg(), nopLogger{})

		_, err := svc.Search(context.Background(), Request{
			Orderby:     []OrderClause{{Field: "title", Order: "DESC"}},
			RandomOrder: true,
		})
		require.NoError(t, err)
		assert.Equal(t, map[string]interface{}{"orderby": "rand"}, captured.Orderby)
	})
}
