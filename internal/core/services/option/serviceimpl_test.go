package option

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arraypress/contentquery/internal/config"
	"github.com/arraypress/contentquery/internal/static/errs"
)

type mockStore struct {
	values map[string][]byte
	reads  int
}

func newMockStore() *mockStore {
	return &mockStore{values: map[string][]byte{}}
}

func (m *mockStore) Get(_ context.Context, key string) ([]byte, error) {
	m.reads++
	return m.values[key], nil
}

func (m *mockStore) Set(_ context.Context, key string, value []byte, _ bool) error {
	m.values[key] = value
	return nil
}

func (m *mockStore) Delete(_ context.Context, key string) error {
	delete(m.values, key)
	return nil
}

func (m *mockStore) GetAutoload(_ context.Context) (map[string][]byte, error) {
	return m.values, nil
}

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

func newTestService(store *mockStore) IOptionService {
	cfg := &config.TransientCfg{DefaultTTL: 5 * time.Minute, QueryTTL: time.Minute}
	return NewOptionService(store, newMockTransients(), cfg, nopLogger{})
}

func TestOptionRoundTrip(t *testing.T) {
	store := newMockStore()
	svc := newTestService(store)

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, svc.Set(context.Background(), "site_title", "My Site", true))

		var got string
		require.NoError(t, svc.Get(context.Background(), "site_title", &got))
		assert.Equal(t, "My Site", got)
	})

	t.Run("structured values survive encoding", func(t *testing.T) {
		type settings struct {
			PerPage int  `json:"per_page"`
			Strict  bool `json:"strict"`
		}
		require.NoError(t, svc.Set(context.Background(), "query_settings", settings{PerPage: 25, Strict: true}, false))

		var got settings
		require.NoError(t, svc.Get(context.Background(), "query_settings", &got))
		assert.Equal(t, settings{PerPage: 25, Strict: true}, got)
	})

	t.Run("missing option", func(t *testing.T) {
		var got string
		assert.ErrorIs(t, svc.Get(context.Background(), "missing", &got), errs.OptionNotFound)
	})

	t.Run("default fills in for missing options", func(t *testing.T) {
		var got int
		require.NoError(t, svc.GetDefault(context.Background(), "page_size", &got, 50))
		assert.Equal(t, 50, got)
	})

	t.Run("delete removes the option", func(t *testing.T) {
		require.NoError(t, svc.Set(context.Background(), "temp", "x", false))
		require.NoError(t, svc.Delete(context.Background(), "temp"))

		var got string
		assert.ErrorIs(t, svc.Get(context.Background(), "temp", &got), errs.OptionNotFound)
	})
}

func TestOptionCaching(t *testing.T) {
	store := newMockStore()
	svc := newTestService(store)

	require.NoError(t, svc.Set(context.Background(), "site_title", "My Site", true))

	var got string
	require.NoError(t, svc.Get(context.Background(), "site_title", &got))
	reads := store.reads
	require.NoError(t, svc.Get(context.Background(), "site_title", &got))

	assert.Equal(t, reads, store.reads, "second read should come from the cache")
}
