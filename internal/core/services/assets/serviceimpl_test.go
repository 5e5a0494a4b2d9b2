package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arraypress/contentquery/internal/static/errs"
)

func handles(assets []Asset) []string {
	out := make([]string, len(assets))
	for i, a := range assets {
		out[i] = a.Handle
	}
	return out
}

func TestAssetResolve(t *testing.T) {
	svc := NewAssetService()
	require.NoError(t, svc.Register(KindScript, "jquery", "/js/jquery.js", nil, "3.7.1"))
	require.NoError(t, svc.Register(KindScript, "plugin", "/js/plugin.js", []string{"jquery"}, "1.0"))
	require.NoError(t, svc.Register(KindScript, "app", "/js/app.js", []string{"plugin", "jquery"}, "2.0"))

	t.Run("dependencies come before dependents", func(t *testing.T) {
		resolved, err := svc.Resolve(KindScript, "app")
		require.NoError(t, err)
		assert.Equal(t, []string{"jquery", "plugin", "app"}, handles(resolved))
	})

	t.Run("shared dependency appears once", func(t *testing.T) {
		resolved, err := svc.Resolve(KindScript, "app")
		require.NoError(t, err)
		assert.Len(t, resolved, 3)
	})

	t.Run("unknown handle", func(t *testing.T) {
		_, err := svc.Resolve(KindScript, "ghost")
		assert.ErrorIs(t, err, errs.AssetNotFound)
	})

	t.Run("missing dependency", func(t *testing.T) {
		require.NoError(t, svc.Register(KindScript, "broken", "/js/broken.js", []string{"ghost"}, ""))
		_, err := svc.Resolve(KindScript, "broken")
		assert.ErrorIs(t, err, errs.AssetNotFound)
	})
}

func TestAssetResolveCycle(t *testing.T) {
	svc := NewAssetService()
	require.NoError(t, svc.Register(KindScript, "a", "/a.js", []string{"b"}, ""))
	require.NoError(t, svc.Register(KindScript, "b", "/b.js", []string{"a"}, ""))

	_, err := svc.Resolve(KindScript, "a")
	assert.ErrorIs(t, err, errs.AssetCycle)
}

func TestAssetEnqueue(t *testing.T) {
	svc := NewAssetService()
	require.NoError(t, svc.Register(KindStyle, "base", "/base.css", nil, ""))
	require.NoError(t, svc.Register(KindStyle, "theme", "/theme.css", []string{"base"}, ""))

	t.Run("enqueue requires registration", func(t *testing.T) {
		assert.ErrorIs(t, svc.Enqueue(KindStyle, "ghost"), errs.AssetNotFound)
	})

	t.Run("ordered resolve without duplicates", func(t *testing.T) {
		require.NoError(t, svc.Enqueue(KindStyle, "theme"))
		require.NoError(t, svc.Enqueue(KindStyle, "base"))
		require.NoError(t, svc.Enqueue(KindStyle, "theme"))

		resolved, err := svc.ResolveEnqueued(KindStyle)
		require.NoError(t, err)
		assert.Equal(t, []string{"base", "theme"}, handles(resolved))
	})

	t.Run("kinds are separate namespaces", func(t *testing.T) {
		assert.False(t, svc.IsRegistered(KindScript, "base"))
		assert.True(t, svc.IsRegistered(KindStyle, "base"))
	})

	t.Run("dequeue removes from the enqueue list", func(t *testing.T) {
		svc.Dequeue(KindStyle, "theme")
		resolved, err := svc.ResolveEnqueued(KindStyle)
		require.NoError(t, err)
		assert.Equal(t, []string{"base"}, handles(resolved))
	})
}
