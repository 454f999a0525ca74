// Package kvtest holds a behavioural suite shared by every KeyValue backend.
package kvtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CaseSim_Go/internal/repository"
)

// Run exercises a fresh store returned by newStore for every subtest
func Run(t *testing.T, newStore func(t *testing.T) repository.KeyValue) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key is not an error", func(t *testing.T) {
		kv := newStore(t)
		v, found, err := kv.Get(ctx, "silver")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, v)

		got, err := kv.GetMany(ctx, "silver", "gold")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("set many then get many round trips", func(t *testing.T) {
		kv := newStore(t)
		values := map[string]string{
			"silver":    "5000",
			"gold":      "900",
			"inventory": `[{"id":"2","name":"Tychki","rarity":"red","collection":"Red"}]`,
		}
		require.NoError(t, kv.SetMany(ctx, values))

		got, err := kv.GetMany(ctx, "silver", "gold", "inventory", "user")
		require.NoError(t, err)
		assert.Equal(t, values, got)

		v, found, err := kv.Get(ctx, "gold")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "900", v)
	})

	t.Run("set many overwrites", func(t *testing.T) {
		kv := newStore(t)
		require.NoError(t, kv.SetMany(ctx, map[string]string{"gold": "1000"}))
		require.NoError(t, kv.SetMany(ctx, map[string]string{"gold": "500"}))

		v, found, err := kv.Get(ctx, "gold")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "500", v)
	})

	t.Run("empty writes are no-ops", func(t *testing.T) {
		kv := newStore(t)
		assert.NoError(t, kv.SetMany(ctx, nil))
		assert.NoError(t, kv.Delete(ctx))

		got, err := kv.GetMany(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("delete removes only named keys", func(t *testing.T) {
		kv := newStore(t)
		require.NoError(t, kv.SetMany(ctx, map[string]string{"user": "{}", "gold": "1"}))
		require.NoError(t, kv.Delete(ctx, "user", "never-set"))

		_, found, err := kv.Get(ctx, "user")
		require.NoError(t, err)
		assert.False(t, found)

		_, found, err = kv.Get(ctx, "gold")
		require.NoError(t, err)
		assert.True(t, found)
	})

	t.Run("empty string value is stored", func(t *testing.T) {
		kv := newStore(t)
		require.NoError(t, kv.SetMany(ctx, map[string]string{"inventory": ""}))

		v, found, err := kv.Get(ctx, "inventory")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "", v)
	})
}
