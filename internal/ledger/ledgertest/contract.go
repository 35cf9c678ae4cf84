// Package ledgertest holds the behavioral contract every ledger backend must
// satisfy, runnable from each backend's own tests.
package ledgertest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firledger/internal/ledger"
	"firledger/pkg/platform/sentinel"
)

// Factory returns an empty store. It is called once per subtest.
type Factory func(t *testing.T) ledger.Store

// RunContract exercises Get, Put and Scan semantics against stores from newStore.
func RunContract(t *testing.T, newStore Factory) {
	t.Helper()
	ctx := context.Background()

	t.Run("get of absent key is not found", func(t *testing.T) {
		store := newStore(t)
		_, err := store.Get(ctx, "missing")
		require.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("create then get", func(t *testing.T) {
		store := newStore(t)
		created, err := store.Put(ctx, "k1", []byte(`{"a":1}`), ledger.NoVersion)
		require.NoError(t, err)
		assert.Equal(t, int64(1), created.Version)

		got, err := store.Get(ctx, "k1")
		require.NoError(t, err)
		assert.Equal(t, "k1", got.Key)
		assert.JSONEq(t, `{"a":1}`, string(got.Value))
		assert.Equal(t, created.Version, got.Version)
	})

	t.Run("create of existing key conflicts", func(t *testing.T) {
		store := newStore(t)
		_, err := store.Put(ctx, "k1", []byte(`{"a":1}`), ledger.NoVersion)
		require.NoError(t, err)
		_, err = store.Put(ctx, "k1", []byte(`{"a":2}`), ledger.NoVersion)
		require.ErrorIs(t, err, sentinel.ErrConflict)

		got, err := store.Get(ctx, "k1")
		require.NoError(t, err)
		assert.JSONEq(t, `{"a":1}`, string(got.Value))
	})

	t.Run("update with current version advances it", func(t *testing.T) {
		store := newStore(t)
		v1, err := store.Put(ctx, "k1", []byte(`{"a":1}`), ledger.NoVersion)
		require.NoError(t, err)
		v2, err := store.Put(ctx, "k1", []byte(`{"a":2}`), v1.Version)
		require.NoError(t, err)
		assert.Greater(t, v2.Version, v1.Version)

		got, err := store.Get(ctx, "k1")
		require.NoError(t, err)
		assert.JSONEq(t, `{"a":2}`, string(got.Value))
	})

	t.Run("update with stale version conflicts", func(t *testing.T) {
		store := newStore(t)
		v1, err := store.Put(ctx, "k1", []byte(`{"a":1}`), ledger.NoVersion)
		require.NoError(t, err)
		_, err = store.Put(ctx, "k1", []byte(`{"a":2}`), v1.Version)
		require.NoError(t, err)
		_, err = store.Put(ctx, "k1", []byte(`{"a":3}`), v1.Version)
		require.ErrorIs(t, err, sentinel.ErrConflict)
	})

	t.Run("update of absent key conflicts", func(t *testing.T) {
		store := newStore(t)
		_, err := store.Put(ctx, "ghost", []byte(`{}`), 7)
		require.ErrorIs(t, err, sentinel.ErrConflict)
		_, err = store.Get(ctx, "ghost")
		require.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("scan visits every key once", func(t *testing.T) {
		store := newStore(t)
		for i := 0; i < 25; i++ {
			_, err := store.Put(ctx, fmt.Sprintf("k%02d", i), []byte(fmt.Sprintf(`{"n":%d}`, i)), ledger.NoVersion)
			require.NoError(t, err)
		}
		var keys []string
		err := store.Scan(ctx, func(e ledger.Entry) error {
			keys = append(keys, e.Key)
			assert.Positive(t, e.Version)
			return nil
		})
		require.NoError(t, err)
		sort.Strings(keys)
		require.Len(t, keys, 25)
		assert.Equal(t, "k00", keys[0])
		assert.Equal(t, "k24", keys[24])
	})

	t.Run("scan of empty store visits nothing", func(t *testing.T) {
		store := newStore(t)
		calls := 0
		require.NoError(t, store.Scan(ctx, func(ledger.Entry) error {
			calls++
			return nil
		}))
		assert.Zero(t, calls)
	})

	t.Run("scan stops at callback error", func(t *testing.T) {
		store := newStore(t)
		for i := 0; i < 3; i++ {
			_, err := store.Put(ctx, fmt.Sprintf("k%d", i), []byte(`{}`), ledger.NoVersion)
			require.NoError(t, err)
		}
		stop := errors.New("stop")
		calls := 0
		err := store.Scan(ctx, func(ledger.Entry) error {
			calls++
			return stop
		})
		require.ErrorIs(t, err, stop)
		assert.Equal(t, 1, calls)
	})

	t.Run("scan callback may read the store", func(t *testing.T) {
		store := newStore(t)
		_, err := store.Put(ctx, "k1", []byte(`{}`), ledger.NoVersion)
		require.NoError(t, err)
		require.NoError(t, store.Scan(ctx, func(e ledger.Entry) error {
			_, err := store.Get(ctx, e.Key)
			return err
		}))
	})

	t.Run("concurrent updates are serialized by version", func(t *testing.T) {
		store := newStore(t)
		_, err := store.Put(ctx, "counter", []byte(`{"n":0}`), ledger.NoVersion)
		require.NoError(t, err)

		const workers = 8
		updater := ledger.NewUpdater(store, ledger.WithMaxAttempts(100))
		var wg sync.WaitGroup
		errs := make(chan error, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := updater.Update(ctx, "counter", func(cur ledger.Entry) ([]byte, bool, error) {
					var doc struct{ N int }
					if err := json.Unmarshal(cur.Value, &doc); err != nil {
						return nil, false, err
					}
					doc.N++
					next, err := json.Marshal(map[string]int{"n": doc.N})
					return next, true, err
				})
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		got, err := store.Get(ctx, "counter")
		require.NoError(t, err)
		assert.JSONEq(t, fmt.Sprintf(`{"n":%d}`, workers), string(got.Value))
	})
}
