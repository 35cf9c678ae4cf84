//go:build integration

package redis_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firledger/internal/ledger"
	"firledger/internal/ledger/ledgertest"
	ledgerredis "firledger/internal/ledger/redis"
	"firledger/pkg/testutil/containers"
)

func TestRedisStoreContract(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	rc := containers.GetManager().GetRedis(t)

	ledgertest.RunContract(t, func(t *testing.T) ledger.Store {
		prefix := "test:" + uuid.NewString() + ":"
		t.Cleanup(func() { _ = rc.DropPrefix(context.Background(), prefix) })
		return ledgerredis.New(rc.Client.Client, ledgerredis.WithPrefix(prefix))
	})
}

func TestRedisStorePrefixIsolation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()
	rc := containers.GetManager().GetRedis(t)

	a := ledgerredis.New(rc.Client.Client, ledgerredis.WithPrefix("iso-a:"))
	b := ledgerredis.New(rc.Client.Client, ledgerredis.WithPrefix("iso-b:"))
	t.Cleanup(func() {
		_ = rc.DropPrefix(ctx, "iso-a:")
		_ = rc.DropPrefix(ctx, "iso-b:")
	})

	_, err := a.Put(ctx, "shared", []byte("from-a"), ledger.NoVersion)
	require.NoError(t, err)

	var seen int
	require.NoError(t, b.Scan(ctx, func(ledger.Entry) error {
		seen++
		return nil
	}))
	assert.Zero(t, seen)

	_, err = b.Put(ctx, "shared", []byte("from-b"), ledger.NoVersion)
	require.NoError(t, err)
}
