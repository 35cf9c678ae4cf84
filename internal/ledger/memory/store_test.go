package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firledger/internal/ledger"
	"firledger/internal/ledger/ledgertest"
)

func TestStoreContract(t *testing.T) {
	ledgertest.RunContract(t, func(t *testing.T) ledger.Store {
		return New()
	})
}

func TestStoreCopiesValues(t *testing.T) {
	ctx := context.Background()
	s := New()
	value := []byte(`{"a":1}`)
	_, err := s.Put(ctx, "k", value, ledger.NoVersion)
	require.NoError(t, err)

	value[0] = 'X'
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, byte('{'), got.Value[0])

	got.Value[0] = 'Y'
	again, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, byte('{'), again.Value[0])
	assert.Equal(t, 1, s.Len())
}
