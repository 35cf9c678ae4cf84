package ledger_test

//go:generate mockgen -source=ledger.go -destination=mocks/ledger-mocks.go -package=mocks Store,Scanner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"firledger/internal/ledger"
	"firledger/internal/ledger/mocks"
	dErrors "firledger/pkg/domain-errors"
	"firledger/pkg/platform/sentinel"
)

func TestUpdater_RetriesOnConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	ctx := context.Background()

	gomock.InOrder(
		store.EXPECT().Get(gomock.Any(), "k").Return(ledger.Entry{Key: "k", Value: []byte("a"), Version: 1}, nil),
		store.EXPECT().Put(gomock.Any(), "k", []byte("a+"), int64(1)).Return(ledger.Entry{}, sentinel.ErrConflict),
		store.EXPECT().Get(gomock.Any(), "k").Return(ledger.Entry{Key: "k", Value: []byte("b"), Version: 2}, nil),
		store.EXPECT().Put(gomock.Any(), "k", []byte("b+"), int64(2)).Return(ledger.Entry{Key: "k", Value: []byte("b+"), Version: 3}, nil),
	)

	var conflicts []int
	u := ledger.NewUpdater(store, ledger.WithConflictHook(func(attempt int) {
		conflicts = append(conflicts, attempt)
	}))

	got, err := u.Update(ctx, "k", func(cur ledger.Entry) ([]byte, bool, error) {
		return append(append([]byte(nil), cur.Value...), '+'), true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Version)
	assert.Equal(t, []int{1}, conflicts)
}

func TestUpdater_GivesUpAfterMaxAttempts(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)

	store.EXPECT().Get(gomock.Any(), "k").Return(ledger.Entry{Key: "k", Version: 4}, nil).Times(3)
	store.EXPECT().Put(gomock.Any(), "k", gomock.Any(), int64(4)).Return(ledger.Entry{}, sentinel.ErrConflict).Times(3)

	u := ledger.NewUpdater(store, ledger.WithMaxAttempts(3))
	_, err := u.Update(context.Background(), "k", func(ledger.Entry) ([]byte, bool, error) {
		return []byte("x"), true, nil
	})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
}

func TestUpdater_NoWriteReturnsCurrent(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)

	current := ledger.Entry{Key: "k", Value: []byte("v"), Version: 7}
	store.EXPECT().Get(gomock.Any(), "k").Return(current, nil)

	u := ledger.NewUpdater(store)
	got, err := u.Update(context.Background(), "k", func(ledger.Entry) ([]byte, bool, error) {
		return nil, false, nil
	})
	require.NoError(t, err)
	assert.Equal(t, current, got)
}

func TestUpdater_PropagatesErrors(t *testing.T) {
	t.Run("not found from get", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockStore(ctrl)
		store.EXPECT().Get(gomock.Any(), "gone").Return(ledger.Entry{}, sentinel.ErrNotFound)

		_, err := ledger.NewUpdater(store).Update(context.Background(), "gone", func(ledger.Entry) ([]byte, bool, error) {
			t.Fatal("mutate must not run")
			return nil, false, nil
		})
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("mutate error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockStore(ctrl)
		store.EXPECT().Get(gomock.Any(), "k").Return(ledger.Entry{Key: "k", Version: 1}, nil)

		boom := errors.New("boom")
		_, err := ledger.NewUpdater(store).Update(context.Background(), "k", func(ledger.Entry) ([]byte, bool, error) {
			return nil, false, boom
		})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockStore(ctrl)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := ledger.NewUpdater(store).Update(ctx, "k", func(ledger.Entry) ([]byte, bool, error) {
			return nil, true, nil
		})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeTimeout))
	})
}
