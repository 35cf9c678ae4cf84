package requestcontext

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRequestScopedValues(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, RequestID(ctx))

	fixed := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	ctx = WithTime(WithRequestID(ctx, "req-1"), fixed)

	assert.Equal(t, "req-1", RequestID(ctx))
	assert.True(t, Now(ctx).Equal(fixed))
}

func TestNowFallsBackToWallClock(t *testing.T) {
	before := time.Now()
	got := Now(context.Background())
	assert.False(t, got.Before(before))
}
