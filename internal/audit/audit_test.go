package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firledger/internal/platform/metrics"
	"firledger/pkg/requestcontext"
)

func TestPublisher_StampsFromContext(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), at)
	ctx = requestcontext.WithRequestID(ctx, "req-7")

	p := NewPublisher(1)
	require.NoError(t, p.Emit(ctx, Event{RecordID: "c1", Action: ActionCaseCreated}))

	got := <-p.Events()
	assert.Equal(t, at, got.Timestamp)
	assert.Equal(t, "req-7", got.RequestID)
}

func TestPublisher_DropsWhenFull(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	p := NewPublisher(1, WithMetrics(m))
	ctx := context.Background()

	require.NoError(t, p.Emit(ctx, Event{RecordID: "a"}))
	err := p.Emit(ctx, Event{RecordID: "b"})
	assert.ErrorIs(t, err, ErrBufferFull)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuditDropped))
}

func TestPublisher_EmitAfterClose(t *testing.T) {
	p := NewPublisher(1)
	p.Close()
	p.Close()
	assert.ErrorIs(t, p.Emit(context.Background(), Event{}), ErrClosed)
}

func TestWorker_DrainsUntilClosed(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	p := NewPublisher(4)

	require.NoError(t, p.Emit(ctx, Event{RecordID: "c1", Action: ActionCaseCreated}))
	require.NoError(t, p.Emit(ctx, Event{RecordID: "c2", Action: ActionCaseCreated}))
	require.NoError(t, p.Emit(ctx, Event{RecordID: "c1", Action: ActionCaseUpdated}))
	p.Close()

	require.NoError(t, NewWorker(store, p.Events(), nil).Run(ctx))

	events, err := store.ListByRecord(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, ActionCaseCreated, events[0].Action)
	assert.Equal(t, ActionCaseUpdated, events[1].Action)

	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

type failingSink struct{ calls int }

func (f *failingSink) Append(context.Context, Event) error {
	f.calls++
	return errors.New("sink down")
}

func TestWorker_SkipsFailedAppends(t *testing.T) {
	inbox := make(chan Event, 2)
	inbox <- Event{RecordID: "a"}
	inbox <- Event{RecordID: "b"}
	close(inbox)

	sink := &failingSink{}
	require.NoError(t, NewWorker(sink, inbox, nil).Run(context.Background()))
	assert.Equal(t, 2, sink.calls)
}

func TestWorker_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewWorker(NewInMemoryStore(), make(chan Event), nil).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
