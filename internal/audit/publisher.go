package audit

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"firledger/internal/platform/metrics"
	"firledger/pkg/requestcontext"
)

// ErrBufferFull is returned by Emit when the event was dropped.
var ErrBufferFull = errors.New("audit buffer full")

// ErrClosed is returned by Emit after Close.
var ErrClosed = errors.New("audit publisher closed")

// Publisher hands events to a Worker through a bounded channel. Emit never
// blocks: when the buffer is full the event is dropped and counted, so a slow
// sink cannot stall ledger writes.
type Publisher struct {
	mu      sync.RWMutex
	inbox   chan Event
	closed  bool
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type PublisherOption func(*Publisher)

func WithLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) PublisherOption {
	return func(p *Publisher) {
		p.metrics = m
	}
}

// NewPublisher creates a publisher whose channel holds up to buffer events.
func NewPublisher(buffer int, opts ...PublisherOption) *Publisher {
	if buffer < 0 {
		buffer = 0
	}
	p := &Publisher{inbox: make(chan Event, buffer)}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.New(slog.DiscardHandler)
	}
	return p
}

// Emit stamps event with the request time and id from ctx and enqueues it.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}
	select {
	case p.inbox <- event:
		return nil
	default:
		p.metrics.IncrementAuditDropped()
		p.logger.WarnContext(ctx, "audit event dropped",
			"action", event.Action,
			"record_id", event.RecordID,
		)
		return ErrBufferFull
	}
}

// Events is the channel a Worker drains.
func (p *Publisher) Events() <-chan Event {
	return p.inbox
}

// Close stops accepting events. A Worker drains what is buffered, then exits.
func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.inbox)
	}
}
