package audit

import (
	"context"
	"log/slog"

	"firledger/pkg/platform/circuit"
)

// GuardedSink appends to a primary sink and diverts events to a fallback
// once the primary has failed enough times in a row. The primary is still
// tried for every event so the circuit can close again.
type GuardedSink struct {
	primary  Sink
	fallback Sink
	breaker  *circuit.Breaker
	logger   *slog.Logger
}

func NewGuardedSink(primary, fallback Sink, breaker *circuit.Breaker, logger *slog.Logger) *GuardedSink {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &GuardedSink{primary: primary, fallback: fallback, breaker: breaker, logger: logger}
}

func (g *GuardedSink) Append(ctx context.Context, event Event) error {
	err := g.primary.Append(ctx, event)
	if err == nil {
		if _, change := g.breaker.RecordSuccess(); change.Closed {
			g.logger.InfoContext(ctx, "audit sink recovered", "sink", g.breaker.Name())
		}
		return nil
	}

	useFallback, change := g.breaker.RecordFailure()
	if change.Opened {
		g.logger.WarnContext(ctx, "audit sink failing, diverting events to fallback",
			"sink", g.breaker.Name(),
			"error", err,
		)
	}
	if !useFallback {
		return err
	}
	return g.fallback.Append(ctx, event)
}

// LogSink writes events to a logger. It serves runs without a durable sink
// and is the fallback when the durable one is unreachable.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Append(ctx context.Context, event Event) error {
	s.logger.InfoContext(ctx, "audit event",
		"log_type", "audit",
		"action", event.Action,
		"record_id", event.RecordID,
		"kind", event.Kind,
		"actor", event.Actor,
		"status", event.Status,
		"request_id", event.RequestID,
		"timestamp", event.Timestamp,
	)
	return nil
}
