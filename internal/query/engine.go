// Package query answers "every record matching P" by scanning the whole ledger.
//
// There are no secondary indices: each query decodes the discriminating
// header of every entry, skips other kinds, and decodes the rest into the
// caller's record type. Entries that fail to decode are skipped and logged
// so one corrupt record cannot block every listing.
package query

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"firledger/internal/ledger"
	"firledger/internal/platform/metrics"
	"firledger/pkg/domain"
	dErrors "firledger/pkg/domain-errors"
)

const tracerName = "firledger/internal/query"

// Item is one query hit. The JSON field names are part of the listing format.
type Item[T any] struct {
	Key    string `json:"Key"`
	Record T      `json:"Record"`
}

// Header is the part every record shares, decoded before anything else.
type Header struct {
	ID    string      `json:"id"`
	Kind  domain.Kind `json:"kind"`
	State string      `json:"state"`
	City  string      `json:"city"`
}

// Engine runs filtered scans over a ledger.
type Engine struct {
	scanner ledger.Scanner
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

type Option func(*Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) {
		e.tracer = t
	}
}

// New creates an Engine reading from scanner.
func New(scanner ledger.Scanner, opts ...Option) *Engine {
	e := &Engine{scanner: scanner}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	if e.tracer == nil {
		e.tracer = otel.Tracer(tracerName)
	}
	return e
}

// Filter returns every record of kind that decodes into T and satisfies
// match, ordered by key. A nil match accepts everything. No hits is an
// empty, non-nil slice.
func Filter[T any](ctx context.Context, e *Engine, name string, kind domain.Kind, match func(T) bool) ([]Item[T], error) {
	items := []Item[T]{}
	err := e.run(ctx, name, kind, func(entry ledger.Entry, h Header) {
		if h.Kind != kind {
			return
		}
		var rec T
		if err := json.Unmarshal(entry.Value, &rec); err != nil {
			e.skip(ctx, name, entry.Key, err)
			return
		}
		if match == nil || match(rec) {
			items = append(items, Item[T]{Key: entry.Key, Record: rec})
		}
	})
	if err != nil {
		return nil, err
	}
	sortItems(items)
	return items, nil
}

// FilterRaw returns the undecoded JSON of every record whose header
// satisfies match, whatever its kind.
func FilterRaw(ctx context.Context, e *Engine, name string, match func(Header) bool) ([]Item[json.RawMessage], error) {
	items := []Item[json.RawMessage]{}
	err := e.run(ctx, name, "", func(entry ledger.Entry, h Header) {
		if match == nil || match(h) {
			raw := make(json.RawMessage, len(entry.Value))
			copy(raw, entry.Value)
			items = append(items, Item[json.RawMessage]{Key: entry.Key, Record: raw})
		}
	})
	if err != nil {
		return nil, err
	}
	sortItems(items)
	return items, nil
}

// run scans once, decoding headers and handing each decodable entry to visit.
func (e *Engine) run(ctx context.Context, name string, kind domain.Kind, visit func(ledger.Entry, Header)) error {
	ctx, span := e.tracer.Start(ctx, "query."+name, trace.WithAttributes(
		attribute.String("ledger.kind", string(kind)),
	))
	defer span.End()

	start := time.Now()
	scanned := 0
	err := e.scanner.Scan(ctx, func(entry ledger.Entry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		scanned++
		var h Header
		if err := json.Unmarshal(entry.Value, &h); err != nil {
			e.skip(ctx, name, entry.Key, err)
			return nil
		}
		visit(entry, h)
		return nil
	})
	e.metrics.ObserveScan(name, time.Since(start))
	span.SetAttributes(attribute.Int("ledger.scanned", scanned))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "scan failed")
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return dErrors.Wrap(err, dErrors.CodeTimeout, "scan aborted")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "scan ledger")
	}
	return nil
}

func (e *Engine) skip(ctx context.Context, name, key string, err error) {
	e.logger.WarnContext(ctx, "skipping undecodable ledger entry",
		"query", name,
		"key", key,
		"error", err,
	)
}

func sortItems[T any](items []Item[T]) {
	sort.Slice(items, func(i, j int) bool { return items[i].Key < items[j].Key })
}
