package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"firledger/internal/audit"
	auditkafka "firledger/internal/audit/kafka"
	auditpg "firledger/internal/audit/postgres"
	bgservice "firledger/internal/backgroundcheck/service"
	caseservice "firledger/internal/cases/service"
	"firledger/internal/contract"
	"firledger/internal/ledger"
	"firledger/internal/ledger/memory"
	ledgerpg "firledger/internal/ledger/postgres"
	ledgerredis "firledger/internal/ledger/redis"
	"firledger/internal/ledger/sqlite"
	"firledger/internal/platform/config"
	"firledger/internal/platform/metrics"
	"firledger/internal/platform/postgres"
	"firledger/internal/platform/redis"
	"firledger/internal/query"
	"firledger/pkg/platform/circuit"
)

// app holds one process's wiring: a record store, the repositories over it
// and the audit pipeline.
type app struct {
	dispatcher *contract.Dispatcher
	publisher  *audit.Publisher
	worker     *audit.Worker
	closers    []func() error
	logger     *slog.Logger
}

func buildApp(ctx context.Context, cfg config.Config, logger *slog.Logger) (*app, error) {
	a := &app{logger: logger}

	store, db, err := a.openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	sink, err := a.openSink(ctx, cfg, db)
	if err != nil {
		a.close()
		return nil, err
	}

	m := metrics.New(prometheus.NewRegistry())
	a.publisher = audit.NewPublisher(cfg.AuditBuffer, audit.WithLogger(logger), audit.WithMetrics(m))
	a.worker = audit.NewWorker(sink, a.publisher.Events(), logger)

	engine := query.New(store, query.WithLogger(logger), query.WithMetrics(m))
	cases := caseservice.New(store, engine,
		caseservice.WithLogger(logger),
		caseservice.WithMetrics(m),
		caseservice.WithAuditPublisher(a.publisher),
		caseservice.WithMaxAttempts(cfg.MaxUpdateRetries),
	)
	requests := bgservice.New(store, engine,
		bgservice.WithLogger(logger),
		bgservice.WithMetrics(m),
		bgservice.WithAuditPublisher(a.publisher),
		bgservice.WithMaxAttempts(cfg.MaxUpdateRetries),
	)
	a.dispatcher = contract.New(cases, requests, contract.WithLogger(logger))
	return a, nil
}

// openStore returns the configured backend. db is set only for the postgres
// backend so the audit trail can share its pool.
func (a *app) openStore(ctx context.Context, cfg config.Config) (ledger.Store, *sql.DB, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		a.logger.WarnContext(ctx, "memory backend selected; records do not outlive the process")
		return memory.New(), nil, nil
	case config.BackendSQLite:
		s, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		a.closers = append(a.closers, s.Close)
		return s, nil, nil
	case config.BackendPostgres:
		db, err := postgres.Open(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		a.closers = append(a.closers, db.Close)
		return ledgerpg.New(db), db, nil
	case config.BackendRedis:
		client, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		a.closers = append(a.closers, client.Close)
		return ledgerredis.New(client.Client, ledgerredis.WithPrefix(client.Prefix)), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// openSink picks the durable audit destination. Durable sinks are guarded so
// an unreachable broker or database degrades to logging instead of stalling
// the worker.
func (a *app) openSink(ctx context.Context, cfg config.Config, db *sql.DB) (audit.Sink, error) {
	var (
		primary audit.Sink
		name    string
	)
	switch {
	case cfg.Kafka.Enabled():
		sink, err := auditkafka.New(cfg.Kafka)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() error { sink.Close(); return nil })
		a.logger.DebugContext(ctx, "audit events shipped to kafka", "topic", sink.Topic())
		primary, name = sink, "kafka-audit"
	case db != nil:
		primary, name = auditpg.New(db), "postgres-audit"
	default:
		return audit.NewLogSink(a.logger), nil
	}
	breaker := circuit.New(name, circuit.WithFailureThreshold(3), circuit.WithSuccessThreshold(1))
	return audit.NewGuardedSink(primary, audit.NewLogSink(a.logger), breaker, a.logger), nil
}

func (a *app) close() {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	if err := errors.Join(errs...); err != nil {
		a.logger.Warn("failed to release resources", "error", err)
	}
}
