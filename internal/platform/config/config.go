package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Ledger backends selectable through LEDGER_BACKEND.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config captures process level configuration for the ledger host.
type Config struct {
	Backend          string
	MaxUpdateRetries int
	OperationTimeout time.Duration
	LogLevel         string
	SQLitePath       string
	AuditBuffer      int
	Postgres         PostgresConfig
	Redis            RedisConfig
	Kafka            KafkaConfig
}

// PostgresConfig configures the database/sql pool for the postgres backend.
type PostgresConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
}

// RedisConfig configures the go-redis client.
type RedisConfig struct {
	URL          string
	Prefix       string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the audit sink. An empty broker list disables it.
type KafkaConfig struct {
	Brokers  []string
	Topic    string
	ClientID string
}

// Enabled reports whether audit events should be shipped to Kafka.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	p := envParser{}
	cfg := Config{
		Backend:          strings.ToLower(p.str("LEDGER_BACKEND", BackendMemory)),
		MaxUpdateRetries: p.int("LEDGER_MAX_UPDATE_RETRIES", 5),
		OperationTimeout: p.duration("LEDGER_OPERATION_TIMEOUT", 5*time.Second),
		LogLevel:         p.str("LOG_LEVEL", "info"),
		SQLitePath:       p.str("SQLITE_PATH", "data/ledger.db"),
		AuditBuffer:      p.int("LEDGER_AUDIT_BUFFER", 256),
		Postgres: PostgresConfig{
			URL:          p.str("POSTGRES_URL", ""),
			MaxOpenConns: p.int("POSTGRES_MAX_OPEN_CONNS", 10),
			MaxIdleConns: p.int("POSTGRES_MAX_IDLE_CONNS", 5),
		},
		Redis: RedisConfig{
			URL:          p.str("REDIS_URL", ""),
			Prefix:       p.str("REDIS_PREFIX", "firledger:"),
			PoolSize:     p.int("REDIS_POOL_SIZE", 10),
			MinIdleConns: p.int("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  p.duration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  p.duration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: p.duration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers:  p.list("KAFKA_BROKERS"),
			Topic:    p.str("KAFKA_AUDIT_TOPIC", "firledger.audit"),
			ClientID: p.str("KAFKA_CLIENT_ID", "firledger"),
		},
	}
	if p.err != nil {
		return Config{}, p.err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field requirements.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendMemory, BackendSQLite:
	case BackendPostgres:
		if c.Postgres.URL == "" {
			return fmt.Errorf("POSTGRES_URL is required for the %s backend", c.Backend)
		}
	case BackendRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("REDIS_URL is required for the %s backend", c.Backend)
		}
	default:
		return fmt.Errorf("unknown LEDGER_BACKEND %q", c.Backend)
	}
	if c.MaxUpdateRetries < 1 {
		return fmt.Errorf("LEDGER_MAX_UPDATE_RETRIES must be positive, got %d", c.MaxUpdateRetries)
	}
	if c.OperationTimeout <= 0 {
		return fmt.Errorf("LEDGER_OPERATION_TIMEOUT must be positive, got %s", c.OperationTimeout)
	}
	if c.AuditBuffer < 0 {
		return fmt.Errorf("LEDGER_AUDIT_BUFFER must not be negative, got %d", c.AuditBuffer)
	}
	return nil
}

// envParser keeps the first parse failure so FromEnv reads as a flat list.
type envParser struct {
	err error
}

func (p *envParser) str(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func (p *envParser) int(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(fmt.Errorf("%s: %w", key, err))
		return def
	}
	return n
}

func (p *envParser) duration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		p.fail(fmt.Errorf("%s: %w", key, err))
		return def
	}
	return d
}

func (p *envParser) list(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (p *envParser) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}
