// Package redis stores the ledger in Redis. Each key is a hash holding the
// value and its version; a set indexes every key for scans.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"firledger/internal/ledger"
	"firledger/pkg/platform/sentinel"
)

var _ ledger.Store = (*Store)(nil)

const (
	DefaultPrefix = "firledger:"

	fieldValue   = "value"
	fieldVersion = "version"
)

// scanScript reads every indexed record in one atomic step so the scan sees
// a single snapshot. It returns a flat list of key, value, version triples.
var scanScript = redis.NewScript(`
local keys = redis.call('SMEMBERS', KEYS[1])
local out = {}
for _, k in ipairs(keys) do
  local rec = redis.call('HMGET', ARGV[1] .. k, 'value', 'version')
  if rec[1] then
    table.insert(out, k)
    table.insert(out, rec[1])
    table.insert(out, rec[2])
  end
end
return out
`)

// Store is a Redis-backed ledger using WATCH for compare-and-swap.
type Store struct {
	client redis.UniversalClient
	prefix string
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix namespaces every key the store writes.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a store on an existing client.
func New(client redis.UniversalClient, opts ...Option) *Store {
	s := &Store{client: client, prefix: DefaultPrefix}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Store) recordPrefix() string { return s.prefix + "rec:" }
func (s *Store) recordKey(key string) string {
	return s.recordPrefix() + key
}
func (s *Store) indexKey() string { return s.prefix + "keys" }

func (s *Store) Get(ctx context.Context, key string) (ledger.Entry, error) {
	vals, err := s.client.HMGet(ctx, s.recordKey(key), fieldValue, fieldVersion).Result()
	if err != nil {
		return ledger.Entry{}, fmt.Errorf("get %s: %w", key, err)
	}
	if len(vals) != 2 || vals[0] == nil {
		return ledger.Entry{}, sentinel.ErrNotFound
	}
	return decodeEntry(key, vals[0], vals[1])
}

func (s *Store) Put(ctx context.Context, key string, value []byte, expectedVersion int64) (ledger.Entry, error) {
	recKey := s.recordKey(key)
	next := expectedVersion + 1

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.HGet(ctx, recKey, fieldVersion).Int64()
		switch {
		case errors.Is(err, redis.Nil):
			current = ledger.NoVersion
		case err != nil:
			return fmt.Errorf("read version: %w", err)
		}
		if current != expectedVersion {
			return sentinel.ErrConflict
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, recKey, fieldValue, value, fieldVersion, next)
			pipe.SAdd(ctx, s.indexKey(), key)
			return nil
		})
		return err
	}, recKey)

	switch {
	case err == nil:
		return ledger.Entry{Key: key, Value: append([]byte(nil), value...), Version: next}, nil
	case errors.Is(err, redis.TxFailedErr), errors.Is(err, sentinel.ErrConflict):
		return ledger.Entry{}, sentinel.ErrConflict
	default:
		return ledger.Entry{}, fmt.Errorf("put %s: %w", key, err)
	}
}

func (s *Store) Scan(ctx context.Context, fn func(ledger.Entry) error) error {
	raw, err := scanScript.Run(ctx, s.client, []string{s.indexKey()}, s.recordPrefix()).Slice()
	if err != nil {
		return fmt.Errorf("scan ledger: %w", err)
	}
	if len(raw)%3 != 0 {
		return fmt.Errorf("scan ledger: malformed reply of %d items", len(raw))
	}

	entries := make([]ledger.Entry, 0, len(raw)/3)
	for i := 0; i < len(raw); i += 3 {
		key, ok := raw[i].(string)
		if !ok {
			return fmt.Errorf("scan ledger: key at %d is %T", i, raw[i])
		}
		e, err := decodeEntry(key, raw[i+1], raw[i+2])
		if err != nil {
			return err
		}
		entries = append(entries, e)
	}

	for _, e := range entries {
		if err := fn(e); err != nil {
			return err
		}
	}
	return nil
}

func decodeEntry(key string, value, version any) (ledger.Entry, error) {
	v, ok := value.(string)
	if !ok {
		return ledger.Entry{}, fmt.Errorf("decode %s: value is %T", key, value)
	}
	ver, ok := version.(string)
	if !ok {
		return ledger.Entry{}, fmt.Errorf("decode %s: version is %T", key, version)
	}
	n, err := strconv.ParseInt(ver, 10, 64)
	if err != nil {
		return ledger.Entry{}, fmt.Errorf("decode %s: version: %w", key, err)
	}
	return ledger.Entry{Key: key, Value: []byte(v), Version: n}, nil
}
