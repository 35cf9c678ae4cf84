package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bgservice "firledger/internal/backgroundcheck/service"
	caseservice "firledger/internal/cases/service"
	"firledger/internal/contract"
	"firledger/internal/ledger/memory"
	"firledger/internal/query"
	"firledger/pkg/requestcontext"
)

// TestContext is one scenario's ledger and the outcome of its last operation.
type TestContext struct {
	dispatcher *contract.Dispatcher
	now        time.Time
	ids        map[string]string
	last       contract.Response
	lastErr    error
}

func NewTestContext() *TestContext {
	store := memory.New()
	engine := query.New(store)
	return &TestContext{
		dispatcher: contract.New(caseservice.New(store, engine), bgservice.New(store, engine)),
		now:        time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		ids:        make(map[string]string),
	}
}

// Invoke runs an operation at the scenario clock. Hard failures are kept for
// assertion steps rather than failing the step.
func (tc *TestContext) Invoke(fn string, args ...string) error {
	ctx := requestcontext.WithTime(context.Background(), tc.now)
	tc.last, tc.lastErr = tc.dispatcher.Invoke(ctx, fn, args...)
	return nil
}

// Remember stores the id acknowledged by the last create under alias.
func (tc *TestContext) Remember(alias string) error {
	if tc.lastErr != nil {
		return fmt.Errorf("create failed: %w", tc.lastErr)
	}
	if tc.last.Rejected() {
		return fmt.Errorf("create rejected: %s", tc.last.Rejection)
	}
	var created contract.Created
	if err := json.Unmarshal(tc.last.Payload, &created); err != nil {
		return fmt.Errorf("decode created id: %w", err)
	}
	tc.ids[alias] = created.ID.String()
	return nil
}

// ID resolves an alias. Unknown aliases are used verbatim so scenarios can
// name records that do not exist.
func (tc *TestContext) ID(alias string) string {
	if id, ok := tc.ids[alias]; ok {
		return id
	}
	return alias
}

func (tc *TestContext) Response() contract.Response {
	return tc.last
}

func (tc *TestContext) Err() error {
	return tc.lastErr
}

func (tc *TestContext) AdvanceClock(d time.Duration) {
	tc.now = tc.now.Add(d)
}

func (tc *TestContext) Now() time.Time {
	return tc.now
}
