package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firledger/internal/workflow"
	"firledger/pkg/domain"
	dErrors "firledger/pkg/domain-errors"
)

var t0 = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func newTestCase(t *testing.T) *Case {
	t.Helper()
	c, err := NewCase("case-1", NewCaseParams{
		ReporterID: "1111",
		Name:       "Asha",
		State:      "karnataka",
		City:       "bengaluru",
		Suspects:   []string{"2222", " 3333 ", "2222"},
	}, t0)
	require.NoError(t, err)
	return c
}

func TestNewCase(t *testing.T) {
	c := newTestCase(t)

	assert.Equal(t, domain.KindFIR, c.Kind)
	assert.Equal(t, workflow.StatusPending, c.Status)
	assert.Equal(t, []string{"2222", "3333"}, c.Suspects)
	assert.Equal(t, []string{}, c.FinalCulprits)
	assert.Equal(t, CloseDatePending, c.CloseDate())
	assert.Equal(t, "", c.StatementText())
	assert.Equal(t, t0, c.RegisteredAt)

	t.Run("reporter is required", func(t *testing.T) {
		_, err := NewCase("case-2", NewCaseParams{ReporterID: "  "}, t0)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})
}

func TestCase_Visibility(t *testing.T) {
	c := newTestCase(t)
	c.ReplaceSubjects([]string{"2222"}, []string{"4444"})

	assert.True(t, c.VisibleTo("1111"), "filer")
	assert.True(t, c.VisibleTo("2222"), "suspect")
	assert.True(t, c.VisibleTo("4444"), "culprit")
	assert.False(t, c.VisibleTo("3333"), "dropped suspect")
	assert.False(t, c.VisibleTo(""))
	assert.True(t, c.IsCulprit("4444"))
	assert.False(t, c.IsSuspect("4444"))
}

func TestCase_ApplyTransitionSetsCloseDateOnce(t *testing.T) {
	c := newTestCase(t)

	c.ApplyTransition(workflow.Case.Evaluate(c.Status, workflow.StatusApproved), t0)
	assert.Equal(t, workflow.StatusProcessing, c.Status)
	assert.Nil(t, c.ClosedAt)
	assert.True(t, c.IsActive())

	closedAt := t0.Add(time.Hour)
	c.ApplyTransition(workflow.Decision{Allowed: true, Next: workflow.StatusClosed}, closedAt)
	require.NotNil(t, c.ClosedAt)
	assert.Equal(t, closedAt, *c.ClosedAt)
	assert.Equal(t, "2024-03-01T10:30:00Z", c.CloseDate())
	assert.False(t, c.IsActive())

	c.ApplyTransition(workflow.Decision{Allowed: true, Next: workflow.StatusClosed}, closedAt.Add(time.Hour))
	assert.Equal(t, closedAt, *c.ClosedAt)
}

func TestCase_StatementText(t *testing.T) {
	c := newTestCase(t)
	c.AppendStatement("visited the site", t0)
	c.AppendStatement("suspect questioned", t0.Add(24*time.Hour))

	assert.Equal(t,
		"\n2024-03-01T09:30:00Z\nvisited the site\n2024-03-02T09:30:00Z\nsuspect questioned",
		c.StatementText())
}

func TestCase_JSONRoundTrip(t *testing.T) {
	c := newTestCase(t)
	c.AppendStatement("note", t0)

	raw, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"kind":"FIR"`)
	assert.NotContains(t, string(raw), "closedAt")

	var back Case
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, *c, back)
}
