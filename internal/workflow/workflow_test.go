package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var allStatuses = []Status{StatusPending, StatusProcessing, StatusApproved, StatusDeclined, StatusClosed}

func TestCaseTransitionTable(t *testing.T) {
	tests := []struct {
		current   Status
		requested Status
		allowed   bool
		next      Status
		reason    string
	}{
		{StatusPending, StatusPending, true, StatusPending, ""},
		{StatusPending, StatusProcessing, true, StatusProcessing, ""},
		{StatusPending, StatusApproved, true, StatusProcessing, ""},
		{StatusPending, StatusDeclined, true, StatusDeclined, ""},
		{StatusPending, StatusClosed, true, StatusClosed, ""},

		{StatusProcessing, StatusPending, false, "", ReasonInProgress},
		{StatusProcessing, StatusApproved, false, "", ReasonInProgress},
		{StatusProcessing, StatusDeclined, false, "", ReasonProcessingNoDecline},
		{StatusProcessing, StatusProcessing, true, StatusProcessing, ""},
		{StatusProcessing, StatusClosed, true, StatusClosed, ""},

		{StatusApproved, StatusPending, false, "", ReasonInProgress},
		{StatusApproved, StatusDeclined, false, "", ReasonApprovedNoDecline},
		{StatusApproved, StatusApproved, true, StatusProcessing, ""},
		{StatusApproved, StatusProcessing, true, StatusProcessing, ""},
		{StatusApproved, StatusClosed, true, StatusClosed, ""},
	}
	for _, tt := range tests {
		t.Run(string(tt.current)+"->"+string(tt.requested), func(t *testing.T) {
			d := Case.Evaluate(tt.current, tt.requested)
			assert.Equal(t, tt.allowed, d.Allowed)
			assert.Equal(t, tt.next, d.Next)
			assert.Equal(t, tt.reason, d.Reason)
		})
	}
}

func TestCaseAbsorbingStates(t *testing.T) {
	for _, requested := range append(allStatuses, Status("bogus")) {
		d := Case.Evaluate(StatusClosed, requested)
		assert.False(t, d.Allowed)
		assert.Equal(t, ReasonAlreadyClosed, d.Reason)

		d = Case.Evaluate(StatusDeclined, requested)
		assert.False(t, d.Allowed)
		assert.Equal(t, ReasonAlreadyDeclined, d.Reason)
	}
	assert.True(t, Case.IsTerminal(StatusClosed))
	assert.True(t, Case.IsTerminal(StatusDeclined))
	assert.False(t, Case.IsTerminal(StatusProcessing))
}

func TestCaseNeverStoresApproved(t *testing.T) {
	for _, current := range allStatuses {
		for _, requested := range allStatuses {
			d := Case.Evaluate(current, requested)
			if d.Allowed {
				assert.NotEqual(t, StatusApproved, d.Next, "%s -> %s", current, requested)
			}
		}
	}
}

func TestCaseDeterministic(t *testing.T) {
	for _, current := range allStatuses {
		for _, requested := range allStatuses {
			first := Case.Evaluate(current, requested)
			for i := 0; i < 5; i++ {
				assert.Equal(t, first, Case.Evaluate(current, requested))
			}
		}
	}
}

func TestCaseRejectsUnknownRequest(t *testing.T) {
	d := Case.Evaluate(StatusPending, "reopened")
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonUnknownCaseStatus, d.Reason)
}

func TestReviewMachine(t *testing.T) {
	t.Run("pending accepts a verdict", func(t *testing.T) {
		d := Review.Evaluate(StatusPending, StatusApproved)
		assert.True(t, d.Allowed)
		assert.Equal(t, StatusApproved, d.Next)

		d = Review.Evaluate(StatusPending, StatusDeclined)
		assert.True(t, d.Allowed)
		assert.Equal(t, StatusDeclined, d.Next)
	})

	t.Run("any non-pending status is final", func(t *testing.T) {
		for _, current := range []Status{StatusApproved, StatusDeclined, "whatever"} {
			d := Review.Evaluate(current, StatusApproved)
			assert.False(t, d.Allowed)
			assert.Equal(t, ReasonAlreadyUpdated, d.Reason)
		}
	})

	t.Run("only verdicts are requestable", func(t *testing.T) {
		for _, requested := range []Status{StatusPending, StatusProcessing, StatusClosed} {
			d := Review.Evaluate(StatusPending, requested)
			assert.False(t, d.Allowed)
			assert.Equal(t, ReasonUnknownReviewStatus, d.Reason)
		}
	})
}
