package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firledger/internal/workflow"
	"firledger/pkg/domain"
	dErrors "firledger/pkg/domain-errors"
)

func TestNewRequest(t *testing.T) {
	now := time.Date(2024, 4, 2, 10, 0, 0, 0, time.UTC)

	r, err := NewRequest("bg-1", domain.KindBackgroundCheck, NewRequestParams{
		RequesterEmail: " hr@acme.in ",
		CandidateID:    "7777",
	}, now)
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusPending, r.Status)
	assert.Equal(t, "hr@acme.in", r.RequesterEmail)
	assert.Equal(t, "", r.StatusUpdatedText())
	assert.Equal(t, "", r.OfficerComments)
	assert.False(t, r.IsGrant())
	assert.True(t, r.OwnedBy("hr@acme.in"))
	assert.False(t, r.OwnedBy(""))

	_, err = NewRequest("bg-2", domain.KindFIR, NewRequestParams{RequesterEmail: "a@b"}, now)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))

	_, err = NewRequest("bg-3", domain.KindViewFIRs, NewRequestParams{}, now)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
}

func TestRequest_ApplyReview(t *testing.T) {
	now := time.Date(2024, 4, 2, 10, 0, 0, 0, time.UTC)
	r, err := NewRequest("g-1", domain.KindViewFIRs, NewRequestParams{RequesterEmail: "hr@acme.in"}, now)
	require.NoError(t, err)
	assert.True(t, r.IsGrant())

	reviewed := now.Add(2 * time.Hour)
	r.ApplyReview(workflow.Review.Evaluate(r.Status, workflow.StatusApproved), "record is clean", reviewed)

	assert.Equal(t, workflow.StatusApproved, r.Status)
	assert.Equal(t, "record is clean", r.OfficerComments)
	assert.Equal(t, "2024-04-02T12:00:00Z", r.StatusUpdatedText())
}
