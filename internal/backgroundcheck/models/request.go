package models

import (
	"strings"
	"time"

	"firledger/internal/workflow"
	"firledger/pkg/domain"
	dErrors "firledger/pkg/domain-errors"
)

// Request is a background-check request (kind backgroundCheck) or a view
// grant (kind viewFIRs). Both share one shape and the review workflow.
//
// Invariants:
//   - Kind is backgroundCheck or viewFIRs and never changes
//   - Status starts pending and changes at most once, to approved or declined
//   - StatusUpdatedAt is nil until the review and set together with Status
type Request struct {
	ID                   domain.RecordID `json:"id"`
	Kind                 domain.Kind     `json:"kind"`
	RequesterEmail       string          `json:"requesterEmail"`
	IdentificationType   string          `json:"identificationType"`
	IdentificationNumber string          `json:"identificationNumber"`
	RequesterName        string          `json:"requesterName"`
	State                string          `json:"state"`
	City                 string          `json:"city"`
	Purpose              string          `json:"purpose"`
	PurposeDescription   string          `json:"purposeDescription"`
	CandidateID          string          `json:"candidateId"`
	CandidateName        string          `json:"candidateName"`
	AppliedAt            time.Time       `json:"appliedAt"`
	Status               workflow.Status `json:"status"`
	StatusUpdatedAt      *time.Time      `json:"statusUpdatedAt,omitempty"`
	OfficerComments      string          `json:"officerComments"`
}

// NewRequestParams carries the already-decoded request fields.
type NewRequestParams struct {
	RequesterEmail       string
	IdentificationType   string
	IdentificationNumber string
	RequesterName        string
	State                string
	City                 string
	Purpose              string
	PurposeDescription   string
	CandidateID          string
	CandidateName        string
}

// NewRequest builds a pending request of kind.
func NewRequest(id domain.RecordID, kind domain.Kind, p NewRequestParams, now time.Time) (*Request, error) {
	if id == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "request id cannot be empty")
	}
	if kind != domain.KindBackgroundCheck && kind != domain.KindViewFIRs {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "unsupported request kind "+string(kind))
	}
	email := strings.TrimSpace(p.RequesterEmail)
	if email == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "requester email cannot be empty")
	}
	return &Request{
		ID:                   id,
		Kind:                 kind,
		RequesterEmail:       email,
		IdentificationType:   p.IdentificationType,
		IdentificationNumber: p.IdentificationNumber,
		RequesterName:        p.RequesterName,
		State:                p.State,
		City:                 p.City,
		Purpose:              p.Purpose,
		PurposeDescription:   p.PurposeDescription,
		CandidateID:          strings.TrimSpace(p.CandidateID),
		CandidateName:        p.CandidateName,
		AppliedAt:            now,
		Status:               workflow.StatusPending,
	}, nil
}

// OwnedBy reports whether email filed the request.
func (r *Request) OwnedBy(email string) bool {
	return email != "" && r.RequesterEmail == email
}

func (r *Request) IsGrant() bool {
	return r.Kind == domain.KindViewFIRs
}

// ApplyReview stores an accepted review decision with the officer's comments.
// Must only be called with a Decision whose Allowed is true.
func (r *Request) ApplyReview(d workflow.Decision, comments string, now time.Time) {
	r.Status = d.Next
	updated := now
	r.StatusUpdatedAt = &updated
	r.OfficerComments = comments
}

// StatusUpdatedText renders StatusUpdatedAt, or "" before the review.
func (r *Request) StatusUpdatedText() string {
	if r.StatusUpdatedAt == nil {
		return ""
	}
	return r.StatusUpdatedAt.UTC().Format(time.RFC3339)
}

// CreateRequest is a request as received at the boundary. IdentificationType,
// RequesterName, Purpose, PurposeDescription and CandidateName are hex text.
type CreateRequest struct {
	IdentificationType   string
	IdentificationNumber string
	RequesterName        string
	RequesterEmail       string
	State                string
	City                 string
	Purpose              string
	PurposeDescription   string
	CandidateName        string
	CandidateID          string
}
