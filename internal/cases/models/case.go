package models

import (
	"strings"
	"time"

	"firledger/internal/workflow"
	"firledger/pkg/domain"
	dErrors "firledger/pkg/domain-errors"
	ids "firledger/pkg/platform/strings"
)

// CloseDatePending is rendered as the close date of a case that is not closed.
const CloseDatePending = "pending"

// Case is an incident report (kind FIR).
//
// Invariants:
//   - ID and ReporterID are non-empty and never change
//   - Status is only changed through ApplyTransition with a workflow decision
//   - ClosedAt is nil until the case enters closed and is never overwritten
//   - Statement only grows; entries keep their append order
type Case struct {
	ID            domain.RecordID  `json:"id"`
	Kind          domain.Kind      `json:"kind"`
	ReporterID    string           `json:"reporterId"`
	Name          string           `json:"name"`
	Mobile        string           `json:"mobile"`
	Email         string           `json:"email"`
	IncidentType  string           `json:"incidentType"`
	Description   string           `json:"description"`
	State         string           `json:"state"`
	City          string           `json:"city"`
	IncidentDate  string           `json:"incidentDate"`
	RegisteredAt  time.Time        `json:"registeredAt"`
	Suspects      []string         `json:"suspects"`
	FinalCulprits []string         `json:"finalCulprits"`
	Status        workflow.Status  `json:"status"`
	Statement     []StatementEntry `json:"policeStatement"`
	ClosedAt      *time.Time       `json:"closedAt,omitempty"`
}

// StatementEntry is one timestamped addition to the police statement.
type StatementEntry struct {
	At   time.Time `json:"at"`
	Text string    `json:"text"`
}

// NewCaseParams carries the already-decoded filing fields.
type NewCaseParams struct {
	ReporterID   string
	Name         string
	Mobile       string
	Email        string
	IncidentType string
	Description  string
	State        string
	City         string
	IncidentDate string
	Suspects     []string
}

// NewCase builds a pending case with an empty statement and no culprits.
func NewCase(id domain.RecordID, p NewCaseParams, now time.Time) (*Case, error) {
	if id == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "case id cannot be empty")
	}
	reporter := strings.TrimSpace(p.ReporterID)
	if reporter == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "reporterId cannot be empty")
	}
	return &Case{
		ID:            id,
		Kind:          domain.KindFIR,
		ReporterID:    reporter,
		Name:          p.Name,
		Mobile:        p.Mobile,
		Email:         p.Email,
		IncidentType:  p.IncidentType,
		Description:   p.Description,
		State:         p.State,
		City:          p.City,
		IncidentDate:  p.IncidentDate,
		RegisteredAt:  now,
		Suspects:      ids.NormalizeIDs(p.Suspects),
		FinalCulprits: []string{},
		Status:        workflow.StatusPending,
		Statement:     []StatementEntry{},
	}, nil
}

func (c *Case) IsFiledBy(reporterID string) bool {
	return reporterID != "" && c.ReporterID == reporterID
}

func (c *Case) IsSuspect(personID string) bool {
	return ids.Contains(c.Suspects, personID)
}

func (c *Case) IsCulprit(personID string) bool {
	return ids.Contains(c.FinalCulprits, personID)
}

// Implicates reports whether personID is named as a suspect or final culprit.
func (c *Case) Implicates(personID string) bool {
	return c.IsSuspect(personID) || c.IsCulprit(personID)
}

// VisibleTo reports whether a citizen may read the case: its filer and
// anyone it implicates.
func (c *Case) VisibleTo(personID string) bool {
	return c.IsFiledBy(personID) || c.Implicates(personID)
}

// IsActive reports whether the case is still open to investigation.
func (c *Case) IsActive() bool {
	return c.Status == workflow.StatusPending || c.Status == workflow.StatusProcessing
}

// ApplyTransition stores an accepted workflow decision.
// Must only be called with a Decision whose Allowed is true.
func (c *Case) ApplyTransition(d workflow.Decision, now time.Time) {
	c.Status = d.Next
	if d.Next == workflow.StatusClosed && c.ClosedAt == nil {
		closed := now
		c.ClosedAt = &closed
	}
}

// ReplaceSubjects overwrites both identifier lists.
func (c *Case) ReplaceSubjects(suspects, culprits []string) {
	c.Suspects = ids.NormalizeIDs(suspects)
	c.FinalCulprits = ids.NormalizeIDs(culprits)
}

func (c *Case) AppendStatement(text string, now time.Time) {
	c.Statement = append(c.Statement, StatementEntry{At: now, Text: text})
}

// StatementText renders the statement as one field, each entry as a newline,
// its timestamp, a newline and its text.
func (c *Case) StatementText() string {
	var b strings.Builder
	for _, e := range c.Statement {
		b.WriteString("\n")
		b.WriteString(e.At.UTC().Format(time.RFC3339))
		b.WriteString("\n")
		b.WriteString(e.Text)
	}
	return b.String()
}

// CloseDate renders ClosedAt, or CloseDatePending while the case is open.
func (c *Case) CloseDate() string {
	if c.ClosedAt == nil {
		return CloseDatePending
	}
	return c.ClosedAt.UTC().Format(time.RFC3339)
}
