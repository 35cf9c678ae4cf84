package audit

import "time"

// Action names a ledger mutation worth auditing.
type Action string

const (
	ActionCaseCreated          Action = "case_created"
	ActionCaseUpdated          Action = "case_updated"
	ActionCaseStatusUpdated    Action = "case_status_updated"
	ActionCheckCreated         Action = "background_check_created"
	ActionViewGrantCreated     Action = "view_grant_created"
	ActionRequestStatusUpdated Action = "request_status_updated"
)

// Event is emitted from the repositories after a record is written. Keep it
// transport-agnostic so sinks can fan out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"requestId,omitempty"`
	RecordID  string    `json:"recordId"`
	Kind      string    `json:"kind"`
	Action    Action    `json:"action"`
	// Actor is the identity string or reporter id that caused the write.
	Actor  string `json:"actor,omitempty"`
	Status string `json:"status,omitempty"`
}
