// Package workflow holds the status transition tables shared by the case and
// background-check update paths.
//
// A Machine is a pure function of (current, requested). It never touches
// storage, so the same pair always yields the same Decision. Rejections are
// reported as a Decision with a human-readable reason, not as errors.
package workflow

// Status is a record's stored workflow status, or a status a caller requests.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusApproved   Status = "approved"
	StatusDeclined   Status = "declined"
	StatusClosed     Status = "closed"
)

// Rejection reasons returned to callers verbatim.
const (
	ReasonAlreadyClosed       = "Invalid! Case already closed."
	ReasonAlreadyDeclined     = "Invalid! Case already declined."
	ReasonInProgress          = "Invalid! Case is in progress."
	ReasonApprovedNoDecline   = "Invalid! Case already approved. Cannot dissaproved now"
	ReasonProcessingNoDecline = "Invalid! Case is in progress. Cannot dissaproved now"
	ReasonUnknownCaseStatus   = "Invalid! Unknown case status."

	ReasonAlreadyUpdated      = "Status already updated"
	ReasonUnknownReviewStatus = "Invalid! Unknown request status."
)

// Decision is the verdict for one transition request.
type Decision struct {
	Allowed bool
	// Next is the status to store when Allowed.
	Next Status
	// Reason explains a refusal.
	Reason string
}

type guard struct {
	from   func(Status) bool
	to     map[Status]bool // nil matches every request
	reason string
}

// Machine is an immutable transition table. Guards are checked in order;
// the first guard matching (current, requested) refuses the request.
type Machine struct {
	name          string
	requestable   map[Status]bool
	guards        []guard
	rewrite       map[Status]Status
	unknownReason string
}

// Name identifies the machine in logs and metrics.
func (m *Machine) Name() string {
	return m.name
}

// Evaluate decides whether current may move to requested.
func (m *Machine) Evaluate(current, requested Status) Decision {
	for _, g := range m.guards {
		if !g.from(current) {
			continue
		}
		if g.to == nil || g.to[requested] {
			return Decision{Reason: g.reason}
		}
	}
	if !m.requestable[requested] {
		return Decision{Reason: m.unknownReason}
	}
	next := requested
	if r, ok := m.rewrite[requested]; ok {
		next = r
	}
	return Decision{Allowed: true, Next: next}
}

// IsTerminal reports whether no request can leave current.
func (m *Machine) IsTerminal(current Status) bool {
	for _, g := range m.guards {
		if g.to == nil && g.from(current) {
			return true
		}
	}
	return false
}

func is(s Status) func(Status) bool {
	return func(c Status) bool { return c == s }
}

func not(s Status) func(Status) bool {
	return func(c Status) bool { return c != s }
}

func set(statuses ...Status) map[Status]bool {
	m := make(map[Status]bool, len(statuses))
	for _, s := range statuses {
		m[s] = true
	}
	return m
}

// Case governs incident reports. closed and declined absorb every request.
// A request for approved means "approve and begin processing" and is stored
// as processing, so approved is never observed in storage.
var Case = &Machine{
	name: "case",
	requestable: set(
		StatusPending, StatusProcessing, StatusApproved, StatusDeclined, StatusClosed,
	),
	guards: []guard{
		{from: is(StatusClosed), reason: ReasonAlreadyClosed},
		{from: is(StatusDeclined), reason: ReasonAlreadyDeclined},
		{from: is(StatusApproved), to: set(StatusPending), reason: ReasonInProgress},
		{from: is(StatusApproved), to: set(StatusDeclined), reason: ReasonApprovedNoDecline},
		{from: is(StatusProcessing), to: set(StatusApproved, StatusPending), reason: ReasonInProgress},
		{from: is(StatusProcessing), to: set(StatusDeclined), reason: ReasonProcessingNoDecline},
	},
	rewrite:       map[Status]Status{StatusApproved: StatusProcessing},
	unknownReason: ReasonUnknownCaseStatus,
}

// Review governs background checks and view grants: one step from pending to
// a final verdict.
var Review = &Machine{
	name:        "review",
	requestable: set(StatusApproved, StatusDeclined),
	guards: []guard{
		{from: not(StatusPending), reason: ReasonAlreadyUpdated},
	},
	unknownReason: ReasonUnknownReviewStatus,
}
