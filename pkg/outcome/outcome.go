// Package outcome models the soft-rejection channel of ledger operations.
//
// An operation either fails hard (a returned error), is refused for a policy
// reason (a rejected Result carrying the human-readable reason), or succeeds
// (an accepted Result carrying the value). Call sites branch on Rejected
// before reading the value.
package outcome

// Reasons shared across record kinds.
const (
	ReasonUnauthorized = "Unauthorized request"
)

// Result is either an accepted value or a rejection reason.
type Result[T any] struct {
	value    T
	reason   string
	rejected bool
}

// Accept wraps a successful value.
func Accept[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Reject builds a refusal carrying reason.
func Reject[T any](reason string) Result[T] {
	return Result[T]{reason: reason, rejected: true}
}

// Unauthorized is Reject with the shared unauthorized reason.
func Unauthorized[T any]() Result[T] {
	return Reject[T](ReasonUnauthorized)
}

// Rejected reports whether the operation was refused.
func (r Result[T]) Rejected() bool {
	return r.rejected
}

// Reason returns the refusal reason, or "" for accepted results.
func (r Result[T]) Reason() string {
	return r.reason
}

// Value returns the accepted value and true, or the zero value and false.
func (r Result[T]) Value() (T, bool) {
	if r.rejected {
		var zero T
		return zero, false
	}
	return r.value, true
}

// MustValue returns the accepted value and panics on a rejected result.
// Intended for tests and for code paths that have already checked Rejected.
func (r Result[T]) MustValue() T {
	if r.rejected {
		panic("outcome: MustValue on rejected result: " + r.reason)
	}
	return r.value
}
