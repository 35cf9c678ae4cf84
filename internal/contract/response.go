package contract

import (
	"encoding/json"

	dErrors "firledger/pkg/domain-errors"
	"firledger/pkg/outcome"
)

// Response is what a named operation hands back to its caller: either a JSON
// payload or the text of a policy rejection.
type Response struct {
	Payload   json.RawMessage
	Rejection string
}

// Rejected reports whether the operation was refused.
func (r Response) Rejected() bool {
	return r.Rejection != ""
}

// String renders the response as clients receive it: the JSON document, or
// the bare rejection text.
func (r Response) String() string {
	if r.Rejected() {
		return r.Rejection
	}
	return string(r.Payload)
}

func payload(v any) (Response, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return Response{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode response")
	}
	return Response{Payload: raw}, nil
}

func rejection(reason string) Response {
	return Response{Rejection: reason}
}

// fromResult maps an accepted value through view, or carries the rejection.
func fromResult[T, V any](res outcome.Result[T], view func(T) V) (Response, error) {
	if res.Rejected() {
		return rejection(res.Reason()), nil
	}
	return payload(view(res.MustValue()))
}
