package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Ledger backends return these
// (optionally wrapped) so services can translate them into domain errors.
//
//   - ErrNotFound: no entry exists for the key
//   - ErrConflict: the entry's version moved since it was read, or a create
//     collided with an existing key
//   - ErrUnavailable: the backend could not be reached
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
