// Package domain holds the identifiers and discriminants shared by every
// record kind in the ledger.
package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "firledger/pkg/domain-errors"
)

// RecordID is the ledger key of a record. Ids are server-assigned at creation
// and never reused.
type RecordID string

// NewRecordID returns a fresh random identifier.
func NewRecordID() RecordID {
	return RecordID(uuid.NewString())
}

// ParseRecordID validates a caller-supplied identifier. Lookups by id only
// need it to be non-empty: a well-formed id with no record is a not-found, not
// an invalid input.
func ParseRecordID(s string) (RecordID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "record id is required")
	}
	return RecordID(s), nil
}

func (id RecordID) String() string {
	return string(id)
}
