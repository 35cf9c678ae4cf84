package domain

// Kind discriminates record types sharing the ledger keyspace. The store has
// no schema, so every persisted record carries one.
type Kind string

const (
	KindFIR             Kind = "FIR"
	KindBackgroundCheck Kind = "backgroundCheck"
	KindViewFIRs        Kind = "viewFIRs"
)

// IsKnown reports whether k is one of the kinds this service writes.
func (k Kind) IsKnown() bool {
	switch k {
	case KindFIR, KindBackgroundCheck, KindViewFIRs:
		return true
	}
	return false
}
