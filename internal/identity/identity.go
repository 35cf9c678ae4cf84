// Package identity derives role and jurisdiction from the identity string the
// calling platform has already authenticated.
//
// The string has the shape role.state.city@domain, for example
// "police.karnataka.bengaluru@gov.in". Parsing never fails: anything without
// that structure becomes an invalid Identity, which satisfies no
// authorization predicate.
package identity

import "strings"

// Role is the caller's role segment.
type Role string

const (
	RoleInvalid Role = ""
	RoleCitizen Role = "citizen"
	RolePolice  Role = "police"
)

// Identity is the parsed caller. The zero value is invalid.
type Identity struct {
	Role  Role
	State string
	City  string
	raw   string
}

// Parse decodes s. Segments beyond the third are ignored; the domain suffix
// is stripped from the city segment. A missing state or city yields an
// invalid identity.
func Parse(s string) Identity {
	parts := strings.Split(s, ".")
	if len(parts) < 3 {
		return Identity{raw: s}
	}
	city, _, _ := strings.Cut(parts[2], "@")
	id := Identity{
		Role:  RoleCitizen,
		State: parts[1],
		City:  city,
		raw:   s,
	}
	if parts[0] == string(RolePolice) {
		id.Role = RolePolice
	}
	if id.State == "" || id.City == "" {
		return Identity{raw: s}
	}
	return id
}

// Valid reports whether s had the expected structure.
func (i Identity) Valid() bool {
	return i.Role != RoleInvalid
}

// IsPolice reports whether the caller may use police-only operations.
func (i Identity) IsPolice() bool {
	return i.Role == RolePolice
}

// CoversAll reports whether the record's state and city both match the
// caller's jurisdiction. List and update operations use this rule.
func (i Identity) CoversAll(state, city string) bool {
	return i.Valid() && i.State == state && i.City == city
}

// CoversAny reports whether either the record's state or its city matches.
// Only the single-record officer lookup uses this looser rule.
func (i Identity) CoversAny(state, city string) bool {
	return i.Valid() && (i.State == state || i.City == city)
}

// String returns the identity string as supplied.
func (i Identity) String() string {
	return i.raw
}
