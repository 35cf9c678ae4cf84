package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantRole  Role
		wantState string
		wantCity  string
	}{
		{name: "police with domain", input: "police.karnataka.bengaluru@gov.in", wantRole: RolePolice, wantState: "karnataka", wantCity: "bengaluru"},
		{name: "citizen", input: "citizen.kerala.kochi@mail.com", wantRole: RoleCitizen, wantState: "kerala", wantCity: "kochi"},
		{name: "unknown role degrades to citizen", input: "admin.kerala.kochi@mail.com", wantRole: RoleCitizen, wantState: "kerala", wantCity: "kochi"},
		{name: "no domain suffix", input: "police.goa.panaji", wantRole: RolePolice, wantState: "goa", wantCity: "panaji"},
		{name: "too few segments", input: "police.goa@x", wantRole: RoleInvalid},
		{name: "plain email", input: "someone@example.com", wantRole: RoleInvalid},
		{name: "empty", input: "", wantRole: RoleInvalid},
		{name: "empty state", input: "police..panaji@x", wantRole: RoleInvalid},
		{name: "empty city", input: "police.goa.@x", wantRole: RoleInvalid},
		{name: "case sensitive role", input: "Police.goa.panaji@x", wantRole: RoleCitizen, wantState: "goa", wantCity: "panaji"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := Parse(tt.input)
			assert.Equal(t, tt.wantRole, id.Role)
			assert.Equal(t, tt.wantState, id.State)
			assert.Equal(t, tt.wantCity, id.City)
			assert.Equal(t, tt.input, id.String())
		})
	}
}

func TestPredicatesFailClosed(t *testing.T) {
	invalid := Parse("garbage")
	assert.False(t, invalid.Valid())
	assert.False(t, invalid.IsPolice())
	assert.False(t, invalid.CoversAll("", ""))
	assert.False(t, invalid.CoversAny("", ""))

	var zero Identity
	assert.False(t, zero.IsPolice())
	assert.False(t, zero.CoversAny("", ""))
}

func TestJurisdictionAsymmetry(t *testing.T) {
	officer := Parse("police.karnataka.bengaluru@gov.in")

	assert.True(t, officer.CoversAll("karnataka", "bengaluru"))
	assert.True(t, officer.CoversAny("karnataka", "bengaluru"))

	// same state, different city
	assert.False(t, officer.CoversAll("karnataka", "mysuru"))
	assert.True(t, officer.CoversAny("karnataka", "mysuru"))

	// different state, same city name
	assert.False(t, officer.CoversAll("kerala", "bengaluru"))
	assert.True(t, officer.CoversAny("kerala", "bengaluru"))

	assert.False(t, officer.CoversAny("kerala", "kochi"))
}
