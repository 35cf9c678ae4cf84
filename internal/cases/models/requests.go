package models

import "firledger/internal/workflow"

// CreateCaseRequest is a filing as received at the boundary. Name and
// Description are hex-encoded text; Suspects is a hex-encoded JSON array.
type CreateCaseRequest struct {
	ReporterID   string
	Name         string
	Mobile       string
	IncidentType string
	Email        string
	Description  string
	State        string
	City         string
	IncidentDate string
	Suspects     string
}

// UpdateCaseRequest is an officer's full update. Suspects and FinalCulprits
// are hex-encoded JSON arrays; Statement is hex-encoded text.
type UpdateCaseRequest struct {
	ID            string
	Suspects      string
	Status        workflow.Status
	Statement     string
	FinalCulprits string
}

// SubjectCounts aggregates the cases naming one person. ActiveCases mirrors
// SuspectCount and ClosedCases mirrors CulpritCount.
type SubjectCounts struct {
	SuspectCount int `json:"suspectCount"`
	CulpritCount int `json:"culpritCount"`
	ActiveCases  int `json:"activeCases"`
	ClosedCases  int `json:"closedCases"`
}
