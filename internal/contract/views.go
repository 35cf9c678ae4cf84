package contract

import (
	"encoding/json"
	"fmt"
	"time"

	bgmodels "firledger/internal/backgroundcheck/models"
	casemodels "firledger/internal/cases/models"
	"firledger/internal/query"
	"firledger/internal/workflow"
	"firledger/pkg/domain"
	dErrors "firledger/pkg/domain-errors"
)

// CaseView is a case as rendered to callers. The statement entries collapse
// into one text field and the close date renders as "pending" until closed.
type CaseView struct {
	ID              domain.RecordID `json:"id"`
	Kind            domain.Kind     `json:"kind"`
	ReporterID      string          `json:"reporterId"`
	Name            string          `json:"name"`
	Mobile          string          `json:"mobile"`
	Email           string          `json:"email"`
	IncidentType    string          `json:"incidentType"`
	Description     string          `json:"description"`
	State           string          `json:"state"`
	City            string          `json:"city"`
	IncidentDate    string          `json:"incidentDate"`
	RegisteredAt    time.Time       `json:"registeredAt"`
	Suspects        []string        `json:"suspects"`
	FinalCulprits   []string        `json:"finalCulprits"`
	Status          workflow.Status `json:"status"`
	PoliceStatement string          `json:"policeStatement"`
	CaseCloseDate   string          `json:"caseCloseDate"`
}

// RequestView is a background check or view grant as rendered to callers.
// statusUpdatedAt is empty until the review.
type RequestView struct {
	ID                   domain.RecordID `json:"id"`
	Kind                 domain.Kind     `json:"kind"`
	RequesterEmail       string          `json:"requesterEmail"`
	IdentificationType   string          `json:"identificationType"`
	IdentificationNumber string          `json:"identificationNumber"`
	RequesterName        string          `json:"requesterName"`
	State                string          `json:"state"`
	City                 string          `json:"city"`
	Purpose              string          `json:"purpose"`
	PurposeDescription   string          `json:"purposeDescription"`
	CandidateID          string          `json:"candidateId"`
	CandidateName        string          `json:"candidateName"`
	AppliedAt            time.Time       `json:"appliedAt"`
	Status               workflow.Status `json:"status"`
	StatusUpdatedAt      string          `json:"statusUpdatedAt"`
	OfficerComments      string          `json:"officerComments"`
}

// Created acknowledges a new record.
type Created struct {
	ID domain.RecordID `json:"id"`
}

func caseView(c casemodels.Case) CaseView {
	return CaseView{
		ID:              c.ID,
		Kind:            c.Kind,
		ReporterID:      c.ReporterID,
		Name:            c.Name,
		Mobile:          c.Mobile,
		Email:           c.Email,
		IncidentType:    c.IncidentType,
		Description:     c.Description,
		State:           c.State,
		City:            c.City,
		IncidentDate:    c.IncidentDate,
		RegisteredAt:    c.RegisteredAt,
		Suspects:        nonNil(c.Suspects),
		FinalCulprits:   nonNil(c.FinalCulprits),
		Status:          c.Status,
		PoliceStatement: c.StatementText(),
		CaseCloseDate:   c.CloseDate(),
	}
}

func requestView(r bgmodels.Request) RequestView {
	return RequestView{
		ID:                   r.ID,
		Kind:                 r.Kind,
		RequesterEmail:       r.RequesterEmail,
		IdentificationType:   r.IdentificationType,
		IdentificationNumber: r.IdentificationNumber,
		RequesterName:        r.RequesterName,
		State:                r.State,
		City:                 r.City,
		Purpose:              r.Purpose,
		PurposeDescription:   r.PurposeDescription,
		CandidateID:          r.CandidateID,
		CandidateName:        r.CandidateName,
		AppliedAt:            r.AppliedAt,
		Status:               r.Status,
		StatusUpdatedAt:      r.StatusUpdatedText(),
		OfficerComments:      r.OfficerComments,
	}
}

func listView[T, V any](items []query.Item[T], view func(T) V) []query.Item[V] {
	out := make([]query.Item[V], 0, len(items))
	for _, it := range items {
		out = append(out, query.Item[V]{Key: it.Key, Record: view(it.Record)})
	}
	return out
}

func caseList(items []query.Item[casemodels.Case]) []query.Item[CaseView] {
	return listView(items, caseView)
}

func requestList(items []query.Item[bgmodels.Request]) []query.Item[RequestView] {
	return listView(items, requestView)
}

// rawList decodes undecoded listing records as T and renders each through view.
func rawList[T, V any](items []query.Item[json.RawMessage], view func(T) V) (Response, error) {
	out := make([]query.Item[V], 0, len(items))
	for _, it := range items {
		var rec T
		if err := json.Unmarshal(it.Record, &rec); err != nil {
			return Response{}, dErrors.Wrap(err, dErrors.CodeInternal, fmt.Sprintf("record %s is not decodable", it.Key))
		}
		out = append(out, query.Item[V]{Key: it.Key, Record: view(rec)})
	}
	return payload(out)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
