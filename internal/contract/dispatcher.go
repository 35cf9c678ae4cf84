// Package contract exposes the ledger's operations by name, with positional
// string arguments, the way ledger clients invoke them.
//
// Each operation parses its caller identity, delegates to the case or
// background-check service, and renders the result as a JSON payload or a
// rejection string. Hard failures are returned as coded errors.
package contract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	bgmodels "firledger/internal/backgroundcheck/models"
	casemodels "firledger/internal/cases/models"
	"firledger/internal/identity"
	"firledger/internal/query"
	"firledger/internal/workflow"
	"firledger/pkg/domain"
	dErrors "firledger/pkg/domain-errors"
	"firledger/pkg/outcome"
)

//go:generate mockgen -source=dispatcher.go -destination=mocks/mocks.go -package=mocks CaseService,RequestService

// CaseService is the case repository as the dispatcher uses it.
type CaseService interface {
	CreateCase(ctx context.Context, req casemodels.CreateCaseRequest) (domain.RecordID, error)
	CasesFiledBy(ctx context.Context, reporterID string) ([]query.Item[casemodels.Case], error)
	CasesAgainst(ctx context.Context, personID string) ([]query.Item[casemodels.Case], error)
	CaseForRequester(ctx context.Context, id domain.RecordID, reporterID string) (outcome.Result[casemodels.Case], error)
	CasesByJurisdiction(ctx context.Context, officer identity.Identity, kind domain.Kind) (outcome.Result[[]query.Item[json.RawMessage]], error)
	CaseForOfficer(ctx context.Context, id domain.RecordID, officer identity.Identity) (outcome.Result[casemodels.Case], error)
	UpdateCase(ctx context.Context, officer identity.Identity, req casemodels.UpdateCaseRequest) (outcome.Result[casemodels.Case], error)
	UpdateCaseStatus(ctx context.Context, officer identity.Identity, id domain.RecordID, status workflow.Status) (outcome.Result[casemodels.Case], error)
	SubjectCaseCounts(ctx context.Context, personID string, officer identity.Identity) (outcome.Result[casemodels.SubjectCounts], error)
}

// RequestService is the background-check repository as the dispatcher uses it.
type RequestService interface {
	CreateRequest(ctx context.Context, req bgmodels.CreateRequest) (domain.RecordID, error)
	CreateViewGrant(ctx context.Context, req bgmodels.CreateRequest) (domain.RecordID, error)
	RequestsFor(ctx context.Context, email string) ([]query.Item[bgmodels.Request], error)
	RequestDetails(ctx context.Context, email string, id domain.RecordID) (outcome.Result[bgmodels.Request], error)
	UpdateRequestStatus(ctx context.Context, officer identity.Identity, id domain.RecordID, status workflow.Status, comments string) (outcome.Result[bgmodels.Request], error)
	CandidateCasesViaGrant(ctx context.Context, id domain.RecordID, email string) (outcome.Result[[]query.Item[casemodels.Case]], error)
}

type handlerFunc func(ctx context.Context, args []string) (Response, error)

type operation struct {
	params  []string
	handler handlerFunc
}

// Dispatcher routes named invocations to the repositories.
type Dispatcher struct {
	cases    CaseService
	requests RequestService
	logger   *slog.Logger
	ops      map[string]operation
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the dispatcher's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// New builds a Dispatcher over the two repositories.
func New(cases CaseService, requests RequestService, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		cases:    cases,
		requests: requests,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.ops = d.routes()
	return d
}

func (d *Dispatcher) routes() map[string]operation {
	requestParams := []string{
		"identificationType", "identificationNumber", "name", "emailId", "state", "city",
		"purpose", "purposeDescription", "candidateName", "candidateAadharNumber",
	}
	return map[string]operation{
		"createFIRRequest": {
			params: []string{
				"aadharNumber", "name", "mobileNum", "incidentType", "emailId", "description",
				"state", "city", "incidentDate", "suspects",
			},
			handler: d.createCase,
		},
		"getAllFIRRegisteredByUser":            {params: []string{"aadharNumber"}, handler: d.casesFiledBy},
		"getAllFIRRegisteredAgainstUser":       {params: []string{"aadharNumber"}, handler: d.casesAgainst},
		"getFIRDetailsByUser":                  {params: []string{"uuid", "aadharNumber"}, handler: d.caseForRequester},
		"getAllFIRByPolice":                    {params: []string{"emailId", "requestType"}, handler: d.casesByJurisdiction},
		"getFIRDetailsByPolice":                {params: []string{"uuid", "emailId"}, handler: d.caseForOfficer},
		"updateFIRByPolice":                    {params: []string{"emailId", "uuid", "suspects", "FIRStatus", "policeStatement", "finalCulprit"}, handler: d.updateCase},
		"updateFIRStatusByPolice":              {params: []string{"emailId", "uuid", "FIRStatus"}, handler: d.updateCaseStatus},
		"getFIROfUserByPolice":                 {params: []string{"aadharNumber", "emailId"}, handler: d.subjectCounts},
		"createBackgroundCheckRequest":         {params: requestParams, handler: d.createRequest},
		"createViewFIRsRequest":                {params: requestParams, handler: d.createViewGrant},
		"getAllbackgroundCheckRequests":        {params: []string{"emailId"}, handler: d.requestsFor},
		"getBackgroundCheckRequestDetails":     {params: []string{"emailId", "uuid"}, handler: d.requestDetails},
		"updateBackgroundCheckRequestByPolice": {params: []string{"emailId", "uuid", "requestStatus", "policeComments"}, handler: d.updateRequestStatus},
		"getAllFIRsOfUserByPolice":             {params: []string{"uuid", "emailId"}, handler: d.candidateCases},
	}
}

// Operations lists the operation names with their parameter names, sorted
// by operation name.
func (d *Dispatcher) Operations() []Signature {
	out := make([]Signature, 0, len(d.ops))
	for name, op := range d.ops {
		out = append(out, Signature{Name: name, Params: append([]string(nil), op.params...)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Signature describes one named operation.
type Signature struct {
	Name   string
	Params []string
}

// Invoke runs the named operation with positional arguments.
func (d *Dispatcher) Invoke(ctx context.Context, fn string, args ...string) (Response, error) {
	op, ok := d.ops[fn]
	if !ok {
		return Response{}, dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("unknown operation %q", fn))
	}
	if len(args) != len(op.params) {
		return Response{}, dErrors.New(dErrors.CodeBadRequest,
			fmt.Sprintf("%s expects %d arguments, got %d", fn, len(op.params), len(args)))
	}

	d.logger.DebugContext(ctx, "invoking operation", "operation", fn)
	resp, err := op.handler(ctx, args)
	switch {
	case err != nil:
		d.logger.InfoContext(ctx, "operation failed",
			"operation", fn,
			"code", dErrors.CodeOf(err),
			"error", err,
		)
	case resp.Rejected():
		d.logger.InfoContext(ctx, "operation rejected", "operation", fn, "reason", resp.Rejection)
	}
	return resp, err
}

func (d *Dispatcher) createCase(ctx context.Context, a []string) (Response, error) {
	id, err := d.cases.CreateCase(ctx, casemodels.CreateCaseRequest{
		ReporterID:   a[0],
		Name:         a[1],
		Mobile:       a[2],
		IncidentType: a[3],
		Email:        a[4],
		Description:  a[5],
		State:        a[6],
		City:         a[7],
		IncidentDate: a[8],
		Suspects:     a[9],
	})
	if err != nil {
		return Response{}, err
	}
	return payload(Created{ID: id})
}

func (d *Dispatcher) casesFiledBy(ctx context.Context, a []string) (Response, error) {
	items, err := d.cases.CasesFiledBy(ctx, a[0])
	if err != nil {
		return Response{}, err
	}
	return payload(caseList(items))
}

func (d *Dispatcher) casesAgainst(ctx context.Context, a []string) (Response, error) {
	items, err := d.cases.CasesAgainst(ctx, a[0])
	if err != nil {
		return Response{}, err
	}
	return payload(caseList(items))
}

func (d *Dispatcher) caseForRequester(ctx context.Context, a []string) (Response, error) {
	res, err := d.cases.CaseForRequester(ctx, domain.RecordID(a[0]), a[1])
	if err != nil {
		return Response{}, err
	}
	return fromResult(res, caseView)
}

func (d *Dispatcher) casesByJurisdiction(ctx context.Context, a []string) (Response, error) {
	kind := domain.Kind(a[1])
	res, err := d.cases.CasesByJurisdiction(ctx, identity.Parse(a[0]), kind)
	if err != nil {
		return Response{}, err
	}
	if res.Rejected() {
		return rejection(res.Reason()), nil
	}
	items := res.MustValue()
	switch kind {
	case domain.KindFIR:
		return rawList(items, caseView)
	case domain.KindBackgroundCheck, domain.KindViewFIRs:
		return rawList(items, requestView)
	}
	return payload(items)
}

func (d *Dispatcher) caseForOfficer(ctx context.Context, a []string) (Response, error) {
	res, err := d.cases.CaseForOfficer(ctx, domain.RecordID(a[0]), identity.Parse(a[1]))
	if err != nil {
		return Response{}, err
	}
	return fromResult(res, caseView)
}

func (d *Dispatcher) updateCase(ctx context.Context, a []string) (Response, error) {
	res, err := d.cases.UpdateCase(ctx, identity.Parse(a[0]), casemodels.UpdateCaseRequest{
		ID:            a[1],
		Suspects:      a[2],
		Status:        workflow.Status(a[3]),
		Statement:     a[4],
		FinalCulprits: a[5],
	})
	if err != nil {
		return Response{}, err
	}
	return fromResult(res, caseView)
}

func (d *Dispatcher) updateCaseStatus(ctx context.Context, a []string) (Response, error) {
	res, err := d.cases.UpdateCaseStatus(ctx, identity.Parse(a[0]), domain.RecordID(a[1]), workflow.Status(a[2]))
	if err != nil {
		return Response{}, err
	}
	return fromResult(res, caseView)
}

func (d *Dispatcher) subjectCounts(ctx context.Context, a []string) (Response, error) {
	res, err := d.cases.SubjectCaseCounts(ctx, a[0], identity.Parse(a[1]))
	if err != nil {
		return Response{}, err
	}
	return fromResult(res, func(c casemodels.SubjectCounts) casemodels.SubjectCounts { return c })
}

func requestFromArgs(a []string) bgmodels.CreateRequest {
	return bgmodels.CreateRequest{
		IdentificationType:   a[0],
		IdentificationNumber: a[1],
		RequesterName:        a[2],
		RequesterEmail:       a[3],
		State:                a[4],
		City:                 a[5],
		Purpose:              a[6],
		PurposeDescription:   a[7],
		CandidateName:        a[8],
		CandidateID:          a[9],
	}
}

func (d *Dispatcher) createRequest(ctx context.Context, a []string) (Response, error) {
	id, err := d.requests.CreateRequest(ctx, requestFromArgs(a))
	if err != nil {
		return Response{}, err
	}
	return payload(Created{ID: id})
}

func (d *Dispatcher) createViewGrant(ctx context.Context, a []string) (Response, error) {
	id, err := d.requests.CreateViewGrant(ctx, requestFromArgs(a))
	if err != nil {
		return Response{}, err
	}
	return payload(Created{ID: id})
}

func (d *Dispatcher) requestsFor(ctx context.Context, a []string) (Response, error) {
	items, err := d.requests.RequestsFor(ctx, a[0])
	if err != nil {
		return Response{}, err
	}
	return payload(requestList(items))
}

func (d *Dispatcher) requestDetails(ctx context.Context, a []string) (Response, error) {
	res, err := d.requests.RequestDetails(ctx, a[0], domain.RecordID(a[1]))
	if err != nil {
		return Response{}, err
	}
	return fromResult(res, requestView)
}

func (d *Dispatcher) updateRequestStatus(ctx context.Context, a []string) (Response, error) {
	res, err := d.requests.UpdateRequestStatus(ctx, identity.Parse(a[0]), domain.RecordID(a[1]), workflow.Status(a[2]), a[3])
	if err != nil {
		return Response{}, err
	}
	return fromResult(res, requestView)
}

func (d *Dispatcher) candidateCases(ctx context.Context, a []string) (Response, error) {
	res, err := d.requests.CandidateCasesViaGrant(ctx, domain.RecordID(a[0]), a[1])
	if err != nil {
		return Response{}, err
	}
	return fromResult(res, caseList)
}
