// Package service implements the incident-report (FIR) repository: filing,
// citizen and officer reads, officer updates through the case workflow, and
// per-person case counts.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"firledger/internal/audit"
	"firledger/internal/cases/models"
	"firledger/internal/identity"
	"firledger/internal/ledger"
	"firledger/internal/platform/metrics"
	"firledger/internal/query"
	"firledger/internal/workflow"
	"firledger/pkg/domain"
	dErrors "firledger/pkg/domain-errors"
	"firledger/pkg/hexcodec"
	"firledger/pkg/outcome"
	"firledger/pkg/platform/sentinel"
	"firledger/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks AuditPublisher

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// errNotCase marks a record that exists under the id but is another kind.
var errNotCase = errors.New("record is not a FIR")

// Service is the case repository.
type Service struct {
	store          ledger.Store
	query          *query.Engine
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
	tracer         trace.Tracer
	maxAttempts    int
	newID          func() domain.RecordID
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithMaxAttempts bounds optimistic retries per update.
func WithMaxAttempts(n int) Option {
	return func(s *Service) {
		s.maxAttempts = n
	}
}

// WithIDGenerator replaces the random id source.
func WithIDGenerator(fn func() domain.RecordID) Option {
	return func(s *Service) {
		s.newID = fn
	}
}

// New constructs a Service over store. The query engine must scan the same
// store.
func New(store ledger.Store, engine *query.Engine, opts ...Option) *Service {
	s := &Service{
		store:       store,
		query:       engine,
		maxAttempts: ledger.DefaultMaxAttempts,
		newID:       domain.NewRecordID,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer("firledger/internal/cases")
	}
	return s
}

// CreateCase files a new pending case. Name and Description are hex text,
// Suspects a hex JSON array. Any caller may file.
func (s *Service) CreateCase(ctx context.Context, req models.CreateCaseRequest) (domain.RecordID, error) {
	ctx, span := s.tracer.Start(ctx, "cases.CreateCase")
	defer span.End()

	name, err := hexcodec.DecodeText("name", req.Name)
	if err != nil {
		return "", err
	}
	description, err := hexcodec.DecodeText("description", req.Description)
	if err != nil {
		return "", err
	}
	suspects, err := hexcodec.DecodeList("suspects", req.Suspects)
	if err != nil {
		return "", err
	}

	id := s.newID()
	c, err := models.NewCase(id, models.NewCaseParams{
		ReporterID:   req.ReporterID,
		Name:         name,
		Mobile:       req.Mobile,
		Email:        req.Email,
		IncidentType: req.IncidentType,
		Description:  description,
		State:        req.State,
		City:         req.City,
		IncidentDate: req.IncidentDate,
		Suspects:     suspects,
	}, requestcontext.Now(ctx))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return "", dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return "", err
	}

	raw, err := json.Marshal(c)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode case")
	}
	if _, err := s.store.Put(ctx, id.String(), raw, ledger.NoVersion); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return "", dErrors.New(dErrors.CodeConflict, fmt.Sprintf("%s already exists", id))
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to store case")
	}

	span.SetAttributes(attribute.String("case.id", id.String()))
	s.metrics.IncrementCreated(string(domain.KindFIR))
	s.logAudit(ctx, c, audit.ActionCaseCreated, c.ReporterID)
	return id, nil
}

// CasesFiledBy lists the cases whose reporter is reporterID.
func (s *Service) CasesFiledBy(ctx context.Context, reporterID string) ([]query.Item[models.Case], error) {
	return query.Filter(ctx, s.query, "cases_filed_by", domain.KindFIR, func(c models.Case) bool {
		return c.IsFiledBy(reporterID)
	})
}

// CasesAgainst lists the cases naming personID as a suspect or final culprit.
func (s *Service) CasesAgainst(ctx context.Context, personID string) ([]query.Item[models.Case], error) {
	return query.Filter(ctx, s.query, "cases_against", domain.KindFIR, func(c models.Case) bool {
		return c.Implicates(personID)
	})
}

// CaseForRequester returns a case to its filer or to anyone it implicates.
func (s *Service) CaseForRequester(ctx context.Context, id domain.RecordID, reporterID string) (outcome.Result[models.Case], error) {
	ctx, span := s.tracer.Start(ctx, "cases.CaseForRequester")
	defer span.End()

	c, err := s.load(ctx, id)
	if errors.Is(err, errNotCase) {
		return outcome.Unauthorized[models.Case](), nil
	}
	if err != nil {
		return outcome.Result[models.Case]{}, err
	}
	if !c.VisibleTo(reporterID) {
		return outcome.Unauthorized[models.Case](), nil
	}
	return outcome.Accept(*c), nil
}

// CasesByJurisdiction lists every record of kind inside the officer's state
// and city. Records are returned undecoded since kind may be any record kind.
func (s *Service) CasesByJurisdiction(ctx context.Context, officer identity.Identity, kind domain.Kind) (outcome.Result[[]query.Item[json.RawMessage]], error) {
	if !officer.IsPolice() {
		return outcome.Unauthorized[[]query.Item[json.RawMessage]](), nil
	}
	items, err := query.FilterRaw(ctx, s.query, "records_by_jurisdiction", func(h query.Header) bool {
		return h.Kind == kind && officer.CoversAll(h.State, h.City)
	})
	if err != nil {
		return outcome.Result[[]query.Item[json.RawMessage]]{}, err
	}
	return outcome.Accept(items), nil
}

// CaseForOfficer returns a case to police whose jurisdiction matches its
// state or its city.
func (s *Service) CaseForOfficer(ctx context.Context, id domain.RecordID, officer identity.Identity) (outcome.Result[models.Case], error) {
	ctx, span := s.tracer.Start(ctx, "cases.CaseForOfficer")
	defer span.End()

	if !officer.IsPolice() {
		return outcome.Unauthorized[models.Case](), nil
	}
	c, err := s.load(ctx, id)
	if err != nil {
		return outcome.Result[models.Case]{}, err
	}
	if !officer.CoversAny(c.State, c.City) {
		return outcome.Unauthorized[models.Case](), nil
	}
	return outcome.Accept(*c), nil
}

// UpdateCase applies an officer's full update: status through the case
// workflow, replaced suspect and culprit lists, and one statement entry.
func (s *Service) UpdateCase(ctx context.Context, officer identity.Identity, req models.UpdateCaseRequest) (outcome.Result[models.Case], error) {
	ctx, span := s.tracer.Start(ctx, "cases.UpdateCase")
	defer span.End()

	if !officer.IsPolice() {
		return outcome.Unauthorized[models.Case](), nil
	}
	id, err := domain.ParseRecordID(req.ID)
	if err != nil {
		return outcome.Result[models.Case]{}, err
	}
	suspects, err := hexcodec.DecodeList("suspects", req.Suspects)
	if err != nil {
		return outcome.Result[models.Case]{}, err
	}
	statement, err := hexcodec.DecodeText("policeStatement", req.Statement)
	if err != nil {
		return outcome.Result[models.Case]{}, err
	}
	culprits, err := hexcodec.DecodeList("finalCulprits", req.FinalCulprits)
	if err != nil {
		return outcome.Result[models.Case]{}, err
	}

	return s.transition(ctx, officer, id, req.Status, audit.ActionCaseUpdated,
		func(c *models.Case, d workflow.Decision, now time.Time) {
			c.ReplaceSubjects(suspects, culprits)
			c.AppendStatement(statement, now)
			c.ApplyTransition(d, now)
		})
}

// UpdateCaseStatus moves a case through the workflow without touching any
// other field.
func (s *Service) UpdateCaseStatus(ctx context.Context, officer identity.Identity, id domain.RecordID, status workflow.Status) (outcome.Result[models.Case], error) {
	ctx, span := s.tracer.Start(ctx, "cases.UpdateCaseStatus")
	defer span.End()

	if !officer.IsPolice() {
		return outcome.Unauthorized[models.Case](), nil
	}
	return s.transition(ctx, officer, id, status, audit.ActionCaseStatusUpdated,
		func(c *models.Case, d workflow.Decision, now time.Time) {
			c.ApplyTransition(d, now)
		})
}

// SubjectCaseCounts counts, for police, the active cases naming personID as
// a suspect and the cases naming them as a final culprit.
func (s *Service) SubjectCaseCounts(ctx context.Context, personID string, officer identity.Identity) (outcome.Result[models.SubjectCounts], error) {
	if !officer.IsPolice() {
		return outcome.Unauthorized[models.SubjectCounts](), nil
	}
	items, err := query.Filter(ctx, s.query, "subject_case_counts", domain.KindFIR, func(c models.Case) bool {
		return c.Implicates(personID)
	})
	if err != nil {
		return outcome.Result[models.SubjectCounts]{}, err
	}

	var counts models.SubjectCounts
	for _, it := range items {
		if it.Record.IsSuspect(personID) && it.Record.IsActive() {
			counts.SuspectCount++
		}
		if it.Record.IsCulprit(personID) {
			counts.CulpritCount++
		}
	}
	counts.ActiveCases = counts.SuspectCount
	counts.ClosedCases = counts.CulpritCount
	return outcome.Accept(counts), nil
}
