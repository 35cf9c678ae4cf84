// Package service implements the background-check repository, including the
// view grants that let a requester list a candidate's cases once police
// approve.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"firledger/internal/audit"
	"firledger/internal/backgroundcheck/models"
	casemodels "firledger/internal/cases/models"
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

// Grant rejection reasons, checked in this order.
const (
	ReasonNotAGrant     = "Not allowed to view FIRs"
	ReasonGrantPending  = "Request already pending"
	ReasonGrantDeclined = "View FIRs request declined"
)

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service is the background-check repository.
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

func WithMaxAttempts(n int) Option {
	return func(s *Service) {
		s.maxAttempts = n
	}
}

func WithIDGenerator(fn func() domain.RecordID) Option {
	return func(s *Service) {
		s.newID = fn
	}
}

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
		s.tracer = otel.Tracer("firledger/internal/backgroundcheck")
	}
	return s
}

// CreateRequest files a pending background check.
func (s *Service) CreateRequest(ctx context.Context, req models.CreateRequest) (domain.RecordID, error) {
	return s.create(ctx, domain.KindBackgroundCheck, audit.ActionCheckCreated, req)
}

// CreateViewGrant files a pending request to view a candidate's cases.
func (s *Service) CreateViewGrant(ctx context.Context, req models.CreateRequest) (domain.RecordID, error) {
	return s.create(ctx, domain.KindViewFIRs, audit.ActionViewGrantCreated, req)
}

func (s *Service) create(ctx context.Context, kind domain.Kind, action audit.Action, req models.CreateRequest) (domain.RecordID, error) {
	ctx, span := s.tracer.Start(ctx, "backgroundcheck.Create", trace.WithAttributes(
		attribute.String("ledger.kind", string(kind)),
	))
	defer span.End()

	params, err := decodeCreate(req)
	if err != nil {
		return "", err
	}
	id := s.newID()
	r, err := models.NewRequest(id, kind, params, requestcontext.Now(ctx))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return "", dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return "", err
	}

	raw, err := json.Marshal(r)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode request")
	}
	if _, err := s.store.Put(ctx, id.String(), raw, ledger.NoVersion); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return "", dErrors.New(dErrors.CodeConflict, fmt.Sprintf("%s already exists", id))
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to store request")
	}

	s.metrics.IncrementCreated(string(kind))
	s.logAudit(ctx, r, action, r.RequesterEmail)
	return id, nil
}

func decodeCreate(req models.CreateRequest) (models.NewRequestParams, error) {
	p := models.NewRequestParams{
		RequesterEmail:       req.RequesterEmail,
		IdentificationNumber: req.IdentificationNumber,
		State:                req.State,
		City:                 req.City,
		CandidateID:          req.CandidateID,
	}
	fields := []struct {
		name string
		in   string
		out  *string
	}{
		{"identificationType", req.IdentificationType, &p.IdentificationType},
		{"requesterName", req.RequesterName, &p.RequesterName},
		{"purpose", req.Purpose, &p.Purpose},
		{"purposeDescription", req.PurposeDescription, &p.PurposeDescription},
		{"candidateName", req.CandidateName, &p.CandidateName},
	}
	for _, f := range fields {
		v, err := hexcodec.DecodeText(f.name, f.in)
		if err != nil {
			return models.NewRequestParams{}, err
		}
		*f.out = v
	}
	return p, nil
}

// RequestsFor lists the background checks filed by email. View grants are
// not included.
func (s *Service) RequestsFor(ctx context.Context, email string) ([]query.Item[models.Request], error) {
	return query.Filter(ctx, s.query, "requests_for", domain.KindBackgroundCheck, func(r models.Request) bool {
		return r.OwnedBy(email)
	})
}

// RequestDetails returns a background check to the email that filed it.
func (s *Service) RequestDetails(ctx context.Context, email string, id domain.RecordID) (outcome.Result[models.Request], error) {
	r, err := s.load(ctx, id)
	if err != nil {
		return outcome.Result[models.Request]{}, err
	}
	if r.Kind != domain.KindBackgroundCheck || !r.OwnedBy(email) {
		return outcome.Unauthorized[models.Request](), nil
	}
	return outcome.Accept(*r), nil
}

// CandidateCasesViaGrant lists the cases filed by a grant's candidate, for
// the grant's owner, once police approved the grant.
func (s *Service) CandidateCasesViaGrant(ctx context.Context, id domain.RecordID, email string) (outcome.Result[[]query.Item[casemodels.Case]], error) {
	type result = outcome.Result[[]query.Item[casemodels.Case]]

	ctx, span := s.tracer.Start(ctx, "backgroundcheck.CandidateCasesViaGrant")
	defer span.End()

	entry, err := s.store.Get(ctx, id.String())
	if err != nil {
		return result{}, translate(id, err)
	}
	r, err := decodeRequest(id, entry.Value)
	if err != nil {
		return result{}, err
	}
	switch {
	case !recordOwnedBy(r, entry.Value, email):
		return outcome.Unauthorized[[]query.Item[casemodels.Case]](), nil
	case !r.IsGrant():
		return outcome.Reject[[]query.Item[casemodels.Case]](ReasonNotAGrant), nil
	case r.Status == workflow.StatusPending:
		return outcome.Reject[[]query.Item[casemodels.Case]](ReasonGrantPending), nil
	case r.Status == workflow.StatusDeclined:
		return outcome.Reject[[]query.Item[casemodels.Case]](ReasonGrantDeclined), nil
	}

	candidate := r.CandidateID
	items, err := query.Filter(ctx, s.query, "candidate_cases", domain.KindFIR, func(c casemodels.Case) bool {
		return c.IsFiledBy(candidate)
	})
	if err != nil {
		return result{}, err
	}
	return outcome.Accept(items), nil
}

// recordOwnedBy reports whether email owns the stored record. Requests belong
// to their requester and cases to the contact email they were filed with.
func recordOwnedBy(r *models.Request, raw []byte, email string) bool {
	if r.Kind != domain.KindFIR {
		return r.OwnedBy(email)
	}
	var c casemodels.Case
	if err := json.Unmarshal(raw, &c); err != nil {
		return false
	}
	return email != "" && c.Email == email
}

func (s *Service) load(ctx context.Context, id domain.RecordID) (*models.Request, error) {
	entry, err := s.store.Get(ctx, id.String())
	if err != nil {
		return nil, translate(id, err)
	}
	return decodeRequest(id, entry.Value)
}

func decodeRequest(id domain.RecordID, raw []byte) (*models.Request, error) {
	var r models.Request
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, fmt.Sprintf("record %s is not decodable", id))
	}
	return &r, nil
}

func translate(id domain.RecordID, err error) error {
	var de *dErrors.Error
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("%s does not exist", id))
	case errors.As(err, &de):
		return err
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return dErrors.Wrap(err, dErrors.CodeTimeout, "request operation aborted")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "ledger failure")
	}
}

func (s *Service) logAudit(ctx context.Context, r *models.Request, action audit.Action, actor string) {
	attributes := []any{
		"record_id", r.ID,
		"kind", r.Kind,
		"status", r.Status,
		"event", string(action),
		"log_type", "audit",
	}
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	s.logger.InfoContext(ctx, string(action), attributes...)

	if s.auditPublisher == nil {
		return
	}
	err := s.auditPublisher.Emit(ctx, audit.Event{
		RecordID: r.ID.String(),
		Kind:     string(r.Kind),
		Action:   action,
		Actor:    actor,
		Status:   string(r.Status),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event", "record_id", r.ID, "error", err)
	}
}
