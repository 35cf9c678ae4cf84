package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"firledger/internal/audit"
	"firledger/internal/cases/models"
	"firledger/internal/identity"
	"firledger/internal/ledger"
	"firledger/internal/workflow"
	"firledger/pkg/domain"
	dErrors "firledger/pkg/domain-errors"
	"firledger/pkg/outcome"
	"firledger/pkg/platform/sentinel"
	"firledger/pkg/requestcontext"
)

type applyFunc func(c *models.Case, d workflow.Decision, now time.Time)

// transition runs read, authorize, evaluate and conditional write as one
// unit, repeating all of it when another writer got there first.
func (s *Service) transition(
	ctx context.Context,
	officer identity.Identity,
	id domain.RecordID,
	requested workflow.Status,
	action audit.Action,
	apply applyFunc,
) (outcome.Result[models.Case], error) {
	now := requestcontext.Now(ctx)

	var (
		result   outcome.Result[models.Case]
		decision *workflow.Decision
		updated  models.Case
	)
	updater := ledger.NewUpdater(s.store,
		ledger.WithMaxAttempts(s.maxAttempts),
		ledger.WithConflictHook(func(attempt int) {
			s.metrics.IncrementConflict(string(domain.KindFIR))
			s.logger.DebugContext(ctx, "case changed during update, retrying",
				"case_id", id,
				"attempt", attempt,
			)
		}),
	)

	_, err := updater.Update(ctx, id.String(), func(entry ledger.Entry) ([]byte, bool, error) {
		decision = nil
		c, err := decodeCase(id, entry.Value)
		if err != nil {
			return nil, false, err
		}
		if !officer.CoversAll(c.State, c.City) {
			result = outcome.Unauthorized[models.Case]()
			return nil, false, nil
		}
		d := workflow.Case.Evaluate(c.Status, requested)
		decision = &d
		if !d.Allowed {
			result = outcome.Reject[models.Case](d.Reason)
			return nil, false, nil
		}
		apply(c, d, now)
		raw, err := json.Marshal(c)
		if err != nil {
			return nil, false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode case")
		}
		updated = *c
		result = outcome.Accept(*c)
		return raw, true, nil
	})
	if err != nil {
		return outcome.Result[models.Case]{}, translate(id, err)
	}

	if decision != nil {
		s.metrics.ObserveTransition(workflow.Case.Name(), decision.Allowed)
	}
	if result.Rejected() {
		s.logger.InfoContext(ctx, "case update rejected",
			"case_id", id,
			"requested_status", requested,
			"reason", result.Reason(),
		)
		return result, nil
	}
	s.logAudit(ctx, &updated, action, officer.String())
	return result, nil
}

func (s *Service) load(ctx context.Context, id domain.RecordID) (*models.Case, error) {
	entry, err := s.store.Get(ctx, id.String())
	if err != nil {
		return nil, translate(id, err)
	}
	return decodeCase(id, entry.Value)
}

func decodeCase(id domain.RecordID, raw []byte) (*models.Case, error) {
	var c models.Case
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, fmt.Sprintf("record %s is not decodable", id))
	}
	if c.Kind != domain.KindFIR {
		return nil, dErrors.Wrap(errNotCase, dErrors.CodeNotFound, fmt.Sprintf("%s is not a FIR record", id))
	}
	return &c, nil
}

// translate maps store failures onto domain errors. Coded errors pass through.
func translate(id domain.RecordID, err error) error {
	var de *dErrors.Error
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("%s does not exist", id))
	case errors.As(err, &de):
		return err
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return dErrors.Wrap(err, dErrors.CodeTimeout, "case operation aborted")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "ledger failure")
	}
}

func (s *Service) logAudit(ctx context.Context, c *models.Case, action audit.Action, actor string) {
	attributes := []any{
		"case_id", c.ID,
		"status", c.Status,
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
		RecordID: c.ID.String(),
		Kind:     string(c.Kind),
		Action:   action,
		Actor:    actor,
		Status:   string(c.Status),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event", "case_id", c.ID, "error", err)
	}
}
