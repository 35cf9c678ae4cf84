package service

import (
	"context"
	"encoding/json"
	"fmt"

	"firledger/internal/audit"
	"firledger/internal/backgroundcheck/models"
	"firledger/internal/identity"
	"firledger/internal/ledger"
	"firledger/internal/workflow"
	"firledger/pkg/domain"
	dErrors "firledger/pkg/domain-errors"
	"firledger/pkg/hexcodec"
	"firledger/pkg/outcome"
	"firledger/pkg/requestcontext"
)

// UpdateRequestStatus records an officer's single review of a background
// check or view grant. comments is hex text.
func (s *Service) UpdateRequestStatus(ctx context.Context, officer identity.Identity, id domain.RecordID, status workflow.Status, comments string) (outcome.Result[models.Request], error) {
	ctx, span := s.tracer.Start(ctx, "backgroundcheck.UpdateRequestStatus")
	defer span.End()

	if !officer.IsPolice() {
		return outcome.Unauthorized[models.Request](), nil
	}
	decoded, err := hexcodec.DecodeText("officerComments", comments)
	if err != nil {
		return outcome.Result[models.Request]{}, err
	}
	now := requestcontext.Now(ctx)

	var (
		result   outcome.Result[models.Request]
		decision *workflow.Decision
		updated  models.Request
	)
	updater := ledger.NewUpdater(s.store,
		ledger.WithMaxAttempts(s.maxAttempts),
		ledger.WithConflictHook(func(attempt int) {
			s.metrics.IncrementConflict(string(domain.KindBackgroundCheck))
			s.logger.DebugContext(ctx, "request changed during review, retrying",
				"record_id", id,
				"attempt", attempt,
			)
		}),
	)
	_, err = updater.Update(ctx, id.String(), func(entry ledger.Entry) ([]byte, bool, error) {
		decision = nil
		r, err := decodeRequest(id, entry.Value)
		if err != nil {
			return nil, false, err
		}
		if r.Kind != domain.KindBackgroundCheck && r.Kind != domain.KindViewFIRs {
			return nil, false, dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("%s is not a background check request", id))
		}
		if !officer.CoversAll(r.State, r.City) {
			result = outcome.Unauthorized[models.Request]()
			return nil, false, nil
		}
		d := workflow.Review.Evaluate(r.Status, status)
		decision = &d
		if !d.Allowed {
			result = outcome.Reject[models.Request](d.Reason)
			return nil, false, nil
		}
		r.ApplyReview(d, decoded, now)
		raw, err := json.Marshal(r)
		if err != nil {
			return nil, false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode request")
		}
		updated = *r
		result = outcome.Accept(*r)
		return raw, true, nil
	})
	if err != nil {
		return outcome.Result[models.Request]{}, translate(id, err)
	}

	if decision != nil {
		s.metrics.ObserveTransition(workflow.Review.Name(), decision.Allowed)
	}
	if result.Rejected() {
		s.logger.InfoContext(ctx, "request review rejected",
			"record_id", id,
			"requested_status", status,
			"reason", result.Reason(),
		)
		return result, nil
	}
	s.logAudit(ctx, &updated, audit.ActionRequestStatusUpdated, officer.String())
	return result, nil
}
