package leave

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/skycruzer/air-niugini-pms-sub008/internal/domain/eligibility"
	"github.com/skycruzer/air-niugini-pms-sub008/internal/domain/pilot"
	"github.com/skycruzer/air-niugini-pms-sub008/internal/domain/roster"
)

var (
	ErrRequestNotFound = errors.New("leave request not found")
	ErrInvalidState    = errors.New("leave request is not in the required state")
	ErrPilotInactive   = errors.New("pilot is not active")
	ErrNotEligible     = errors.New("request is not eligible at current crew levels")
)

// Service is the calling layer around the eligibility engine: it owns the
// writes the engine deliberately does not perform.
type Service struct {
	Store    *Store
	Pilots   *pilot.Store
	Engine   *eligibility.Engine
	Calendar roster.Calendar
}

func NewService(store *Store, pilots *pilot.Store, engine *eligibility.Engine, cal roster.Calendar) *Service {
	return &Service{Store: store, Pilots: pilots, Engine: engine, Calendar: cal}
}

// SubmitResult pairs the stored request with the engine's provisional
// verdict. The verdict is directional guidance only; the bulk roster run
// with seniority context makes the real recommendation.
type SubmitResult struct {
	Request     Request                       `json:"request"`
	Provisional eligibility.EligibilityResult `json:"provisionalEligibility"`
}

func (s *Service) Submit(ctx context.Context, pilotID, requestType string, start, end time.Time, reason string) (SubmitResult, error) {
	p, err := s.Pilots.Get(ctx, pilotID)
	if err != nil {
		return SubmitResult{}, err
	}
	if !p.IsActive {
		return SubmitResult{}, ErrPilotInactive
	}

	start, end = roster.Day(start), roster.Day(end)
	period := s.Calendar.Containing(start)

	id, err := s.Store.Create(ctx, p.ID, p.Role, requestType, start, end, period.Code, reason)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("create leave request: %w", err)
	}

	request, err := s.Store.Get(ctx, id)
	if err != nil {
		return SubmitResult{}, err
	}

	provisional, err := s.Engine.CheckLeaveEligibility(ctx, eligibility.CheckInput{
		PilotID:     p.ID,
		Role:        p.Role,
		Start:       start,
		End:         end,
		RequestType: requestType,
		RequestID:   id,
	})
	if err != nil {
		return SubmitResult{}, err
	}

	return SubmitResult{Request: request, Provisional: provisional}, nil
}

func (s *Service) Get(ctx context.Context, requestID string) (Request, error) {
	return s.Store.Get(ctx, requestID)
}

func (s *Service) List(ctx context.Context, status, rosterPeriod, pilotID string, limit, offset int) ([]Request, error) {
	return s.Store.List(ctx, status, rosterPeriod, pilotID, limit, offset)
}

// Approve commits an approval. Concurrent approvals for the same roster
// period are serialized with a transaction-scoped advisory lock so two
// deciders cannot jointly overcommit capacity; the eligibility check is
// re-run inside the lock against fresh state. Override skips the
// eligibility gate but never the lock or the status guard.
func (s *Service) Approve(ctx context.Context, requestID, decidedBy string, override bool) (Request, error) {
	request, err := s.Store.Get(ctx, requestID)
	if err != nil {
		return Request{}, err
	}
	if request.Status != StatusPending && request.Status != StatusUnderReview {
		return Request{}, ErrInvalidState
	}

	tx, err := s.Store.BeginTx(ctx)
	if err != nil {
		return Request{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", periodLockKey(request.RosterPeriod)); err != nil {
		return Request{}, fmt.Errorf("acquire roster period lock: %w", err)
	}

	if !override {
		verdict, err := s.Engine.CheckLeaveEligibility(ctx, eligibility.CheckInput{
			PilotID:     request.PilotID,
			Role:        request.PilotRole,
			Start:       request.StartDate,
			End:         request.EndDate,
			RequestType: request.RequestType,
			RequestID:   request.ID,
		})
		if err != nil {
			return Request{}, err
		}
		if !verdict.IsEligible {
			return Request{}, fmt.Errorf("%w: %d conflicted day(s)", ErrNotEligible, len(verdict.Conflicts))
		}
	}

	if err := s.Store.UpdateStatusTx(ctx, tx, request.ID, request.Status, StatusApproved, decidedBy); err != nil {
		return Request{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Request{}, err
	}

	return s.Store.Get(ctx, requestID)
}

func (s *Service) Deny(ctx context.Context, requestID, decidedBy string) (Request, error) {
	request, err := s.Store.Get(ctx, requestID)
	if err != nil {
		return Request{}, err
	}
	if request.Status != StatusPending && request.Status != StatusUnderReview {
		return Request{}, ErrInvalidState
	}

	tx, err := s.Store.BeginTx(ctx)
	if err != nil {
		return Request{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := s.Store.UpdateStatusTx(ctx, tx, request.ID, request.Status, StatusDenied, decidedBy); err != nil {
		return Request{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Request{}, err
	}

	return s.Store.Get(ctx, requestID)
}

// MarkUnderReview parks a pending request for manual handling, typically
// after a bulk run classifies it REVIEW.
func (s *Service) MarkUnderReview(ctx context.Context, requestID, decidedBy string) (Request, error) {
	tx, err := s.Store.BeginTx(ctx)
	if err != nil {
		return Request{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := s.Store.UpdateStatusTx(ctx, tx, requestID, StatusPending, StatusUnderReview, decidedBy); err != nil {
		return Request{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Request{}, err
	}
	return s.Store.Get(ctx, requestID)
}

func periodLockKey(rosterPeriod string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("leave-approval:" + rosterPeriod))
	return int64(h.Sum64())
}
