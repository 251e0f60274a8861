package eligibility

import (
	"context"
	"fmt"
	"time"

	"github.com/skycruzer/air-niugini-pms-sub008/internal/domain/pilot"
	"github.com/skycruzer/air-niugini-pms-sub008/internal/domain/roster"
	"github.com/skycruzer/air-niugini-pms-sub008/internal/platform/metrics"
)

// SnapshotStore loads one consistent snapshot of roster, leave and
// requirement state covering the given window. Fetch failures abort the
// evaluation entirely; the engine never retries and never returns partial
// results.
type SnapshotStore interface {
	LoadSnapshot(ctx context.Context, start, end time.Time) (*Snapshot, error)
}

// Engine computes leave eligibility and crew availability. It only reads:
// committing any decision is the approval workflow's job, which must treat
// engine output as advisory input to its write transaction.
type Engine struct {
	store  SnapshotStore
	policy ReviewPolicy
}

func NewEngine(store SnapshotStore, policy ReviewPolicy) *Engine {
	return &Engine{store: store, policy: policy}
}

// CheckInput describes a single ad-hoc eligibility check. RequestID is set
// when re-evaluating a stored request so its own leave does not count
// against itself.
type CheckInput struct {
	PilotID     string
	Role        pilot.Role
	Start       time.Time
	End         time.Time
	RequestType string
	RequestID   string
}

func (in CheckInput) validate() error {
	if in.PilotID == "" {
		return fmt.Errorf("%w: pilot id is required", ErrValidation)
	}
	if in.Role != pilot.RoleCaptain && in.Role != pilot.RoleFirstOfficer {
		return fmt.Errorf("%w: unknown role %q", ErrValidation, in.Role)
	}
	if in.Start.IsZero() || in.End.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrValidation)
	}
	if in.End.Before(in.Start) {
		return fmt.Errorf("%w: end date before start date", ErrValidation)
	}
	return nil
}

// CheckLeaveEligibility evaluates one request in isolation: no competing
// seniority context, so any conflict yields DENY. The answer is directional
// guidance for the submitting pilot, not a committed decision.
func (e *Engine) CheckLeaveEligibility(ctx context.Context, in CheckInput) (EligibilityResult, error) {
	if err := in.validate(); err != nil {
		return EligibilityResult{}, err
	}

	snap, err := e.store.LoadSnapshot(ctx, in.Start, in.End)
	if err != nil {
		return EligibilityResult{}, fmt.Errorf("load crew snapshot: %w", err)
	}
	if !snap.HasPilot(in.PilotID) {
		return EligibilityResult{}, fmt.Errorf("%w: pilot %s not in active roster", ErrDataIntegrity, in.PilotID)
	}

	table, err := BuildAvailability(snap, NewRequirementTable(snap.Requirements), in.Role, in.Start, in.End, in.RequestID)
	if err != nil {
		return EligibilityResult{}, err
	}

	result := EligibilityResult{
		RequestID:      in.RequestID,
		Conflicts:      DetectConflicts(table, in.Start, in.End),
		Recommendation: RecommendDeny,
	}
	if len(result.Conflicts) == 0 {
		result.IsEligible = true
		result.Recommendation = RecommendApprove
	}
	metrics.EvaluationsTotal.WithLabelValues(string(result.Recommendation)).Inc()
	return result, nil
}

// CheckBulkLeaveEligibility jointly evaluates every pending request that
// intersects the roster period. Pure function of the snapshot: re-running it
// with unchanged inputs yields identical classifications.
func (e *Engine) CheckBulkLeaveEligibility(ctx context.Context, period roster.Period) (BulkEligibilityResult, error) {
	started := time.Now()

	snap, err := e.store.LoadSnapshot(ctx, period.Start, period.End)
	if err != nil {
		return BulkEligibilityResult{}, fmt.Errorf("load crew snapshot: %w", err)
	}

	out := BulkEligibilityResult{
		RosterPeriod:   period.Code,
		Eligible:       []string{},
		RequiresReview: []string{},
		ShouldDeny:     []string{},
		Results:        make(map[string]EligibilityResult),
	}

	reqs := NewRequirementTable(snap.Requirements)
	for _, role := range pilot.Roles {
		pending := snap.PendingForRole(role)
		if len(pending) == 0 {
			continue
		}

		// Baseline excludes all pending requests: none are committed yet,
		// only approved leave consumes capacity.
		baseline, err := BuildAvailability(snap, reqs, role, period.Start, period.End, "")
		if err != nil {
			return BulkEligibilityResult{}, err
		}

		for _, result := range ResolveCompeting(pending, baseline, e.policy) {
			out.Results[result.RequestID] = result
			switch result.Recommendation {
			case RecommendApprove:
				out.Eligible = append(out.Eligible, result.RequestID)
			case RecommendReview:
				out.RequiresReview = append(out.RequiresReview, result.RequestID)
			case RecommendDeny:
				out.ShouldDeny = append(out.ShouldDeny, result.RequestID)
			}
			metrics.BulkRequestsClassified.WithLabelValues(string(result.Recommendation)).Inc()
		}
	}

	metrics.BulkRunsTotal.Inc()
	metrics.BulkDurationSeconds.Observe(time.Since(started).Seconds())
	return out, nil
}

// RoleAvailability groups the per-day table of one role.
type RoleAvailability struct {
	Role pilot.Role          `json:"role"`
	Days []DailyAvailability `json:"days"`
}

// CalculateCrewAvailability computes the per-role daily availability over a
// date range, with nothing excluded.
func (e *Engine) CalculateCrewAvailability(ctx context.Context, start, end time.Time) ([]RoleAvailability, error) {
	if start.IsZero() || end.IsZero() {
		return nil, fmt.Errorf("%w: start and end dates are required", ErrValidation)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date before start date", ErrValidation)
	}

	snap, err := e.store.LoadSnapshot(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("load crew snapshot: %w", err)
	}

	reqs := NewRequirementTable(snap.Requirements)
	out := make([]RoleAvailability, 0, len(pilot.Roles))
	for _, role := range pilot.Roles {
		table, err := BuildAvailability(snap, reqs, role, start, end, "")
		if err != nil {
			return nil, err
		}
		deficitDays := 0
		for _, day := range table {
			if day.Deficit > 0 {
				deficitDays++
			}
		}
		metrics.DeficitDays.WithLabelValues(string(role)).Set(float64(deficitDays))
		out = append(out, RoleAvailability{Role: role, Days: table})
	}
	return out, nil
}

// CrewRequirements returns the requirement in force today, one per role.
// A role without a configured requirement is an error, never a default.
func (e *Engine) CrewRequirements(ctx context.Context) ([]CrewRequirement, error) {
	today := roster.Day(time.Now().UTC())
	snap, err := e.store.LoadSnapshot(ctx, today, today)
	if err != nil {
		return nil, fmt.Errorf("load crew snapshot: %w", err)
	}
	return NewRequirementTable(snap.Requirements).Current(today)
}
