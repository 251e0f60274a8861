package eligibility

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skycruzer/air-niugini-pms-sub008/internal/domain/pilot"
	"github.com/skycruzer/air-niugini-pms-sub008/internal/domain/roster"
)

// fakeStore serves a canned snapshot, standing in for the pgx-backed store.
type fakeStore struct {
	snap *Snapshot
	err  error

	loads int
}

func (f *fakeStore) LoadSnapshot(ctx context.Context, start, end time.Time) (*Snapshot, error) {
	f.loads++
	if f.err != nil {
		return nil, f.err
	}
	return f.snap, nil
}

func testPeriod(t *testing.T) roster.Period {
	t.Helper()
	calendar := roster.NewCalendar(date(2025, 1, 4))
	period, err := calendar.FromCode("RP11/2025")
	require.NoError(t, err)
	return period
}

func TestCheckLeaveEligibilityApprovesWithHeadroom(t *testing.T) {
	// Ten captains, eight required, nobody on leave: a three-day request
	// leaves nine on duty every day.
	store := &fakeStore{snap: &Snapshot{
		Pilots:       captains(10),
		Requirements: captainRequirement(8),
	}}
	engine := NewEngine(store, DefaultReviewPolicy())

	result, err := engine.CheckLeaveEligibility(context.Background(), CheckInput{
		PilotID: "capt-01",
		Role:    pilot.RoleCaptain,
		Start:   date(2025, 11, 10),
		End:     date(2025, 11, 12),
	})
	require.NoError(t, err)
	assert.True(t, result.IsEligible)
	assert.Equal(t, RecommendApprove, result.Recommendation)
	assert.Empty(t, result.Conflicts)
}

func TestCheckLeaveEligibilityDeniesAtMinimum(t *testing.T) {
	// Eight captains, eight required: any absence breaches the minimum.
	store := &fakeStore{snap: &Snapshot{
		Pilots:       captains(8),
		Requirements: captainRequirement(8),
	}}
	engine := NewEngine(store, DefaultReviewPolicy())

	result, err := engine.CheckLeaveEligibility(context.Background(), CheckInput{
		PilotID: "capt-01",
		Role:    pilot.RoleCaptain,
		Start:   date(2025, 11, 10),
		End:     date(2025, 11, 10),
	})
	require.NoError(t, err)
	assert.False(t, result.IsEligible)
	assert.Equal(t, RecommendDeny, result.Recommendation)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, 1, result.Conflicts[0].Deficit)
}

func TestCheckLeaveEligibilityUnknownPilot(t *testing.T) {
	store := &fakeStore{snap: &Snapshot{
		Pilots:       captains(8),
		Requirements: captainRequirement(8),
	}}
	engine := NewEngine(store, DefaultReviewPolicy())

	_, err := engine.CheckLeaveEligibility(context.Background(), CheckInput{
		PilotID: "ghost",
		Role:    pilot.RoleCaptain,
		Start:   date(2025, 11, 10),
		End:     date(2025, 11, 10),
	})
	require.ErrorIs(t, err, ErrDataIntegrity)
}

func TestCheckLeaveEligibilityValidatesInput(t *testing.T) {
	engine := NewEngine(&fakeStore{}, DefaultReviewPolicy())

	cases := []struct {
		name string
		in   CheckInput
	}{
		{"missing pilot", CheckInput{Role: pilot.RoleCaptain, Start: date(2025, 11, 1), End: date(2025, 11, 2)}},
		{"unknown role", CheckInput{PilotID: "p1", Role: "NAVIGATOR", Start: date(2025, 11, 1), End: date(2025, 11, 2)}},
		{"zero dates", CheckInput{PilotID: "p1", Role: pilot.RoleCaptain}},
		{"reversed range", CheckInput{PilotID: "p1", Role: pilot.RoleCaptain, Start: date(2025, 11, 2), End: date(2025, 11, 1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := engine.CheckLeaveEligibility(context.Background(), tc.in)
			require.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCheckLeaveEligibilitySnapshotFailurePropagates(t *testing.T) {
	boom := errors.New("connection refused")
	engine := NewEngine(&fakeStore{err: boom}, DefaultReviewPolicy())

	_, err := engine.CheckLeaveEligibility(context.Background(), CheckInput{
		PilotID: "capt-01",
		Role:    pilot.RoleCaptain,
		Start:   date(2025, 11, 10),
		End:     date(2025, 11, 10),
	})
	require.ErrorIs(t, err, boom)
}

func TestCheckBulkLeaveEligibilitySeniorityAndPartition(t *testing.T) {
	period := testPeriod(t)

	// Nine captains, eight required, two competing single-day requests on the
	// same day inside the period: the senior pilot is approved, the junior
	// flagged for review.
	snap := &Snapshot{
		Pilots:       captains(9),
		Requirements: captainRequirement(8),
		Pending: []PendingRequest{
			pendingReq("lr-junior", intp(15), date(2025, 11, 5), date(2025, 11, 5)),
			pendingReq("lr-senior", intp(2), date(2025, 11, 5), date(2025, 11, 5)),
		},
	}
	engine := NewEngine(&fakeStore{snap: snap}, DefaultReviewPolicy())

	out, err := engine.CheckBulkLeaveEligibility(context.Background(), period)
	require.NoError(t, err)

	assert.Equal(t, "RP11/2025", out.RosterPeriod)
	assert.Equal(t, []string{"lr-senior"}, out.Eligible)
	assert.Equal(t, []string{"lr-junior"}, out.RequiresReview)
	assert.Empty(t, out.ShouldDeny)

	// Every pending request appears in exactly one bucket and in Results.
	total := len(out.Eligible) + len(out.RequiresReview) + len(out.ShouldDeny)
	assert.Equal(t, len(snap.Pending), total)
	assert.Len(t, out.Results, len(snap.Pending))
	assert.True(t, out.Results["lr-senior"].IsEligible)
	assert.False(t, out.Results["lr-junior"].IsEligible)
}

func TestCheckBulkLeaveEligibilityDeterministic(t *testing.T) {
	period := testPeriod(t)

	snap := &Snapshot{
		Pilots:       captains(10),
		Requirements: captainRequirement(8),
		Pending: []PendingRequest{
			pendingReq("lr-1", intp(3), date(2025, 11, 4), date(2025, 11, 8)),
			pendingReq("lr-2", intp(7), date(2025, 11, 6), date(2025, 11, 10)),
			pendingReq("lr-3", intp(1), date(2025, 11, 7), date(2025, 11, 7)),
			pendingReq("lr-4", nil, date(2025, 11, 5), date(2025, 11, 9)),
		},
	}
	engine := NewEngine(&fakeStore{snap: snap}, DefaultReviewPolicy())

	first, err := engine.CheckBulkLeaveEligibility(context.Background(), period)
	require.NoError(t, err)
	second, err := engine.CheckBulkLeaveEligibility(context.Background(), period)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCheckBulkLeaveEligibilityEvaluatesRolesIndependently(t *testing.T) {
	period := testPeriod(t)

	fo := 1
	snap := &Snapshot{
		Pilots: append(captains(9), PilotRef{ID: "fo-01", Role: pilot.RoleFirstOfficer, Seniority: &fo}),
		Requirements: []CrewRequirement{
			{Role: pilot.RoleCaptain, MinOnDuty: 8, EffectiveFrom: date(2020, 1, 1)},
			{Role: pilot.RoleFirstOfficer, MinOnDuty: 1, EffectiveFrom: date(2020, 1, 1)},
		},
		Pending: []PendingRequest{
			pendingReq("lr-capt", intp(2), date(2025, 11, 5), date(2025, 11, 5)),
			{
				ID: "lr-fo", PilotID: "fo-01", Role: pilot.RoleFirstOfficer,
				Start: date(2025, 11, 5), End: date(2025, 11, 5),
				CreatedAt: date(2025, 10, 1), Seniority: &fo,
			},
		},
	}
	engine := NewEngine(&fakeStore{snap: snap}, DefaultReviewPolicy())

	out, err := engine.CheckBulkLeaveEligibility(context.Background(), period)
	require.NoError(t, err)

	// The captain's slack is irrelevant to the first officer pool: the sole
	// first officer leaving would empty it.
	assert.Contains(t, out.Eligible, "lr-capt")
	assert.Contains(t, out.RequiresReview, "lr-fo")
}

func TestCheckBulkLeaveEligibilityMissingRequirement(t *testing.T) {
	period := testPeriod(t)

	fo := 1
	snap := &Snapshot{
		Pilots: []PilotRef{{ID: "fo-01", Role: pilot.RoleFirstOfficer, Seniority: &fo}},
		Requirements: []CrewRequirement{
			{Role: pilot.RoleCaptain, MinOnDuty: 8, EffectiveFrom: date(2020, 1, 1)},
		},
		Pending: []PendingRequest{{
			ID: "lr-fo", PilotID: "fo-01", Role: pilot.RoleFirstOfficer,
			Start: date(2025, 11, 5), End: date(2025, 11, 5),
			CreatedAt: date(2025, 10, 1), Seniority: &fo,
		}},
	}
	engine := NewEngine(&fakeStore{snap: snap}, DefaultReviewPolicy())

	_, err := engine.CheckBulkLeaveEligibility(context.Background(), period)
	require.ErrorIs(t, err, ErrRequirementNotFound)
}

func TestCalculateCrewAvailability(t *testing.T) {
	snap := &Snapshot{
		Pilots: append(captains(10), PilotRef{ID: "fo-01", Role: pilot.RoleFirstOfficer}),
		Approved: []LeaveSpan{
			{RequestID: "lr-1", PilotID: "capt-03", Role: pilot.RoleCaptain, Start: date(2025, 11, 1), End: date(2025, 11, 2)},
		},
		Requirements: captainRequirement(8),
	}
	engine := NewEngine(&fakeStore{snap: snap}, DefaultReviewPolicy())

	out, err := engine.CalculateCrewAvailability(context.Background(), date(2025, 11, 1), date(2025, 11, 3))
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, pilot.RoleCaptain, out[0].Role)
	require.Len(t, out[0].Days, 3)
	assert.Equal(t, 9, out[0].Days[0].Available)
	assert.Equal(t, 10, out[0].Days[2].Available)

	// Sole first officer against a requirement of eight: deficit of seven.
	assert.Equal(t, pilot.RoleFirstOfficer, out[1].Role)
	assert.Equal(t, 7, out[1].Days[0].Deficit)
}

func TestCalculateCrewAvailabilityRejectsReversedRange(t *testing.T) {
	engine := NewEngine(&fakeStore{}, DefaultReviewPolicy())
	_, err := engine.CalculateCrewAvailability(context.Background(), date(2025, 11, 3), date(2025, 11, 1))
	require.ErrorIs(t, err, ErrValidation)
}
