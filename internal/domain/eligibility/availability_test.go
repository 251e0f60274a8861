package eligibility

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skycruzer/air-niugini-pms-sub008/internal/domain/pilot"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func captains(n int) []PilotRef {
	refs := make([]PilotRef, 0, n)
	for i := 1; i <= n; i++ {
		seniority := i
		refs = append(refs, PilotRef{
			ID:        fmt.Sprintf("capt-%02d", i),
			Role:      pilot.RoleCaptain,
			Seniority: &seniority,
		})
	}
	return refs
}

func captainRequirement(min int) []CrewRequirement {
	return []CrewRequirement{
		{Role: pilot.RoleCaptain, MinOnDuty: min, EffectiveFrom: date(2020, 1, 1)},
		{Role: pilot.RoleFirstOfficer, MinOnDuty: min, EffectiveFrom: date(2020, 1, 1)},
	}
}

func TestBuildAvailabilityCapacityInvariant(t *testing.T) {
	snap := &Snapshot{
		Pilots: captains(10),
		Approved: []LeaveSpan{
			{RequestID: "lr-1", PilotID: "capt-01", Role: pilot.RoleCaptain, Start: date(2025, 11, 2), End: date(2025, 11, 4)},
			{RequestID: "lr-2", PilotID: "capt-02", Role: pilot.RoleCaptain, Start: date(2025, 11, 3), End: date(2025, 11, 3)},
		},
		Requirements: captainRequirement(8),
	}

	table, err := BuildAvailability(snap, NewRequirementTable(snap.Requirements), pilot.RoleCaptain, date(2025, 11, 1), date(2025, 11, 5), "")
	require.NoError(t, err)
	require.Len(t, table, 5)

	for _, day := range table {
		assert.Equal(t, day.TotalActive-day.OnApprovedLeave, day.Available, "capacity invariant on %s", day.Date)
		assert.GreaterOrEqual(t, day.Available, 0)
	}

	assert.Equal(t, 0, table[0].OnApprovedLeave) // Nov 1
	assert.Equal(t, 1, table[1].OnApprovedLeave) // Nov 2
	assert.Equal(t, 2, table[2].OnApprovedLeave) // Nov 3, both spans overlap
	assert.Equal(t, 1, table[3].OnApprovedLeave) // Nov 4
	assert.Equal(t, 0, table[4].OnApprovedLeave) // Nov 5
	assert.Equal(t, 8, table[2].Available)
	assert.Equal(t, 0, table[2].Deficit)
}

func TestBuildAvailabilityNegativeIsDataIntegrityError(t *testing.T) {
	// Two captains on approved leave but only one active: corrupt data,
	// must error rather than clamp.
	snap := &Snapshot{
		Pilots: captains(1),
		Approved: []LeaveSpan{
			{RequestID: "lr-1", Role: pilot.RoleCaptain, Start: date(2025, 11, 1), End: date(2025, 11, 1)},
			{RequestID: "lr-2", Role: pilot.RoleCaptain, Start: date(2025, 11, 1), End: date(2025, 11, 1)},
		},
		Requirements: captainRequirement(1),
	}

	_, err := BuildAvailability(snap, NewRequirementTable(snap.Requirements), pilot.RoleCaptain, date(2025, 11, 1), date(2025, 11, 1), "")
	require.ErrorIs(t, err, ErrDataIntegrity)
}

func TestBuildAvailabilityExcludesRequestUnderEvaluation(t *testing.T) {
	snap := &Snapshot{
		Pilots: captains(10),
		Approved: []LeaveSpan{
			{RequestID: "lr-self", Role: pilot.RoleCaptain, Start: date(2025, 11, 1), End: date(2025, 11, 3)},
		},
		Requirements: captainRequirement(8),
	}

	table, err := BuildAvailability(snap, NewRequirementTable(snap.Requirements), pilot.RoleCaptain, date(2025, 11, 1), date(2025, 11, 3), "lr-self")
	require.NoError(t, err)
	for _, day := range table {
		assert.Equal(t, 0, day.OnApprovedLeave, "own request must not count against itself")
	}
}

func TestBuildAvailabilityRespectsRequirementChangeMidRange(t *testing.T) {
	snap := &Snapshot{
		Pilots: captains(10),
		Requirements: []CrewRequirement{
			{Role: pilot.RoleCaptain, MinOnDuty: 8, EffectiveFrom: date(2020, 1, 1)},
			{Role: pilot.RoleCaptain, MinOnDuty: 9, EffectiveFrom: date(2025, 11, 3)},
		},
	}

	table, err := BuildAvailability(snap, NewRequirementTable(snap.Requirements), pilot.RoleCaptain, date(2025, 11, 1), date(2025, 11, 4), "")
	require.NoError(t, err)
	assert.Equal(t, 8, table[0].Required)
	assert.Equal(t, 8, table[1].Required)
	assert.Equal(t, 9, table[2].Required)
	assert.Equal(t, 9, table[3].Required)
}

func TestBuildAvailabilityMissingRequirementFails(t *testing.T) {
	snap := &Snapshot{
		Pilots: captains(10),
		Requirements: []CrewRequirement{
			{Role: pilot.RoleCaptain, MinOnDuty: 8, EffectiveFrom: date(2020, 1, 1)},
		},
	}

	// No First Officer requirement configured anywhere: must not default
	// to zero.
	_, err := BuildAvailability(snap, NewRequirementTable(snap.Requirements), pilot.RoleFirstOfficer, date(2025, 11, 1), date(2025, 11, 1), "")
	require.ErrorIs(t, err, ErrRequirementNotFound)
}

func TestBuildAvailabilityRejectsReversedRange(t *testing.T) {
	snap := &Snapshot{Pilots: captains(3), Requirements: captainRequirement(1)}
	_, err := BuildAvailability(snap, NewRequirementTable(snap.Requirements), pilot.RoleCaptain, date(2025, 11, 5), date(2025, 11, 1), "")
	require.ErrorIs(t, err, ErrValidation)
}
