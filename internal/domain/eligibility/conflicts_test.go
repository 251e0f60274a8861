package eligibility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/skycruzer/air-niugini-pms-sub008/internal/domain/pilot"
)

func dayRow(d time.Time, available, required int) DailyAvailability {
	return DailyAvailability{
		Date:        d,
		Role:        pilot.RoleCaptain,
		TotalActive: available,
		Available:   available,
		Required:    required,
	}
}

func TestDetectConflictsBoundary(t *testing.T) {
	d := date(2025, 11, 5)

	// available-1 == required: granting lands exactly on the minimum, fine.
	conflicts := DetectConflicts([]DailyAvailability{dayRow(d, 9, 8)}, d, d)
	assert.Empty(t, conflicts)

	// available-1 == required-1: one below minimum, deficit of one.
	conflicts = DetectConflicts([]DailyAvailability{dayRow(d, 8, 8)}, d, d)
	if assert.Len(t, conflicts, 1) {
		assert.Equal(t, d, conflicts[0].Date)
		assert.Equal(t, 1, conflicts[0].Deficit)
	}
}

func TestDetectConflictsInclusiveEndpoints(t *testing.T) {
	table := []DailyAvailability{
		dayRow(date(2025, 11, 1), 8, 8),
		dayRow(date(2025, 11, 2), 10, 8),
		dayRow(date(2025, 11, 3), 8, 8),
	}

	conflicts := DetectConflicts(table, date(2025, 11, 1), date(2025, 11, 3))
	if assert.Len(t, conflicts, 2) {
		assert.Equal(t, date(2025, 11, 1), conflicts[0].Date)
		assert.Equal(t, date(2025, 11, 3), conflicts[1].Date)
	}
}

func TestDetectConflictsIgnoresDaysOutsideRequest(t *testing.T) {
	table := []DailyAvailability{
		dayRow(date(2025, 11, 1), 8, 8), // would conflict, but outside the request
		dayRow(date(2025, 11, 2), 10, 8),
	}

	conflicts := DetectConflicts(table, date(2025, 11, 2), date(2025, 11, 2))
	assert.Empty(t, conflicts)
}
