package eligibility

import (
	"fmt"
	"time"

	"github.com/skycruzer/air-niugini-pms-sub008/internal/domain/pilot"
)

// BuildAvailability computes one DailyAvailability per calendar day in
// [start, end], both ends inclusive. Only APPROVED leave counts against
// capacity; excludeRequestID removes the request under evaluation so it
// does not count against itself. Read-only over the snapshot.
func BuildAvailability(snap *Snapshot, reqs RequirementProvider, role pilot.Role, start, end time.Time, excludeRequestID string) ([]DailyAvailability, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date %s before start date %s", ErrValidation,
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	totalActive := snap.ActiveCount(role)

	var table []DailyAvailability
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		onLeave := 0
		for _, span := range snap.Approved {
			if span.Role != role {
				continue
			}
			if excludeRequestID != "" && span.RequestID == excludeRequestID {
				continue
			}
			if !day.Before(span.Start) && !day.After(span.End) {
				onLeave++
			}
		}

		available := totalActive - onLeave
		if available < 0 {
			return nil, fmt.Errorf("%w: %d %s pilots on approved leave on %s but only %d active",
				ErrDataIntegrity, onLeave, role, day.Format("2006-01-02"), totalActive)
		}

		req, err := reqs.RequirementOn(role, day)
		if err != nil {
			return nil, err
		}

		deficit := req.MinOnDuty - available
		if deficit < 0 {
			deficit = 0
		}

		table = append(table, DailyAvailability{
			Date:            day,
			Role:            role,
			TotalActive:     totalActive,
			OnApprovedLeave: onLeave,
			Available:       available,
			Required:        req.MinOnDuty,
			Deficit:         deficit,
		})
	}
	return table, nil
}
