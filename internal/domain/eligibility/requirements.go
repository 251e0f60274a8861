package eligibility

import (
	"fmt"
	"sort"
	"time"

	"github.com/skycruzer/air-niugini-pms-sub008/internal/domain/pilot"
)

// RequirementProvider resolves the crew requirement in force for a role on
// a given day.
type RequirementProvider interface {
	RequirementOn(role pilot.Role, date time.Time) (CrewRequirement, error)
}

// RequirementTable is an in-memory provider over date-versioned requirement
// rows: for each role, the row with the latest effective_from on or before
// the queried day wins.
type RequirementTable struct {
	byRole map[pilot.Role][]CrewRequirement
}

func NewRequirementTable(rows []CrewRequirement) *RequirementTable {
	byRole := make(map[pilot.Role][]CrewRequirement, len(pilot.Roles))
	for _, row := range rows {
		byRole[row.Role] = append(byRole[row.Role], row)
	}
	for role := range byRole {
		versions := byRole[role]
		sort.SliceStable(versions, func(i, j int) bool {
			return versions[i].EffectiveFrom.Before(versions[j].EffectiveFrom)
		})
	}
	return &RequirementTable{byRole: byRole}
}

func (t *RequirementTable) RequirementOn(role pilot.Role, date time.Time) (CrewRequirement, error) {
	versions := t.byRole[role]
	for i := len(versions) - 1; i >= 0; i-- {
		if !versions[i].EffectiveFrom.After(date) {
			return versions[i], nil
		}
	}
	return CrewRequirement{}, fmt.Errorf("%w: role %s on %s", ErrRequirementNotFound, role, date.Format("2006-01-02"))
}

// Current returns the requirement in force today for every role, erroring
// out if any role is unconfigured.
func (t *RequirementTable) Current(today time.Time) ([]CrewRequirement, error) {
	out := make([]CrewRequirement, 0, len(pilot.Roles))
	for _, role := range pilot.Roles {
		req, err := t.RequirementOn(role, today)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, nil
}
