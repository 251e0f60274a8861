package eligibility

import (
	"context"
	"time"

	"github.com/skycruzer/air-niugini-pms-sub008/internal/domain/pilot"
)

// InsertRequirement records a new requirement version for a role. Requirement
// changes are effective-dated inserts, never destructive updates, so past
// evaluations stay reproducible.
func (s *Store) InsertRequirement(ctx context.Context, role pilot.Role, minOnDuty int, scope string, effectiveFrom time.Time) error {
	if scope == "" {
		scope = "fleet"
	}
	_, err := s.DB.Exec(ctx, `
    INSERT INTO crew_requirements (role, min_on_duty, scope, effective_from)
    VALUES ($1, $2, $3, $4)
    ON CONFLICT (role, effective_from)
    DO UPDATE SET min_on_duty = EXCLUDED.min_on_duty, scope = EXCLUDED.scope
  `, role, minOnDuty, scope, effectiveFrom)
	return err
}
