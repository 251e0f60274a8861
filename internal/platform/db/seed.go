package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skycruzer/air-niugini-pms-sub008/internal/domain/auth"
	"github.com/skycruzer/air-niugini-pms-sub008/internal/domain/pilot"
	"github.com/skycruzer/air-niugini-pms-sub008/internal/platform/config"
)

// Seed provisions the minimum state a fresh install needs: an admin user
// and a crew requirement per role. Optionally a small sample fleet for
// development. Safe to re-run.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if err := ensureAdminUser(ctx, pool, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
		return err
	}
	if err := ensureRequirements(ctx, pool); err != nil {
		return err
	}
	if cfg.SeedSampleFleet {
		if err := ensureSampleFleet(ctx, pool); err != nil {
			return err
		}
	}
	return nil
}

func ensureAdminUser(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	if email == "" {
		return nil
	}
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM users WHERE email = $1", email).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if password == "" {
		password = "ChangeMe123!"
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
    INSERT INTO users (email, password_hash, display_name, role)
    VALUES ($1, $2, 'Fleet Administrator', $3)
  `, email, hash, auth.RoleAdmin)
	return err
}

func ensureRequirements(ctx context.Context, pool *pgxpool.Pool) error {
	defaults := map[pilot.Role]int{
		pilot.RoleCaptain:      8,
		pilot.RoleFirstOfficer: 8,
	}
	for role, minimum := range defaults {
		var count int
		if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM crew_requirements WHERE role = $1", string(role)).Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		_, err := pool.Exec(ctx, `
      INSERT INTO crew_requirements (role, min_on_duty, scope, effective_from)
      VALUES ($1, $2, 'fleet', '2020-01-01')
    `, string(role), minimum)
		if err != nil {
			return err
		}
	}
	return nil
}

func ensureSampleFleet(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM pilots").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for i := 1; i <= 20; i++ {
		role := pilot.RoleCaptain
		if i > 10 {
			role = pilot.RoleFirstOfficer
		}
		_, err := pool.Exec(ctx, `
      INSERT INTO pilots (employee_id, first_name, last_name, role, seniority_number, is_active)
      VALUES ($1, $2, $3, $4, $5, true)
    `, fmt.Sprintf("PX%04d", i), "Sample", fmt.Sprintf("Pilot%02d", i), string(role), (i-1)%10+1)
		if err != nil {
			return err
		}
	}
	return nil
}
