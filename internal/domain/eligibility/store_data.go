package eligibility

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skycruzer/air-niugini-pms-sub008/internal/domain/roster"
)

// Store loads evaluation snapshots from Postgres. All queries are read-only;
// the engine issues no writes.
type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) LoadSnapshot(ctx context.Context, start, end time.Time) (*Snapshot, error) {
	snap := &Snapshot{}

	rows, err := s.DB.Query(ctx, `
    SELECT id, role, seniority_number
    FROM pilots
    WHERE is_active
  `)
	if err != nil {
		return nil, fmt.Errorf("load active pilots: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ref PilotRef
		if err := rows.Scan(&ref.ID, &ref.Role, &ref.Seniority); err != nil {
			return nil, err
		}
		snap.Pilots = append(snap.Pilots, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	rows, err = s.DB.Query(ctx, `
    SELECT id, pilot_id, pilot_role, start_date, end_date
    FROM leave_requests
    WHERE status = 'APPROVED' AND start_date <= $1 AND end_date >= $2
  `, end, start)
	if err != nil {
		return nil, fmt.Errorf("load approved leave: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var span LeaveSpan
		if err := rows.Scan(&span.RequestID, &span.PilotID, &span.Role, &span.Start, &span.End); err != nil {
			return nil, err
		}
		span.Start = roster.Day(span.Start)
		span.End = roster.Day(span.End)
		snap.Approved = append(snap.Approved, span)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	rows, err = s.DB.Query(ctx, `
    SELECT r.id, r.pilot_id, r.pilot_role, r.start_date, r.end_date, r.created_at, p.seniority_number
    FROM leave_requests r
    LEFT JOIN pilots p ON p.id = r.pilot_id
    WHERE r.status = 'PENDING' AND r.start_date <= $1 AND r.end_date >= $2
  `, end, start)
	if err != nil {
		return nil, fmt.Errorf("load pending requests: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var req PendingRequest
		if err := rows.Scan(&req.ID, &req.PilotID, &req.Role, &req.Start, &req.End, &req.CreatedAt, &req.Seniority); err != nil {
			return nil, err
		}
		req.Start = roster.Day(req.Start)
		req.End = roster.Day(req.End)
		snap.Pending = append(snap.Pending, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	rows, err = s.DB.Query(ctx, `
    SELECT role, min_on_duty, scope, effective_from
    FROM crew_requirements
    ORDER BY role, effective_from
  `)
	if err != nil {
		return nil, fmt.Errorf("load crew requirements: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var req CrewRequirement
		if err := rows.Scan(&req.Role, &req.MinOnDuty, &req.Scope, &req.EffectiveFrom); err != nil {
			return nil, err
		}
		req.EffectiveFrom = roster.Day(req.EffectiveFrom)
		snap.Requirements = append(snap.Requirements, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return snap, nil
}

var _ SnapshotStore = (*Store)(nil)
