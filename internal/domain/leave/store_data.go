package leave

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skycruzer/air-niugini-pms-sub008/internal/domain/pilot"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const requestColumns = `
  id, pilot_id, pilot_role, request_type, start_date, end_date,
  status, roster_period, reason, created_at, decided_at, decided_by
`

func scanRequest(row pgx.Row) (Request, error) {
	var r Request
	var decidedBy *string
	err := row.Scan(&r.ID, &r.PilotID, &r.PilotRole, &r.RequestType, &r.StartDate, &r.EndDate,
		&r.Status, &r.RosterPeriod, &r.Reason, &r.CreatedAt, &r.DecidedAt, &decidedBy)
	if err != nil {
		return Request{}, err
	}
	if decidedBy != nil {
		r.DecidedBy = *decidedBy
	}
	return r, nil
}

func (s *Store) Create(ctx context.Context, pilotID string, role pilot.Role, requestType string, start, end time.Time, rosterPeriod, reason string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO leave_requests (pilot_id, pilot_role, request_type, start_date, end_date, status, roster_period, reason)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    RETURNING id
  `, pilotID, role, requestType, start, end, StatusPending, rosterPeriod, reason).Scan(&id)
	return id, err
}

func (s *Store) Get(ctx context.Context, requestID string) (Request, error) {
	r, err := scanRequest(s.DB.QueryRow(ctx, `
    SELECT `+requestColumns+`
    FROM leave_requests
    WHERE id = $1
  `, requestID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Request{}, ErrRequestNotFound
	}
	return r, err
}

func (s *Store) List(ctx context.Context, status, rosterPeriod, pilotID string, limit, offset int) ([]Request, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+requestColumns+`
    FROM leave_requests
    WHERE ($1 = '' OR status = $1)
      AND ($2 = '' OR roster_period = $2)
      AND ($3 = '' OR pilot_id::text = $3)
    ORDER BY start_date, created_at, id
    LIMIT $4 OFFSET $5
  `, status, rosterPeriod, pilotID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []Request
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, r)
	}
	return requests, rows.Err()
}

// UpdateStatusTx flips a request's status inside the caller's transaction,
// guarding the expected current status so concurrent deciders cannot both
// win.
func (s *Store) UpdateStatusTx(ctx context.Context, tx pgx.Tx, requestID, fromStatus, toStatus, decidedBy string) error {
	tag, err := tx.Exec(ctx, `
    UPDATE leave_requests
    SET status = $1, decided_at = now(), decided_by = $2
    WHERE id = $3 AND status = $4
  `, toStatus, decidedBy, requestID, fromStatus)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInvalidState
	}
	return nil
}

func (s *Store) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return s.DB.BeginTx(ctx, pgx.TxOptions{})
}
