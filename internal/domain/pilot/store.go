package pilot

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("pilot not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) List(ctx context.Context, role string, activeOnly bool, limit, offset int) ([]Pilot, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, first_name, last_name, role, seniority_number, is_active, created_at
    FROM pilots
    WHERE ($1 = '' OR role = $1)
      AND (NOT $2 OR is_active)
    ORDER BY role, seniority_number NULLS LAST, last_name
    LIMIT $3 OFFSET $4
  `, role, activeOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pilots []Pilot
	for rows.Next() {
		var p Pilot
		if err := rows.Scan(&p.ID, &p.EmployeeID, &p.FirstName, &p.LastName, &p.Role, &p.Seniority, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, err
		}
		pilots = append(pilots, p)
	}
	return pilots, rows.Err()
}

func (s *Store) Get(ctx context.Context, pilotID string) (Pilot, error) {
	var p Pilot
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, first_name, last_name, role, seniority_number, is_active, created_at
    FROM pilots
    WHERE id = $1
  `, pilotID).Scan(&p.ID, &p.EmployeeID, &p.FirstName, &p.LastName, &p.Role, &p.Seniority, &p.IsActive, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Pilot{}, ErrNotFound
	}
	if err != nil {
		return Pilot{}, err
	}
	return p, nil
}
