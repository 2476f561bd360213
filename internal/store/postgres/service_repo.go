package postgres

import (
	"context"
	"database/sql"
	"errors"

	"callboard/internal/services"
)

// ServiceRepo persists catalog entries.
type ServiceRepo struct {
	db *sql.DB
}

func NewServiceRepo(db *sql.DB) *ServiceRepo { return &ServiceRepo{db: db} }

func (r *ServiceRepo) Insert(ctx context.Context, s services.Service) (services.Service, error) {
	const q = `
INSERT INTO services (id, name, description, price_per_minute, price_per_call, active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`
	_, err := r.db.ExecContext(ctx, q,
		s.ID,
		s.Name,
		s.Description,
		s.PricePerMinute,
		s.PricePerCall,
		s.Active,
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		return services.Service{}, err
	}
	return s, nil
}

func (r *ServiceRepo) Update(ctx context.Context, s services.Service) error {
	const q = `
UPDATE services
SET name = $2, description = $3, price_per_minute = $4, price_per_call = $5, active = $6, updated_at = $7
WHERE id = $1
`
	res, err := r.db.ExecContext(ctx, q,
		s.ID,
		s.Name,
		s.Description,
		s.PricePerMinute,
		s.PricePerCall,
		s.Active,
		s.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return requireRow(res, services.ErrNotFound)
}

func (r *ServiceRepo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM services WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	return requireRow(res, services.ErrNotFound)
}

func (r *ServiceRepo) GetByID(ctx context.Context, id string) (services.Service, error) {
	const q = `
SELECT id, name, description, price_per_minute, price_per_call, active, created_at, updated_at
FROM services
WHERE id = $1
`
	s, err := scanService(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return services.Service{}, services.ErrNotFound
		}
		return services.Service{}, err
	}
	return s, nil
}

func (r *ServiceRepo) List(ctx context.Context) ([]services.Service, error) {
	const q = `
SELECT id, name, description, price_per_minute, price_per_call, active, created_at, updated_at
FROM services
ORDER BY created_at
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]services.Service, 0)
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanService(sc rowScanner) (services.Service, error) {
	var s services.Service
	if err := sc.Scan(
		&s.ID,
		&s.Name,
		&s.Description,
		&s.PricePerMinute,
		&s.PricePerCall,
		&s.Active,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		return services.Service{}, err
	}
	return s, nil
}
