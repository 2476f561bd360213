package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/goccy/go-json"

	"callboard/internal/clients"
)

// ClientRepo persists client rows. ServiceIDs are stored as a JSON array
// so the same shape works across backends.
type ClientRepo struct {
	db *sql.DB
}

func NewClientRepo(db *sql.DB) *ClientRepo { return &ClientRepo{db: db} }

func (r *ClientRepo) Insert(ctx context.Context, c clients.Client) (clients.Client, error) {
	const q = `
INSERT INTO clients (id, name, phone, email, company, status, registration_date, service_ids, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`
	ids, err := json.Marshal(serviceIDsOrEmpty(c.ServiceIDs))
	if err != nil {
		return clients.Client{}, err
	}
	_, err = r.db.ExecContext(ctx, q,
		c.ID,
		c.Name,
		c.Phone,
		c.Email,
		c.Company,
		c.Status,
		c.RegistrationDate,
		ids,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		return clients.Client{}, err
	}
	return c, nil
}

func (r *ClientRepo) Update(ctx context.Context, c clients.Client) error {
	const q = `
UPDATE clients
SET name = $2, phone = $3, email = $4, company = $5, status = $6, service_ids = $7, updated_at = $8
WHERE id = $1
`
	ids, err := json.Marshal(serviceIDsOrEmpty(c.ServiceIDs))
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, q,
		c.ID,
		c.Name,
		c.Phone,
		c.Email,
		c.Company,
		c.Status,
		ids,
		c.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return requireRow(res, clients.ErrNotFound)
}

func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM clients WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	return requireRow(res, clients.ErrNotFound)
}

func (r *ClientRepo) GetByID(ctx context.Context, id string) (clients.Client, error) {
	const q = `
SELECT id, name, phone, email, company, status, registration_date, service_ids, created_at, updated_at
FROM clients
WHERE id = $1
`
	c, err := scanClient(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return clients.Client{}, clients.ErrNotFound
		}
		return clients.Client{}, err
	}
	return c, nil
}

func (r *ClientRepo) List(ctx context.Context) ([]clients.Client, error) {
	const q = `
SELECT id, name, phone, email, company, status, registration_date, service_ids, created_at, updated_at
FROM clients
ORDER BY created_at
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]clients.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanClient(s rowScanner) (clients.Client, error) {
	var c clients.Client
	var ids []byte
	if err := s.Scan(
		&c.ID,
		&c.Name,
		&c.Phone,
		&c.Email,
		&c.Company,
		&c.Status,
		&c.RegistrationDate,
		&ids,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return clients.Client{}, err
	}
	if len(ids) > 0 {
		if err := json.Unmarshal(ids, &c.ServiceIDs); err != nil {
			return clients.Client{}, err
		}
	}
	return c, nil
}

func serviceIDsOrEmpty(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

func requireRow(res sql.Result, missing error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return missing
	}
	return nil
}
