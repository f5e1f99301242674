package camp

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const campCols = `id, user_id, doctor_id, camp_date, status, total_patients, consent_form_path, created_at`

func (r *repoPG) Create(ctx context.Context, c *Camp) error {
	c.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO camps (id, user_id, doctor_id, camp_date, status, total_patients)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.UserID, c.DoctorID, c.CampDate, c.Status, c.TotalPatients,
	)
	if err != nil {
		return fmt.Errorf("create camp: %w", err)
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Camp, error) {
	c, err := scanCamp(r.pool.QueryRow(ctx, `SELECT `+campCols+` FROM camps WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get camp: %w", err)
	}
	return c, nil
}

func (r *repoPG) SetConsentPath(ctx context.Context, id uuid.UUID, path string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE camps SET consent_form_path = $2 WHERE id = $1`, id, path)
	if err != nil {
		return fmt.Errorf("set consent path: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*Camp, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM camps WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count camps: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+campCols+`
		FROM camps
		WHERE user_id = $1
		ORDER BY camp_date DESC
		LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list camps: %w", err)
	}
	defer rows.Close()

	var out []*Camp
	for rows.Next() {
		c, err := scanCamp(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan camp: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate camps: %w", err)
	}
	return out, total, nil
}

func scanCamp(row pgx.Row) (*Camp, error) {
	var c Camp
	err := row.Scan(&c.ID, &c.UserID, &c.DoctorID, &c.CampDate, &c.Status,
		&c.TotalPatients, &c.ConsentFormPath, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
