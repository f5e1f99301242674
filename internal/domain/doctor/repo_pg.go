package doctor

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

const doctorCols = `id, imacx_code, name, specialty, clinic_name, clinic_address, city,
	phone, whatsapp_number, territory, employee_code, is_selected_by_marketing, created_at`

func (r *repoPG) Create(ctx context.Context, d *Doctor) error {
	d.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO doctors (
			id, imacx_code, name, specialty, clinic_name, clinic_address, city,
			phone, whatsapp_number, territory, employee_code, is_selected_by_marketing
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		d.ID, d.ImacxCode, d.Name, d.Specialty, d.ClinicName, d.ClinicAddress, d.City,
		d.Phone, d.WhatsappNumber, d.Territory, d.EmployeeCode, d.Eligible,
	)
	if err != nil {
		return fmt.Errorf("create doctor: %w", err)
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	d, err := scanDoctor(r.pool.QueryRow(ctx, `SELECT `+doctorCols+` FROM doctors WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get doctor: %w", err)
	}
	return d, nil
}

func (r *repoPG) ListEligible(ctx context.Context, territories []string) ([]*Doctor, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+doctorCols+`
		FROM doctors
		WHERE is_selected_by_marketing = TRUE
		  AND territory = ANY($1)
		ORDER BY name ASC`, territories)
	if err != nil {
		return nil, fmt.Errorf("list eligible doctors: %w", err)
	}
	defer rows.Close()

	var out []*Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan doctor: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate doctors: %w", err)
	}
	return out, nil
}

func (r *repoPG) UpdateWhatsappNumber(ctx context.Context, id uuid.UUID, number string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE doctors SET whatsapp_number = $2 WHERE id = $1`, id, number)
	if err != nil {
		return fmt.Errorf("update whatsapp number: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(
		&d.ID, &d.ImacxCode, &d.Name, &d.Specialty, &d.ClinicName, &d.ClinicAddress, &d.City,
		&d.Phone, &d.WhatsappNumber, &d.Territory, &d.EmployeeCode, &d.Eligible, &d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
