package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type directoryRepoPG struct {
	pool *pgxpool.Pool
}

func NewDirectoryRepo(pool *pgxpool.Pool) DirectoryRepository {
	return &directoryRepoPG{pool: pool}
}

func (r *directoryRepoPG) FindEmployee(ctx context.Context, imacxID string) (*EmployeeRow, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, imacx_id, email, name, phone, territory
		FROM users
		WHERE imacx_id = $1`, imacxID)

	var e EmployeeRow
	err := row.Scan(&e.ID, &e.ImacxID, &e.Email, &e.Name, &e.Phone, &e.Territory)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find employee: %w", err)
	}
	return &e, nil
}

func (r *directoryRepoPG) FindManagers(ctx context.Context, imacxID string) ([]*ManagerRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, imacx_id, email, name, phone, territory, beterritory
		FROM usersbm
		WHERE imacx_id = $1
		ORDER BY id ASC`, imacxID)
	if err != nil {
		return nil, fmt.Errorf("find managers: %w", err)
	}
	defer rows.Close()

	var out []*ManagerRow
	for rows.Next() {
		var m ManagerRow
		if err := rows.Scan(&m.ID, &m.ImacxID, &m.Email, &m.Name, &m.Phone, &m.Territory, &m.BETerritory); err != nil {
			return nil, fmt.Errorf("scan manager row: %w", err)
		}
		out = append(out, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate manager rows: %w", err)
	}
	return out, nil
}
