package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bannerbot/internal/ports/output"
)

var _ output.AdminRepository = (*AdminRepository)(nil)

type AdminRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

func (r *AdminRepository) Exists(ctx context.Context, userID string) (bool, error) {
	var ok bool
	err := conn(ctx, r.pool).QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM admins WHERE user_id = $1)`, userID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("check admin: %w", err)
	}
	return ok, nil
}

func (r *AdminRepository) Add(ctx context.Context, userID string) error {
	if _, err := conn(ctx, r.pool).Exec(ctx, `INSERT INTO admins (user_id) VALUES ($1) ON CONFLICT DO NOTHING`, userID); err != nil {
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}

func (r *AdminRepository) Remove(ctx context.Context, userID string) error {
	if _, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM admins WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete admin: %w", err)
	}
	return nil
}

func (r *AdminRepository) List(ctx context.Context) ([]string, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `SELECT user_id FROM admins ORDER BY created_at, user_id`)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan admins: %w", err)
	}
	return ids, nil
}
