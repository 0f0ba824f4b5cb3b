package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"bannerbot/internal/domain/entities"
	"bannerbot/internal/ports/output"
)

var _ output.AlertLedgerRepository = (*AlertLedgerRepository)(nil)

type AlertLedgerRepository struct {
	pool *pgxpool.Pool
}

func NewAlertLedgerRepository(pool *pgxpool.Pool) *AlertLedgerRepository {
	return &AlertLedgerRepository{pool: pool}
}

func (r *AlertLedgerRepository) Exists(ctx context.Context, e entities.LedgerEntry) (bool, error) {
	var ok bool
	err := conn(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM alert_ledger WHERE content_id = $1 AND region = $2 AND kind = $3)`,
		e.ContentID, string(e.Region), string(e.Kind),
	).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("check ledger: %w", err)
	}
	return ok, nil
}

func (r *AlertLedgerRepository) Record(ctx context.Context, e entities.LedgerEntry) error {
	_, err := conn(ctx, r.pool).Exec(ctx,
		`INSERT INTO alert_ledger (content_id, region, kind) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
		e.ContentID, string(e.Region), string(e.Kind))
	if err != nil {
		return fmt.Errorf("record ledger: %w", err)
	}
	return nil
}

func (r *AlertLedgerRepository) ClearContent(ctx context.Context, contentID int64) error {
	if _, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM alert_ledger WHERE content_id = $1`, contentID); err != nil {
		return fmt.Errorf("clear ledger: %w", err)
	}
	return nil
}
