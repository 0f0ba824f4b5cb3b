package output

import (
	"context"

	"bannerbot/internal/domain/entities"
)

type AlertLedgerRepository interface {
	Exists(ctx context.Context, entry entities.LedgerEntry) (bool, error)
	Record(ctx context.Context, entry entities.LedgerEntry) error
	ClearContent(ctx context.Context, contentID int64) error
}
