package output

import (
	"context"
	"time"

	"bannerbot/internal/domain/entities"
)

// ContentRepository persists content items. Implementations join the
// transaction started by Transactor when one is carried by ctx.
type ContentRepository interface {
	// UpsertBySection updates the row of item.Section or inserts one, and
	// returns the row id.
	UpsertBySection(ctx context.Context, item *entities.ContentItem) (int64, error)
	InsertEvent(ctx context.Context, name string, endAsia time.Time) (int64, error)
	FindBySection(ctx context.Context, section entities.Section) (*entities.ContentItem, error)
	// LockByID returns the row and holds it until the surrounding transaction ends.
	LockByID(ctx context.Context, id int64) (*entities.ContentItem, error)
	ListEvents(ctx context.Context) ([]entities.ContentItem, error)
	ListAlertable(ctx context.Context) ([]entities.ContentItem, error)
	DeleteEventsExpiredBefore(ctx context.Context, now time.Time) (int64, error)
	DeleteAllEvents(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id int64) error
}
