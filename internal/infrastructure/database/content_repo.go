package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bannerbot/internal/domain/entities"
	"bannerbot/internal/ports/output"
)

var _ output.ContentRepository = (*ContentRepository)(nil)

// ContentRepository implements output.ContentRepository with pgx.
type ContentRepository struct {
	pool *pgxpool.Pool
}

func NewContentRepository(pool *pgxpool.Pool) *ContentRepository {
	return &ContentRepository{pool: pool}
}

func (r *ContentRepository) UpsertBySection(ctx context.Context, item *entities.ContentItem) (int64, error) {
	if !item.Section.IsFixed() {
		return 0, fmt.Errorf("upsert by section: %s is not a fixed section", item.Section)
	}
	var id int64
	err := conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO content (section, title, name, end_time_asia, end_time_europe, end_time_america, image_ref)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (section) WHERE section <> 'events' DO UPDATE SET
			title = EXCLUDED.title,
			name = EXCLUDED.name,
			end_time_asia = EXCLUDED.end_time_asia,
			end_time_europe = EXCLUDED.end_time_europe,
			end_time_america = EXCLUDED.end_time_america,
			image_ref = EXCLUDED.image_ref,
			updated_at = now()
		RETURNING id`,
		string(item.Section), item.Title, item.Name,
		timeToPgtype(item.EndAsia), timeToPgtype(item.EndEurope), timeToPgtype(item.EndAmerica),
		string(item.Media),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert content: %w", err)
	}
	item.ID = id
	return id, nil
}

func (r *ContentRepository) InsertEvent(ctx context.Context, name string, endAsia time.Time) (int64, error) {
	var id int64
	err := conn(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO content (section, name, end_time_asia) VALUES ('events', $1, $2) RETURNING id`,
		name, timeToPgtype(endAsia),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert event: %w", err)
	}
	return id, nil
}

func (r *ContentRepository) FindBySection(ctx context.Context, section entities.Section) (*entities.ContentItem, error) {
	row, err := scanContent(conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+contentColumns+` FROM content WHERE section = $1 ORDER BY id LIMIT 1`, string(section)))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get content by section: %w", err)
	}
	item := contentToDomain(row)
	return &item, nil
}

func (r *ContentRepository) LockByID(ctx context.Context, id int64) (*entities.ContentItem, error) {
	row, err := scanContent(conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+contentColumns+` FROM content WHERE id = $1 FOR UPDATE`, id))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lock content: %w", err)
	}
	item := contentToDomain(row)
	return &item, nil
}

func (r *ContentRepository) ListEvents(ctx context.Context) ([]entities.ContentItem, error) {
	return r.list(ctx, `SELECT `+contentColumns+` FROM content WHERE section = 'events' ORDER BY id`)
}

func (r *ContentRepository) ListAlertable(ctx context.Context) ([]entities.ContentItem, error) {
	return r.list(ctx, `SELECT `+contentColumns+` FROM content WHERE section <> 'events' ORDER BY id`)
}

func (r *ContentRepository) list(ctx context.Context, query string, args ...any) ([]entities.ContentItem, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entities.ContentItem, error) {
		c, err := scanContent(row)
		return contentToDomain(c), err
	})
	if err != nil {
		return nil, fmt.Errorf("scan content: %w", err)
	}
	return items, nil
}

func (r *ContentRepository) DeleteEventsExpiredBefore(ctx context.Context, now time.Time) (int64, error) {
	tag, err := conn(ctx, r.pool).Exec(ctx,
		`DELETE FROM content WHERE section = 'events' AND end_time_asia <= $1`, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("delete expired events: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *ContentRepository) DeleteAllEvents(ctx context.Context) (int64, error) {
	tag, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM content WHERE section = 'events'`)
	if err != nil {
		return 0, fmt.Errorf("delete events: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *ContentRepository) Delete(ctx context.Context, id int64) error {
	if _, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM content WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	return nil
}
