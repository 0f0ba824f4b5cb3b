package database

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"bannerbot/internal/domain/entities"
)

const contentColumns = `id, section, title, name, end_time_asia, end_time_europe, end_time_america, image_ref`

// pgtypeTimestamptzToTime returns t.Time in UTC when Valid, else zero time.
func pgtypeTimestamptzToTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time.UTC()
}

// timeToPgtype maps the zero time to NULL.
func timeToPgtype(t time.Time) pgtype.Timestamptz {
	if t.IsZero() {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: t.UTC(), Valid: true}
}

type contentRow struct {
	ID         int64
	Section    string
	Title      string
	Name       string
	EndAsia    pgtype.Timestamptz
	EndEurope  pgtype.Timestamptz
	EndAmerica pgtype.Timestamptz
	ImageRef   string
}

type scanner interface {
	Scan(dest ...any) error
}

func scanContent(s scanner) (contentRow, error) {
	var r contentRow
	err := s.Scan(&r.ID, &r.Section, &r.Title, &r.Name, &r.EndAsia, &r.EndEurope, &r.EndAmerica, &r.ImageRef)
	return r, err
}

func contentToDomain(r contentRow) entities.ContentItem {
	return entities.ContentItem{
		ID:         r.ID,
		Section:    entities.Section(r.Section),
		Title:      r.Title,
		Name:       r.Name,
		EndAsia:    pgtypeTimestamptzToTime(r.EndAsia),
		EndEurope:  pgtypeTimestamptzToTime(r.EndEurope),
		EndAmerica: pgtypeTimestamptzToTime(r.EndAmerica),
		Media:      entities.MediaRef(r.ImageRef),
	}
}
