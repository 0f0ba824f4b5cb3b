package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"bannerbot/internal/domain/entities"
	"bannerbot/internal/ports/output"
)

var _ output.RegionOffsetRepository = (*RegionOffsetRepository)(nil)

type RegionOffsetRepository struct {
	pool *pgxpool.Pool
}

func NewRegionOffsetRepository(pool *pgxpool.Pool) *RegionOffsetRepository {
	return &RegionOffsetRepository{pool: pool}
}

func (r *RegionOffsetRepository) Offset(ctx context.Context, region entities.Region) (int, error) {
	var hours int
	err := conn(ctx, r.pool).QueryRow(ctx, `SELECT offset_hours FROM region_offsets WHERE region = $1`, string(region)).Scan(&hours)
	if isNoRows(err) {
		return 0, fmt.Errorf("no offset configured for region %s", region)
	}
	if err != nil {
		return 0, fmt.Errorf("get region offset: %w", err)
	}
	return hours, nil
}

func (r *RegionOffsetRepository) Seed(ctx context.Context, offsets map[entities.Region]int) error {
	for _, region := range entities.Regions {
		hours, ok := offsets[region]
		if !ok {
			continue
		}
		_, err := conn(ctx, r.pool).Exec(ctx,
			`INSERT INTO region_offsets (region, offset_hours) VALUES ($1, $2) ON CONFLICT (region) DO NOTHING`,
			string(region), hours)
		if err != nil {
			return fmt.Errorf("seed offset %s: %w", region, err)
		}
	}
	return nil
}
