package output

import (
	"context"

	"bannerbot/internal/domain/entities"
)

type RegionOffsetRepository interface {
	Offset(ctx context.Context, region entities.Region) (int, error)
	// Seed inserts the given offsets for regions that have none yet.
	Seed(ctx context.Context, offsets map[entities.Region]int) error
}
