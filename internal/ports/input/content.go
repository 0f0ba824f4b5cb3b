package input

import (
	"context"

	"bannerbot/internal/domain/entities"
	"bannerbot/pkg/tz"
)

// RegionRemaining is the time left on one region's deadline.
type RegionRemaining struct {
	Region    entities.Region
	Remaining tz.Remaining
}

// ContentView is a fixed section as shown to users.
type ContentView struct {
	Section entities.Section
	Title   string
	Name    string
	Regions []RegionRemaining
	Media   entities.MediaRef
}

// EventView is one listed event.
type EventView struct {
	Name      string
	Remaining tz.Remaining
}

type ContentUseCase interface {
	ShowContent(ctx context.Context, section entities.Section) (*ContentView, error)
	ShowEvents(ctx context.Context) ([]EventView, error)
	DeleteAllEvents(ctx context.Context, callerID string) (int64, error)
}
