package application

import (
	"context"
	"fmt"

	"bannerbot/internal/clock"
	"bannerbot/internal/domain"
	"bannerbot/internal/domain/entities"
	"bannerbot/internal/ports/input"
	"bannerbot/internal/ports/output"
	"bannerbot/pkg/tz"
)

var _ input.ContentUseCase = (*ContentService)(nil)

type ContentService struct {
	contentRepo output.ContentRepository
	admins      input.AdminUseCase
	clock       clock.Clock
}

func NewContentService(contentRepo output.ContentRepository, admins input.AdminUseCase, clk clock.Clock) *ContentService {
	return &ContentService{contentRepo: contentRepo, admins: admins, clock: clk}
}

// ShowContent returns the current state of a fixed section, computed against
// wall-clock now.
func (s *ContentService) ShowContent(ctx context.Context, section entities.Section) (*input.ContentView, error) {
	if !section.IsFixed() {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownSection, section)
	}
	item, err := s.contentRepo.FindBySection(ctx, section)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", section, err)
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	now := s.clock.Now()
	view := &input.ContentView{
		Section: item.Section,
		Title:   item.Title,
		Media:   item.Media,
	}
	if section == entities.SectionBanner {
		view.Name = item.Name
	}
	for _, r := range entities.Regions {
		d := item.Deadline(r)
		if d.IsZero() {
			continue
		}
		view.Regions = append(view.Regions, input.RegionRemaining{Region: r, Remaining: tz.RemainingUntil(d, now)})
	}
	return view, nil
}

// ShowEvents drops events whose deadline has passed, then lists the rest in
// insertion order.
func (s *ContentService) ShowEvents(ctx context.Context) ([]input.EventView, error) {
	now := s.clock.Now()
	if _, err := s.contentRepo.DeleteEventsExpiredBefore(ctx, now); err != nil {
		return nil, fmt.Errorf("sweep events: %w", err)
	}
	events, err := s.contentRepo.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	out := make([]input.EventView, 0, len(events))
	for _, e := range events {
		out = append(out, input.EventView{Name: e.Name, Remaining: tz.RemainingUntil(e.EndAsia, now)})
	}
	return out, nil
}

func (s *ContentService) DeleteAllEvents(ctx context.Context, callerID string) (int64, error) {
	ok, err := s.admins.IsAdmin(ctx, callerID)
	if err != nil {
		return 0, fmt.Errorf("check admin: %w", err)
	}
	if !ok {
		return 0, domain.ErrPermissionDenied
	}
	n, err := s.contentRepo.DeleteAllEvents(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete events: %w", err)
	}
	return n, nil
}
