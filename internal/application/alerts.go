package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"bannerbot/internal/clock"
	"bannerbot/internal/domain"
	"bannerbot/internal/domain/entities"
	"bannerbot/internal/ports/output"
)

// DefaultAlertInterval is the pause between two scheduler cycles.
const DefaultAlertInterval = 30 * time.Second

// oneHourWindow includes a minute of slack so a cycle landing just past the
// one-hour mark still fires.
const oneHourWindow = time.Hour + time.Minute

// AlertScheduler scans fixed-section content on a fixed interval and sends
// "one hour remaining" and "expired" notifications, each at most once per
// (content, region, kind) as recorded in the ledger.
type AlertScheduler struct {
	contentRepo output.ContentRepository
	ledger      output.AlertLedgerRepository
	tx          output.Transactor
	notifier    output.Notifier
	translator  output.T
	clock       clock.Clock
	metrics     output.Metrics
	logger      *slog.Logger

	destination string
	interval    time.Duration
}

type AlertSchedulerDeps struct {
	Content     output.ContentRepository
	Ledger      output.AlertLedgerRepository
	Tx          output.Transactor
	Notifier    output.Notifier
	Translator  output.T
	Clock       clock.Clock
	Metrics     output.Metrics
	Logger      *slog.Logger
	Destination string
	Interval    time.Duration
}

func NewAlertScheduler(d AlertSchedulerDeps) *AlertScheduler {
	if d.Interval <= 0 {
		d.Interval = DefaultAlertInterval
	}
	if d.Clock == nil {
		d.Clock = clock.NewSystem()
	}
	if d.Metrics == nil {
		d.Metrics = output.NopMetrics{}
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	return &AlertScheduler{
		contentRepo: d.Content,
		ledger:      d.Ledger,
		tx:          d.Tx,
		notifier:    d.Notifier,
		translator:  d.Translator,
		clock:       d.Clock,
		metrics:     d.Metrics,
		logger:      d.Logger,
		destination: d.Destination,
		interval:    d.Interval,
	}
}

// Run blocks, running one cycle per interval until ctx is cancelled.
func (s *AlertScheduler) Run(ctx context.Context) {
	s.logger.Info("alert scheduler started", slog.Duration("interval", s.interval))
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("alert scheduler stopped")
			return
		case <-ticker.C:
			s.RunCycle(ctx)
		}
	}
}

// RunCycle processes every alertable item once. Failures are logged per
// region and never stop the cycle.
func (s *AlertScheduler) RunCycle(ctx context.Context) {
	start := time.Now()
	defer func() { s.metrics.CycleCompleted(time.Since(start)) }()

	items, err := s.contentRepo.ListAlertable(ctx)
	if err != nil {
		s.logger.Error("list alertable content", slog.String("error", err.Error()))
		return
	}
	for i := range items {
		item := items[i]
		for _, r := range entities.Regions {
			if item.Deadline(r).IsZero() {
				continue
			}
			if err := s.processRegionSafely(ctx, item.ID, r); err != nil {
				s.logger.Error("alert processing failed",
					slog.Int64("content_id", item.ID),
					slog.String("region", string(r)),
					slog.String("error", err.Error()),
				)
			}
		}
	}
}

// Classify returns the alert due for a deadline at now, if any.
func Classify(deadline, now time.Time) (entities.AlertKind, bool) {
	left := deadline.Sub(now)
	switch {
	case left <= 0:
		return entities.AlertExpired, true
	case left <= oneHourWindow:
		return entities.AlertOneHour, true
	}
	return "", false
}

// processRegionSafely turns a panic into an error so one item cannot stop
// the cycle. The transaction is already rolled back by then.
func (s *AlertScheduler) processRegionSafely(ctx context.Context, id int64, region entities.Region) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic while processing alert: %v", p)
		}
	}()
	return s.processRegion(ctx, id, region)
}

// processRegion runs check, dispatch and record for one (item, region) in a
// single transaction holding the content row, so a concurrent edit cannot
// slip between them.
func (s *AlertScheduler) processRegion(ctx context.Context, id int64, region entities.Region) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		item, err := s.contentRepo.LockByID(ctx, id)
		if err != nil {
			return fmt.Errorf("lock content: %w", err)
		}
		if item == nil {
			return nil
		}
		deadline := item.Deadline(region)
		if deadline.IsZero() {
			return nil
		}
		now := s.clock.Now()
		kind, due := Classify(deadline, now)
		if !due {
			return nil
		}
		entry := entities.LedgerEntry{ContentID: item.ID, Region: region, Kind: kind}
		sent, err := s.ledger.Exists(ctx, entry)
		if err != nil {
			return fmt.Errorf("check ledger: %w", err)
		}
		if sent {
			return nil
		}

		if err := s.notifier.Notify(ctx, s.notification(item, region, kind)); err != nil {
			s.metrics.AlertFailed(kind)
			return fmt.Errorf("%w: %w", domain.ErrDispatch, err)
		}
		if err := s.ledger.Record(ctx, entry); err != nil {
			return fmt.Errorf("record ledger: %w", err)
		}
		s.metrics.AlertDispatched(kind)
		s.logger.Info("alert dispatched",
			slog.Int64("content_id", item.ID),
			slog.String("region", string(region)),
			slog.String("kind", string(kind)),
		)

		if kind != entities.AlertExpired {
			return nil
		}
		done, err := s.fullyExpired(ctx, item, now)
		if err != nil {
			return err
		}
		if done {
			if err := s.contentRepo.Delete(ctx, item.ID); err != nil {
				return fmt.Errorf("delete expired content: %w", err)
			}
			s.logger.Info("expired content removed",
				slog.Int64("content_id", item.ID),
				slog.String("section", string(item.Section)),
			)
		}
		return nil
	})
}

// fullyExpired reports whether every region with a deadline is past it and
// has had its expired alert sent.
func (s *AlertScheduler) fullyExpired(ctx context.Context, item *entities.ContentItem, now time.Time) (bool, error) {
	for _, r := range entities.Regions {
		d := item.Deadline(r)
		if d.IsZero() {
			continue
		}
		if d.After(now) {
			return false, nil
		}
		sent, err := s.ledger.Exists(ctx, entities.LedgerEntry{ContentID: item.ID, Region: r, Kind: entities.AlertExpired})
		if err != nil {
			return false, fmt.Errorf("check ledger: %w", err)
		}
		if !sent {
			return false, nil
		}
	}
	return true, nil
}

func (s *AlertScheduler) notification(item *entities.ContentItem, region entities.Region, kind entities.AlertKind) output.Notification {
	locale := s.translator.DefaultLocale()
	title := item.Title
	if title == "" {
		title = s.translator.T(locale, "section."+string(item.Section), nil)
	}
	key := "alert.one_hour"
	if kind == entities.AlertExpired {
		key = "alert.expired"
	}
	return output.Notification{
		Destination: s.destination,
		Text: s.translator.T(locale, key, map[string]any{
			"Title":  title,
			"Name":   item.Name,
			"Region": s.translator.T(locale, "region."+string(region), nil),
		}),
		Media: item.Media,
	}
}
