package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"bannerbot/internal/domain"
	"bannerbot/internal/domain/entities"
	"bannerbot/internal/ports/input"
	"bannerbot/internal/ports/output"
	"bannerbot/pkg/tz"
)

var _ input.EditFlowUseCase = (*EditFlow)(nil)

// EditFlow is the conversation state machine that collects a content edit
// across several messages. State lives in the ConversationStore, keyed by
// conversation, and is reloaded on every message.
//
// Fixed sections: title (and name for banner), three region times, photo.
// Events: a single "<name> ; <timestamp>" message.
//
// Messages of one conversation are handled one at a time.
type EditFlow struct {
	conversations output.ConversationStore
	contentRepo   output.ContentRepository
	ledger        output.AlertLedgerRepository
	offsets       output.RegionOffsetRepository
	tx            output.Transactor
	admins        input.AdminUseCase
	translator    output.T
	metrics       output.Metrics
	logger        *slog.Logger

	inFlight keyedMutex
}

type EditFlowDeps struct {
	Conversations output.ConversationStore
	Content       output.ContentRepository
	Ledger        output.AlertLedgerRepository
	Offsets       output.RegionOffsetRepository
	Tx            output.Transactor
	Admins        input.AdminUseCase
	Translator    output.T
	Metrics       output.Metrics
	Logger        *slog.Logger
}

func NewEditFlow(d EditFlowDeps) *EditFlow {
	if d.Metrics == nil {
		d.Metrics = output.NopMetrics{}
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	return &EditFlow{
		conversations: d.Conversations,
		contentRepo:   d.Content,
		ledger:        d.Ledger,
		offsets:       d.Offsets,
		tx:            d.Tx,
		admins:        d.Admins,
		translator:    d.Translator,
		metrics:       d.Metrics,
		logger:        d.Logger,
	}
}

// Start opens an edit of section for callerID, replacing any edit already in
// progress in that conversation.
func (f *EditFlow) Start(ctx context.Context, key entities.ConversationKey, callerID string, section entities.Section, locale string) (string, error) {
	if locale == "" {
		locale = f.translator.DefaultLocale()
	}
	defer f.inFlight.Lock(key)()

	ok, err := f.admins.IsAdmin(ctx, callerID)
	if err != nil {
		return "", fmt.Errorf("check admin: %w", err)
	}
	if !ok {
		return f.translator.T(locale, "edit.denied", nil), domain.ErrPermissionDenied
	}

	state := &entities.ConversationState{Section: section, Locale: locale}
	var prompt string
	switch section {
	case entities.SectionBanner:
		state.Step = entities.StepCollectingTitleAndName
		prompt = "flow.prompt.title_and_name"
	case entities.SectionAbyss, entities.SectionStygian, entities.SectionTheater:
		state.Step = entities.StepCollectingTitle
		prompt = "flow.prompt.title"
	case entities.SectionEvents:
		state.Step = entities.StepCollectingEventText
		prompt = "flow.prompt.event_text"
	default:
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownSection, section)
	}
	if err := f.conversations.Put(ctx, key, state); err != nil {
		return "", fmt.Errorf("save conversation: %w", err)
	}
	return f.translator.T(locale, prompt, nil), nil
}

func (f *EditFlow) Active(ctx context.Context, key entities.ConversationKey) (bool, error) {
	state, err := f.conversations.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("load conversation: %w", err)
	}
	return state != nil && state.Step != entities.StepIdle, nil
}

// Cancel discards the edit in progress. It reports whether there was one.
func (f *EditFlow) Cancel(ctx context.Context, key entities.ConversationKey) (bool, error) {
	defer f.inFlight.Lock(key)()

	active, err := f.Active(ctx, key)
	if err != nil || !active {
		return false, err
	}
	if err := f.conversations.Delete(ctx, key); err != nil {
		return false, fmt.Errorf("drop conversation: %w", err)
	}
	return true, nil
}

// Handle advances the edit in progress with msg. It returns "" and no error
// when the conversation is idle.
func (f *EditFlow) Handle(ctx context.Context, key entities.ConversationKey, msg input.Message) (string, error) {
	defer f.inFlight.Lock(key)()

	state, err := f.conversations.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("load conversation: %w", err)
	}
	if state == nil || state.Step == entities.StepIdle {
		return "", nil
	}

	switch state.Step {
	case entities.StepCollectingTitleAndName:
		if msg.Text == "" {
			return f.reprompt(state, "flow.error.text_expected")
		}
		title, name, ok := splitPair(msg.Text)
		if !ok {
			return f.reprompt(state, "flow.error.title_and_name_format")
		}
		state.Title, state.Name = title, name
		return f.advance(ctx, key, state, entities.StepCollectingAsiaTime, "flow.prompt.asia_time")

	case entities.StepCollectingTitle:
		title := strings.TrimSpace(msg.Text)
		if title == "" {
			return f.reprompt(state, "flow.error.empty_title")
		}
		state.Title, state.Name = title, ""
		return f.advance(ctx, key, state, entities.StepCollectingAsiaTime, "flow.prompt.asia_time")

	case entities.StepCollectingEventText:
		return f.handleEventText(ctx, key, state, msg)

	case entities.StepCollectingAsiaTime:
		if msg.Text == "" {
			return f.reprompt(state, "flow.error.text_expected")
		}
		state.RawAsia = msg.Text
		return f.advance(ctx, key, state, entities.StepCollectingEuropeTime, "flow.prompt.europe_time")

	case entities.StepCollectingEuropeTime:
		if msg.Text == "" {
			return f.reprompt(state, "flow.error.text_expected")
		}
		state.RawEurope = msg.Text
		return f.advance(ctx, key, state, entities.StepCollectingAmericaTime, "flow.prompt.america_time")

	case entities.StepCollectingAmericaTime:
		if msg.Text == "" {
			return f.reprompt(state, "flow.error.text_expected")
		}
		state.RawAmerica = msg.Text
		return f.advance(ctx, key, state, entities.StepCollectingPhoto, "flow.prompt.photo")

	case entities.StepCollectingPhoto:
		if msg.Media == "" {
			return f.reprompt(state, "flow.error.photo_only")
		}
		return f.handlePhoto(ctx, key, state, msg.Media)
	}

	return "", fmt.Errorf("conversation %s in unknown step %q", key, state.Step)
}

func (f *EditFlow) handleEventText(ctx context.Context, key entities.ConversationKey, state *entities.ConversationState, msg input.Message) (string, error) {
	if msg.Text == "" {
		return f.reprompt(state, "flow.error.text_expected")
	}
	name, raw, ok := splitPair(msg.Text)
	if !ok {
		return f.reprompt(state, "flow.error.event_format")
	}
	end, err := tz.ToUTC(raw, tz.EventOffsetHours)
	if err != nil {
		return f.translator.T(state.Locale, "flow.error.invalid_timestamp", nil), fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	id, err := f.contentRepo.InsertEvent(ctx, name, end)
	if err != nil {
		return "", fmt.Errorf("insert event: %w", err)
	}
	if err := f.conversations.Delete(ctx, key); err != nil {
		return "", fmt.Errorf("drop conversation: %w", err)
	}
	f.metrics.ContentEdited(entities.SectionEvents)
	f.logger.Info("event added",
		slog.Int64("content_id", id),
		slog.String("end_utc", tz.FormatUTC(end)),
	)
	return f.translator.T(state.Locale, "flow.done.event", map[string]any{"Name": name}), nil
}

// handlePhoto normalizes the three collected times and commits the edit.
// Any malformed time discards the whole edit.
func (f *EditFlow) handlePhoto(ctx context.Context, key entities.ConversationKey, state *entities.ConversationState, media entities.MediaRef) (string, error) {
	item := &entities.ContentItem{
		Section: state.Section,
		Title:   state.Title,
		Name:    state.Name,
		Media:   media,
	}
	raw := map[entities.Region]string{
		entities.RegionAsia:    state.RawAsia,
		entities.RegionEurope:  state.RawEurope,
		entities.RegionAmerica: state.RawAmerica,
	}

	var (
		errs   []error
		failed []string
	)
	for _, r := range entities.Regions {
		offset, err := f.offsets.Offset(ctx, r)
		if err != nil {
			return "", fmt.Errorf("offset for %s: %w", r, err)
		}
		t, err := tz.ToUTC(raw[r], offset)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r, err))
			failed = append(failed, f.translator.T(state.Locale, "region."+string(r), nil))
			continue
		}
		item.SetDeadline(r, t)
	}

	if len(errs) > 0 {
		if err := f.conversations.Delete(ctx, key); err != nil {
			return "", fmt.Errorf("drop conversation: %w", err)
		}
		reply := f.translator.T(state.Locale, "flow.error.region_times", map[string]any{
			"Regions": strings.Join(failed, ", "),
		})
		return reply, fmt.Errorf("%w: %w", domain.ErrValidation, errors.Join(errs...))
	}

	var id int64
	err := f.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		id, err = f.contentRepo.UpsertBySection(ctx, item)
		if err != nil {
			return fmt.Errorf("upsert %s: %w", item.Section, err)
		}
		if err := f.ledger.ClearContent(ctx, id); err != nil {
			return fmt.Errorf("clear ledger: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if err := f.conversations.Delete(ctx, key); err != nil {
		return "", fmt.Errorf("drop conversation: %w", err)
	}

	f.metrics.ContentEdited(item.Section)
	f.logger.Info("content updated",
		slog.String("section", string(item.Section)),
		slog.Int64("content_id", id),
	)
	return f.translator.T(state.Locale, "flow.done.section", map[string]any{
		"Section": f.translator.T(state.Locale, "section."+string(item.Section), nil),
	}), nil
}

func (f *EditFlow) advance(ctx context.Context, key entities.ConversationKey, state *entities.ConversationState, next entities.Step, prompt string) (string, error) {
	state.Step = next
	if err := f.conversations.Put(ctx, key, state); err != nil {
		return "", fmt.Errorf("save conversation: %w", err)
	}
	return f.translator.T(state.Locale, prompt, nil), nil
}

// reprompt leaves the state untouched.
func (f *EditFlow) reprompt(state *entities.ConversationState, key string) (string, error) {
	return f.translator.T(state.Locale, key, nil), fmt.Errorf("%w: %s", domain.ErrValidation, strings.TrimPrefix(key, "flow.error."))
}

// splitPair splits "a ; b" on the first separator.
func splitPair(s string) (string, string, bool) {
	parts := strings.SplitN(s, ";", 2)
	if len(parts) < 2 {
		return "", "", false
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
}
