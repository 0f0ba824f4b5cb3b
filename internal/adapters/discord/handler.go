package discord

import (
	"context"
	"errors"
	"log/slog"

	"bannerbot/internal/domain"
	"bannerbot/internal/domain/entities"
	"bannerbot/internal/ports/input"
	"bannerbot/internal/ports/output"
	pkgdiscord "bannerbot/pkg/discord"
)

// reply is what the bot answers to one inbound message or interaction.
// private replies are ephemeral when the transport supports it.
type reply struct {
	Text    string
	Media   entities.MediaRef
	private bool
}

// Handler routes commands and conversation messages to the use cases.
type Handler struct {
	content    input.ContentUseCase
	admins     input.AdminUseCase
	flow       input.EditFlowUseCase
	translator output.T
	logger     *slog.Logger
}

type HandlerDeps struct {
	Content    input.ContentUseCase
	Admins     input.AdminUseCase
	Flow       input.EditFlowUseCase
	Translator output.T
	Logger     *slog.Logger
}

func NewHandler(d HandlerDeps) *Handler {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	return &Handler{
		content:    d.Content,
		admins:     d.Admins,
		flow:       d.Flow,
		translator: d.Translator,
		logger:     d.Logger,
	}
}

// HandleMessage handles one inbound chat message. Recognized commands run
// even while an edit is in progress; anything else feeds the edit.
func (h *Handler) HandleMessage(ctx context.Context, key entities.ConversationKey, text string, media entities.MediaRef) reply {
	if cmd, args, ok := parseCommand(text); ok {
		return h.Execute(ctx, key, cmd, args)
	}
	return h.continueFlow(ctx, key, input.Message{Text: text, Media: media})
}

func (h *Handler) continueFlow(ctx context.Context, key entities.ConversationKey, msg input.Message) reply {
	text, err := h.flow.Handle(ctx, key, msg)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrValidation):
		h.logger.Debug("edit input rejected",
			slog.String("user_id", key.UserID),
			slog.String("error", err.Error()),
		)
	default:
		h.logger.Error("edit step failed",
			slog.String("user_id", key.UserID),
			slog.String("chat_id", key.ChatID),
			slog.String("error", err.Error()),
		)
		if text == "" {
			text = pkgdiscord.DomainErrorMessage(h.translator, h.translator.DefaultLocale(), err)
		}
	}
	return reply{Text: text}
}

// Execute runs a resolved command for the caller identified by key.
func (h *Handler) Execute(ctx context.Context, key entities.ConversationKey, cmd command, args string) reply {
	locale := cmd.locale
	switch cmd.op {
	case opHelp:
		return reply{Text: h.translator.T(locale, "help", nil)}
	case opStartEdit:
		return h.startEdit(ctx, key, cmd)
	case opCancel:
		return h.cancel(ctx, key, locale)
	case opShow:
		return h.show(ctx, cmd.section, locale)
	case opShowEvents:
		return h.showEvents(ctx, locale)
	case opDeleteEvents:
		return h.deleteEvents(ctx, key.UserID, locale)
	case opAddAdmin, opRemoveAdmin:
		return h.changeAdmin(ctx, key.UserID, cmd.op, args, locale)
	}
	return reply{}
}

func (h *Handler) startEdit(ctx context.Context, key entities.ConversationKey, cmd command) reply {
	text, err := h.flow.Start(ctx, key, key.UserID, cmd.section, cmd.locale)
	if err != nil && text == "" {
		h.logger.Error("start edit",
			slog.String("user_id", key.UserID),
			slog.String("section", string(cmd.section)),
			slog.String("error", err.Error()),
		)
		text = pkgdiscord.DomainErrorMessage(h.translator, cmd.locale, err)
	}
	return reply{Text: text, private: true}
}

func (h *Handler) cancel(ctx context.Context, key entities.ConversationKey, locale string) reply {
	cancelled, err := h.flow.Cancel(ctx, key)
	if err != nil {
		h.logger.Error("cancel edit", slog.String("user_id", key.UserID), slog.String("error", err.Error()))
		return reply{Text: pkgdiscord.DomainErrorMessage(h.translator, locale, err), private: true}
	}
	if !cancelled {
		return reply{Text: h.translator.T(locale, "flow.nothing_to_cancel", nil), private: true}
	}
	return reply{Text: h.translator.T(locale, "flow.cancelled", nil), private: true}
}

func (h *Handler) show(ctx context.Context, section entities.Section, locale string) reply {
	view, err := h.content.ShowContent(ctx, section)
	if errors.Is(err, domain.ErrNotFound) {
		return reply{Text: h.translator.T(locale, "show.empty", map[string]any{
			"Section": h.translator.T(locale, "section."+string(section), nil),
		})}
	}
	if err != nil {
		h.logger.Error("show content", slog.String("section", string(section)), slog.String("error", err.Error()))
		return reply{Text: pkgdiscord.DomainErrorMessage(h.translator, locale, err)}
	}
	return reply{Text: pkgdiscord.RenderContent(h.translator, locale, view), Media: view.Media}
}

func (h *Handler) showEvents(ctx context.Context, locale string) reply {
	events, err := h.content.ShowEvents(ctx)
	if err != nil {
		h.logger.Error("show events", slog.String("error", err.Error()))
		return reply{Text: pkgdiscord.DomainErrorMessage(h.translator, locale, err)}
	}
	return reply{Text: pkgdiscord.RenderEvents(h.translator, locale, events)}
}

func (h *Handler) deleteEvents(ctx context.Context, callerID, locale string) reply {
	n, err := h.content.DeleteAllEvents(ctx, callerID)
	if errors.Is(err, domain.ErrPermissionDenied) {
		return reply{Text: h.translator.T(locale, "events.delete_denied", nil), private: true}
	}
	if err != nil {
		h.logger.Error("delete events", slog.String("user_id", callerID), slog.String("error", err.Error()))
		return reply{Text: pkgdiscord.DomainErrorMessage(h.translator, locale, err), private: true}
	}
	h.logger.Info("events deleted", slog.String("user_id", callerID), slog.Int64("count", n))
	return reply{Text: h.translator.T(locale, "events.deleted", nil), private: true}
}

func (h *Handler) changeAdmin(ctx context.Context, callerID string, op operation, args, locale string) reply {
	add := op == opAddAdmin
	usage, denied, done := "admin.usage_remove", "admin.remove_denied", "admin.removed"
	if add {
		usage, denied, done = "admin.usage_add", "admin.add_denied", "admin.added"
	}
	target := mentionedUserID(args)
	if target == "" {
		return reply{Text: h.translator.T(locale, usage, nil), private: true}
	}

	var err error
	if add {
		err = h.admins.AddAdmin(ctx, callerID, target)
	} else {
		err = h.admins.RemoveAdmin(ctx, callerID, target)
	}
	switch {
	case err == nil:
		h.logger.Info("admin roster changed",
			slog.String("caller_id", callerID),
			slog.String("user_id", target),
			slog.Bool("added", add),
		)
		return reply{Text: h.translator.T(locale, done, map[string]any{"UserID": target}), private: true}
	case errors.Is(err, domain.ErrPermissionDenied):
		return reply{Text: h.translator.T(locale, denied, nil), private: true}
	case errors.Is(err, domain.ErrOwnerProtected):
		return reply{Text: h.translator.T(locale, "admin.owner_protected", nil), private: true}
	case errors.Is(err, domain.ErrValidation):
		return reply{Text: h.translator.T(locale, "admin.invalid_id", nil), private: true}
	}
	h.logger.Error("change admin roster", slog.String("user_id", target), slog.String("error", err.Error()))
	return reply{Text: pkgdiscord.DomainErrorMessage(h.translator, locale, err), private: true}
}
