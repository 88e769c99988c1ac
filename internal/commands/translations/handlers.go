package translationscmd

import (
	"context"

	"github.com/goliatone/go-translatable/internal/commands"
	"github.com/goliatone/go-translatable/pkg/interfaces"
	"github.com/goliatone/go-translatable/translation"
)

// SetTranslationHandler upserts stored values via the translation store using
// the shared command handler foundation.
type SetTranslationHandler struct {
	inner *commands.Handler[SetTranslationCommand]
}

// NewSetTranslationHandler constructs a handler wired to the provided store.
func NewSetTranslationHandler(store translation.Store, logger interfaces.Logger, opts ...commands.HandlerOption[SetTranslationCommand]) *SetTranslationHandler {
	exec := func(ctx context.Context, msg SetTranslationCommand) error {
		owner := translation.Owner{Type: msg.OwnerType, ID: msg.OwnerID}
		_, err := store.Upsert(ctx, owner, msg.Field, msg.Locale, msg.Value)
		return err
	}

	handlerOpts := []commands.HandlerOption[SetTranslationCommand]{
		commands.WithLogger[SetTranslationCommand](logger),
		commands.WithOperation[SetTranslationCommand]("translation.set"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SetTranslationHandler{
		inner: commands.NewHandler[SetTranslationCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander.
func (h *SetTranslationHandler) Execute(ctx context.Context, msg SetTranslationCommand) error {
	return h.inner.Execute(ctx, msg)
}

// PurgeTranslationsHandler removes an owner's stored translations.
type PurgeTranslationsHandler struct {
	inner *commands.Handler[PurgeTranslationsCommand]
}

// NewPurgeTranslationsHandler constructs a handler wired to the provided store.
func NewPurgeTranslationsHandler(store translation.Store, logger interfaces.Logger, opts ...commands.HandlerOption[PurgeTranslationsCommand]) *PurgeTranslationsHandler {
	exec := func(ctx context.Context, msg PurgeTranslationsCommand) error {
		owner := translation.Owner{Type: msg.OwnerType, ID: msg.OwnerID}
		_, err := store.DeleteForOwner(ctx, owner)
		return err
	}

	handlerOpts := []commands.HandlerOption[PurgeTranslationsCommand]{
		commands.WithLogger[PurgeTranslationsCommand](logger),
		commands.WithOperation[PurgeTranslationsCommand]("translation.purge"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &PurgeTranslationsHandler{
		inner: commands.NewHandler[PurgeTranslationsCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander.
func (h *PurgeTranslationsHandler) Execute(ctx context.Context, msg PurgeTranslationsCommand) error {
	return h.inner.Execute(ctx, msg)
}
