package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-translatable/translation"
)

const (
	commandValidationCode  = "COMMAND_VALIDATION_FAILED"
	commandContextCanceled = "COMMAND_CONTEXT_CANCELED"
	commandContextTimeout  = "COMMAND_CONTEXT_TIMEOUT"
	commandContextError    = "COMMAND_CONTEXT_ERROR"
	commandStoreFailed     = "COMMAND_TRANSLATION_STORE_FAILED"
	commandExecuteFailed   = "COMMAND_EXECUTION_FAILED"
)

func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command validation failed").
		WithTextCode(commandValidationCode)
}

func wrapContextError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch err {
	case context.Canceled:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution cancelled").
			WithTextCode(commandContextCanceled)
	case context.DeadlineExceeded:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution deadline exceeded").
			WithTextCode(commandContextTimeout)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command context error").
			WithTextCode(commandContextError)
	}
}

// wrapExecuteError tags store-layer failures so callers can distinguish an
// unavailable translation store from a handler bug. Incomplete tuples surface
// as validation failures even when they slip past message validation.
func wrapExecuteError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, translation.ErrOwnerRequired),
		errors.Is(err, translation.ErrFieldRequired),
		errors.Is(err, translation.ErrLocaleRequired):
		return goerrors.Wrap(err, goerrors.CategoryValidation, "command translation tuple invalid").
			WithTextCode(commandValidationCode)
	case errors.Is(err, translation.ErrStoreUnavailable):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command translation store failed").
			WithTextCode(commandStoreFailed)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution failed").
			WithTextCode(commandExecuteFailed)
	}
}
