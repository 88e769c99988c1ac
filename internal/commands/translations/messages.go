package translationscmd

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	setTranslationMessageType    = "translatable.translation.set"
	purgeTranslationsMessageType = "translatable.translation.purge"
)

// SetTranslationCommand upserts one stored translation value. The value is
// carried in its textual storage form; coercion happens at the resolver
// boundary, not in the command pipeline.
type SetTranslationCommand struct {
	OwnerType string `json:"owner_type"`
	OwnerID   int64  `json:"owner_id"`
	Field     string `json:"field"`
	Locale    string `json:"locale"`
	Value     string `json:"value"`
}

// Type implements command.Message.
func (SetTranslationCommand) Type() string { return setTranslationMessageType }

// Validate ensures the message carries the required tuple before reaching handlers.
func (m SetTranslationCommand) Validate() error {
	errs := validation.Errors{}
	if m.OwnerType == "" {
		errs["owner_type"] = validation.NewError("translatable.translation.set.owner_type_required", "owner_type is required")
	}
	if m.OwnerID == 0 {
		errs["owner_id"] = validation.NewError("translatable.translation.set.owner_id_required", "owner_id is required")
	}
	if m.Field == "" {
		errs["field"] = validation.NewError("translatable.translation.set.field_required", "field is required")
	}
	if m.Locale == "" {
		errs["locale"] = validation.NewError("translatable.translation.set.locale_required", "locale is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PurgeTranslationsCommand removes every stored translation for an owner,
// typically dispatched from the host's record-deletion path.
type PurgeTranslationsCommand struct {
	OwnerType string `json:"owner_type"`
	OwnerID   int64  `json:"owner_id"`
}

// Type implements command.Message.
func (PurgeTranslationsCommand) Type() string { return purgeTranslationsMessageType }

// Validate ensures the owner reference is complete.
func (m PurgeTranslationsCommand) Validate() error {
	errs := validation.Errors{}
	if m.OwnerType == "" {
		errs["owner_type"] = validation.NewError("translatable.translation.purge.owner_type_required", "owner_type is required")
	}
	if m.OwnerID == 0 {
		errs["owner_id"] = validation.NewError("translatable.translation.purge.owner_id_required", "owner_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
