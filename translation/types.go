package translation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Owner identifies the record a translation belongs to. Ownership is
// polymorphic: Type discriminates the host record type, ID the instance.
type Owner struct {
	Type string
	ID   int64
}

// IsZero reports whether the reference is missing either component.
func (o Owner) IsZero() bool {
	return o.Type == "" || o.ID == 0
}

// Translation stores one localized value for a single owner field.
// At most one row exists per (owner_type, owner_id, field, locale) tuple.
type Translation struct {
	bun.BaseModel `bun:"table:translations,alias:t"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	OwnerType string    `bun:"owner_type,notnull,unique:translations_owner_field_locale" json:"owner_type"`
	OwnerID   int64     `bun:"owner_id,notnull,unique:translations_owner_field_locale" json:"owner_id"`
	Field     string    `bun:"field,notnull,unique:translations_owner_field_locale" json:"field"`
	Locale    string    `bun:"locale,notnull,unique:translations_owner_field_locale" json:"locale"`
	Value     string    `bun:"value,type:text" json:"value"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// OwnerRef returns the owner reference stored on the row.
func (t *Translation) OwnerRef() Owner {
	if t == nil {
		return Owner{}
	}
	return Owner{Type: t.OwnerType, ID: t.OwnerID}
}

// Kind names the semantic type of a translatable field. Values are always
// stored as text; the kind drives coercion at the read/write boundary.
type Kind string

const (
	KindString    Kind = "string"
	KindBool      Kind = "bool"
	KindInt       Kind = "integer"
	KindFloat     Kind = "float"
	KindJSON      Kind = "json"
	KindTime      Kind = "datetime"
	KindEncrypted Kind = "encrypted"
)

// Field declares one translatable field on a host record. An empty Kind is
// treated as KindString.
type Field struct {
	Name string
	Kind Kind
}

// FieldValue carries one encoded field value for batch writes.
type FieldValue struct {
	Field string
	Value string
}

// Record is the contract a host type implements to become translatable.
// The host keeps full ownership of base-field persistence; the resolver only
// reads base values for fallback and for routing writes on save.
type Record interface {
	// TranslationOwner identifies the record in the shared translations table.
	TranslationOwner() Owner
	// TranslatableFields declares the ordered set of fields eligible for translation.
	TranslatableFields() []Field
	// BaseValue returns the field's untranslated value in its native type.
	BaseValue(field string) any
}

type localeContextKey struct{}

// ContextWithLocale annotates the context with the ambient request locale.
// Resolvers consult it when no explicit locale argument is supplied.
func ContextWithLocale(ctx context.Context, locale string) context.Context {
	if ctx == nil || locale == "" {
		return ctx
	}
	return context.WithValue(ctx, localeContextKey{}, locale)
}

// LocaleFromContext extracts the ambient locale, returning "" when unset.
func LocaleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	locale, _ := ctx.Value(localeContextKey{}).(string)
	return locale
}
