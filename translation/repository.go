package translation

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Store is durable keyed storage for localized values. The translations table
// is shared across every translatable record type; polymorphic ownership
// distinguishes rows.
type Store interface {
	// Find returns the unique row for the tuple, or (nil, nil) on miss.
	// A miss is a normal outcome; callers resolve it by base-value fallback.
	Find(ctx context.Context, owner Owner, field, locale string) (*Translation, error)

	// Upsert writes the value for the tuple, updating in place when a row
	// already exists. The write is atomic against the unique tuple index, so
	// concurrent writers cannot produce duplicate rows.
	Upsert(ctx context.Context, owner Owner, field, locale, value string) (*Translation, error)

	// UpsertBatch persists every entry for the locale in one transaction.
	// Either all entries are stored or none are.
	UpsertBatch(ctx context.Context, owner Owner, locale string, entries []FieldValue) error

	// ListForOwner returns every translation row belonging to the owner,
	// ordered by field then locale. Used to eager-load a record's values.
	ListForOwner(ctx context.Context, owner Owner) ([]*Translation, error)

	// DeleteForOwner removes every row belonging to the owner and reports how
	// many were deleted. Hosts invoke it from their delete hook so rows never
	// outlive the owning record.
	DeleteForOwner(ctx context.Context, owner Owner) (int, error)
}

// NewTranslationRepository creates the generic repository used for read paths.
func NewTranslationRepository(db *bun.DB) repository.Repository[*Translation] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Translation]{
		NewRecord: func() *Translation { return &Translation{} },
		GetID: func(t *Translation) uuid.UUID {
			return t.ID
		},
		SetID: func(t *Translation, id uuid.UUID) {
			t.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(t *Translation) string {
			if t == nil {
				return ""
			}
			return t.ID.String()
		},
	})
}

func validateTuple(owner Owner, field, locale string) error {
	if owner.IsZero() {
		return ErrOwnerRequired
	}
	if field == "" {
		return ErrFieldRequired
	}
	if locale == "" {
		return ErrLocaleRequired
	}
	return nil
}
