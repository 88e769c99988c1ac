package translation

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	cache "github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const translationNamespace = "translation"

// BunStore implements Store against a Bun-backed database, with optional
// read caching.
type BunStore struct {
	db           *bun.DB
	repo         repository.Repository[*Translation]
	cacheService cache.CacheService
	cachePrefix  string
}

// NewBunStore creates a translation store without caching.
func NewBunStore(db *bun.DB) *BunStore {
	return NewBunStoreWithCache(db, nil, nil)
}

// NewBunStoreWithCache creates a translation store whose read paths are served
// through the supplied cache service. Write paths invalidate the namespace so
// cached lookups never outlive an upsert or cascade delete.
func NewBunStoreWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunStore {
	base := NewTranslationRepository(db)
	var svc cache.CacheService
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
		svc = cacheService
	}
	prefix := ""
	if svc != nil {
		prefix = cachePrefix(translationNamespace)
	}
	return &BunStore{db: db, repo: base, cacheService: svc, cachePrefix: prefix}
}

var _ Store = (*BunStore)(nil)

// Find returns the row matching the tuple, or (nil, nil) when absent.
func (s *BunStore) Find(ctx context.Context, owner Owner, field, locale string) (*Translation, error) {
	if err := validateTuple(owner, field, locale); err != nil {
		return nil, err
	}

	records, _, err := s.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.owner_type = ?", owner.Type).
				Where("?TableAlias.owner_id = ?", owner.ID)
		}),
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.field = ?", field).
				Where("?TableAlias.locale = ?", locale)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return nil, nil
		}
		return nil, storeError("find", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

// Upsert inserts or updates the tuple's value atomically against the unique
// tuple index.
func (s *BunStore) Upsert(ctx context.Context, owner Owner, field, locale, value string) (*Translation, error) {
	if err := validateTuple(owner, field, locale); err != nil {
		return nil, err
	}

	stored, err := s.upsertRow(ctx, s.db, owner, field, locale, value)
	if err != nil {
		return nil, storeError("upsert", err)
	}
	if err := s.InvalidateCache(ctx); err != nil {
		return nil, storeError("upsert", err)
	}
	return stored, nil
}

// UpsertBatch persists every entry inside one transaction.
func (s *BunStore) UpsertBatch(ctx context.Context, owner Owner, locale string, entries []FieldValue) error {
	for _, entry := range entries {
		if err := validateTuple(owner, entry.Field, locale); err != nil {
			return err
		}
	}
	if len(entries) == 0 {
		return nil
	}

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, entry := range entries {
			if _, err := s.upsertRow(ctx, tx, owner, entry.Field, locale, entry.Value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return storeError("upsert_batch", err)
	}
	if err := s.InvalidateCache(ctx); err != nil {
		return storeError("upsert_batch", err)
	}
	return nil
}

// ListForOwner returns every row for the owner, ordered by field then locale.
func (s *BunStore) ListForOwner(ctx context.Context, owner Owner) ([]*Translation, error) {
	if owner.IsZero() {
		return nil, ErrOwnerRequired
	}

	records, _, err := s.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.owner_type = ?", owner.Type).
				Where("?TableAlias.owner_id = ?", owner.ID).
				Order("field ASC").
				Order("locale ASC")
		}),
	)
	if err != nil {
		if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return nil, nil
		}
		return nil, storeError("list_for_owner", err)
	}
	return records, nil
}

// DeleteForOwner removes every row for the owner.
func (s *BunStore) DeleteForOwner(ctx context.Context, owner Owner) (int, error) {
	if owner.IsZero() {
		return 0, ErrOwnerRequired
	}

	res, err := s.db.NewDelete().
		Model((*Translation)(nil)).
		Where("?TableAlias.owner_type = ?", owner.Type).
		Where("?TableAlias.owner_id = ?", owner.ID).
		Exec(ctx)
	if err != nil {
		return 0, storeError("delete_for_owner", err)
	}
	if err := s.InvalidateCache(ctx); err != nil {
		return 0, storeError("delete_for_owner", err)
	}
	affected, _ := res.RowsAffected()
	return int(affected), nil
}

// InvalidateCache clears cached translation reads after a write.
func (s *BunStore) InvalidateCache(ctx context.Context) error {
	if s.cacheService == nil || s.cachePrefix == "" {
		return nil
	}
	return s.cacheService.DeleteByPrefix(ctx, s.cachePrefix)
}

// upsertRow scans RETURNING into the model so the caller gets the row this
// write produced, not whatever a later concurrent writer left behind.
func (s *BunStore) upsertRow(ctx context.Context, db bun.IDB, owner Owner, field, locale, value string) (*Translation, error) {
	now := time.Now().UTC()
	model := &Translation{
		ID:        uuid.New(),
		OwnerType: owner.Type,
		OwnerID:   owner.ID,
		Field:     field,
		Locale:    locale,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := db.NewInsert().
		Model(model).
		On("CONFLICT (owner_type, owner_id, field, locale) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	return model, nil
}

func cachePrefix(namespace string) string {
	if namespace == "" {
		return ""
	}
	return namespace + cache.KeySeparator
}
