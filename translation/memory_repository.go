package translation

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store implementation for scaffolding and tests.
type MemoryStore struct {
	mu   sync.RWMutex
	rows map[string]*Translation
}

// NewMemoryStore creates an empty in-memory translation store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rows: make(map[string]*Translation)}
}

var _ Store = (*MemoryStore)(nil)

// Find returns the row matching the tuple, or (nil, nil) when absent.
func (m *MemoryStore) Find(_ context.Context, owner Owner, field, locale string) (*Translation, error) {
	if err := validateTuple(owner, field, locale); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	row, ok := m.rows[tupleKey(owner, field, locale)]
	if !ok {
		return nil, nil
	}
	return cloneTranslation(row), nil
}

// Upsert writes the tuple's value, updating in place when the row exists.
func (m *MemoryStore) Upsert(_ context.Context, owner Owner, field, locale, value string) (*Translation, error) {
	if err := validateTuple(owner, field, locale); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return cloneTranslation(m.upsertLocked(owner, field, locale, value)), nil
}

// UpsertBatch applies every entry or none: entries are validated up front so a
// bad tuple cannot leave a partial write behind.
func (m *MemoryStore) UpsertBatch(_ context.Context, owner Owner, locale string, entries []FieldValue) error {
	for _, entry := range entries {
		if err := validateTuple(owner, entry.Field, locale); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, entry := range entries {
		m.upsertLocked(owner, entry.Field, locale, entry.Value)
	}
	return nil
}

// ListForOwner returns every row for the owner ordered by field then locale.
func (m *MemoryStore) ListForOwner(_ context.Context, owner Owner) ([]*Translation, error) {
	if owner.IsZero() {
		return nil, ErrOwnerRequired
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Translation, 0)
	for _, row := range m.rows {
		if row.OwnerType == owner.Type && row.OwnerID == owner.ID {
			out = append(out, cloneTranslation(row))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Field != out[j].Field {
			return out[i].Field < out[j].Field
		}
		return out[i].Locale < out[j].Locale
	})
	return out, nil
}

// DeleteForOwner removes every row for the owner.
func (m *MemoryStore) DeleteForOwner(_ context.Context, owner Owner) (int, error) {
	if owner.IsZero() {
		return 0, ErrOwnerRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key, row := range m.rows {
		if row.OwnerType == owner.Type && row.OwnerID == owner.ID {
			delete(m.rows, key)
			removed++
		}
	}
	return removed, nil
}

func (m *MemoryStore) upsertLocked(owner Owner, field, locale, value string) *Translation {
	key := tupleKey(owner, field, locale)
	now := time.Now().UTC()

	if existing, ok := m.rows[key]; ok {
		existing.Value = value
		existing.UpdatedAt = now
		return existing
	}

	row := &Translation{
		ID:        uuid.New(),
		OwnerType: owner.Type,
		OwnerID:   owner.ID,
		Field:     field,
		Locale:    locale,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.rows[key] = row
	return row
}

func tupleKey(owner Owner, field, locale string) string {
	return owner.Type + "\x00" + strconv.FormatInt(owner.ID, 10) + "\x00" + field + "\x00" + locale
}

func cloneTranslation(src *Translation) *Translation {
	if src == nil {
		return nil
	}
	copied := *src
	return &copied
}
