package translation

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotTranslatable  = errors.New("translation: field is not declared translatable")
	ErrCoercion         = errors.New("translation: value coercion failed")
	ErrStoreUnavailable = errors.New("translation: store unavailable")
	ErrCipherRequired   = errors.New("translation: cipher is required for encrypted fields")
	ErrOwnerRequired    = errors.New("translation: owner type and id are required")
	ErrFieldRequired    = errors.New("translation: field name is required")
	ErrLocaleRequired   = errors.New("translation: locale is required")
	ErrRecordRequired   = errors.New("translation: record is required")
	ErrStoreRequired    = errors.New("translation: store is required")
)

// NotTranslatableError reports get/set attempts against undeclared fields.
type NotTranslatableError struct {
	Field string
}

func (e *NotTranslatableError) Error() string {
	if e == nil {
		return ErrNotTranslatable.Error()
	}
	field := strings.TrimSpace(e.Field)
	if field != "" {
		return fmt.Sprintf("%s: field=%s", ErrNotTranslatable.Error(), field)
	}
	return ErrNotTranslatable.Error()
}

func (e *NotTranslatableError) Unwrap() error {
	return ErrNotTranslatable
}

// CoercionError reports a value that cannot be converted to or from its
// field's declared kind. Raw carries the offending textual representation so
// callers can diagnose bad stored rows.
type CoercionError struct {
	Field  string
	Locale string
	Kind   Kind
	Raw    string
	Cause  error
}

func (e *CoercionError) Error() string {
	if e == nil {
		return ErrCoercion.Error()
	}
	msg := fmt.Sprintf("%s: field=%s locale=%s kind=%s raw=%q", ErrCoercion.Error(), e.Field, e.Locale, e.Kind, e.Raw)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *CoercionError) Unwrap() error {
	return ErrCoercion
}

// StoreError wraps storage failures (connection loss, constraint violations).
// It matches ErrStoreUnavailable through errors.Is while preserving the
// underlying driver error for unwrapping. The store never retries.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	if e == nil {
		return ErrStoreUnavailable.Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: op=%s: %v", ErrStoreUnavailable.Error(), e.Op, e.Err)
	}
	return fmt.Sprintf("%s: op=%s", ErrStoreUnavailable.Error(), e.Op)
}

func (e *StoreError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func (e *StoreError) Is(target error) bool {
	return target == ErrStoreUnavailable
}

func storeError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
