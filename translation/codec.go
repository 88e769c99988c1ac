package translation

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Cipher converts between plaintext and the ciphertext stored for encrypted
// fields. Implementations must round-trip: Decrypt(Encrypt(s)) == s.
type Cipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// CodecOption configures a Codec instance.
type CodecOption func(*Codec)

// WithCipher installs the cipher used by KindEncrypted fields.
func WithCipher(cipher Cipher) CodecOption {
	return func(c *Codec) {
		c.cipher = cipher
	}
}

// Codec converts field values between their native types and the textual
// representation stored in the translations table. The mapping is symmetric:
// Decode(Encode(v)) yields a value equal to v for every supported kind.
type Codec struct {
	cipher Cipher
}

// NewCodec constructs a codec. Without WithCipher, encrypted fields fail with
// ErrCipherRequired.
func NewCodec(opts ...CodecOption) *Codec {
	c := &Codec{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Encode converts a native value into its stored text form.
func (c *Codec) Encode(field Field, locale string, value any) (string, error) {
	switch normalizeKind(field.Kind) {
	case KindString:
		s, ok := value.(string)
		if !ok {
			return "", encodeError(field, locale, value, fmt.Errorf("expected string, got %T", value))
		}
		return s, nil
	case KindBool:
		b, ok := value.(bool)
		if !ok {
			return "", encodeError(field, locale, value, fmt.Errorf("expected bool, got %T", value))
		}
		if b {
			return "1", nil
		}
		return "0", nil
	case KindInt:
		n, ok := toInt64(value)
		if !ok {
			return "", encodeError(field, locale, value, fmt.Errorf("expected integer, got %T", value))
		}
		return strconv.FormatInt(n, 10), nil
	case KindFloat:
		f, ok := toFloat64(value)
		if !ok {
			return "", encodeError(field, locale, value, fmt.Errorf("expected float, got %T", value))
		}
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	case KindJSON:
		raw, err := json.Marshal(value)
		if err != nil {
			return "", encodeError(field, locale, value, err)
		}
		return string(raw), nil
	case KindTime:
		ts, ok := value.(time.Time)
		if !ok {
			return "", encodeError(field, locale, value, fmt.Errorf("expected time.Time, got %T", value))
		}
		return ts.UTC().Format(time.RFC3339Nano), nil
	case KindEncrypted:
		if c.cipher == nil {
			return "", ErrCipherRequired
		}
		s, ok := value.(string)
		if !ok {
			return "", encodeError(field, locale, value, fmt.Errorf("expected string, got %T", value))
		}
		ciphertext, err := c.cipher.Encrypt(s)
		if err != nil {
			return "", encodeError(field, locale, value, err)
		}
		return ciphertext, nil
	default:
		return "", encodeError(field, locale, value, fmt.Errorf("unsupported kind %q", field.Kind))
	}
}

// Decode converts stored text back into the field's native type.
func (c *Codec) Decode(field Field, locale, raw string) (any, error) {
	switch normalizeKind(field.Kind) {
	case KindString:
		return raw, nil
	case KindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, decodeError(field, locale, raw, err)
		}
		return b, nil
	case KindInt:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, decodeError(field, locale, raw, err)
		}
		return n, nil
	case KindFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, decodeError(field, locale, raw, err)
		}
		return f, nil
	case KindJSON:
		var out any
		if err := json.Unmarshal([]byte(raw), &out); err != nil {
			return nil, decodeError(field, locale, raw, err)
		}
		return out, nil
	case KindTime:
		ts, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, decodeError(field, locale, raw, err)
		}
		return ts, nil
	case KindEncrypted:
		if c.cipher == nil {
			return nil, ErrCipherRequired
		}
		plaintext, err := c.cipher.Decrypt(raw)
		if err != nil {
			return nil, decodeError(field, locale, raw, err)
		}
		return plaintext, nil
	default:
		return nil, decodeError(field, locale, raw, fmt.Errorf("unsupported kind %q", field.Kind))
	}
}

func normalizeKind(kind Kind) Kind {
	if kind == "" {
		return KindString
	}
	return kind
}

func encodeError(field Field, locale string, value any, cause error) error {
	return &CoercionError{
		Field:  field.Name,
		Locale: locale,
		Kind:   normalizeKind(field.Kind),
		Raw:    fmt.Sprintf("%v", value),
		Cause:  cause,
	}
}

func decodeError(field Field, locale, raw string, cause error) error {
	return &CoercionError{
		Field:  field.Name,
		Locale: locale,
		Kind:   normalizeKind(field.Kind),
		Raw:    raw,
		Cause:  cause,
	}
}

func toInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	default:
		return 0, false
	}
}

func toFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}
