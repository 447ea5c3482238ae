package catalog

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stackmart/catalog/internal/domain"
)

const cursorVersion = 1

// CursorValues holds the decoded sort-key values of the last row of the
// previous page, keyed by field. A nil value marks a NULL column.
type CursorValues map[Field]any

type cursorPayload struct {
	Version int                        `json:"v"`
	Keys    map[string]json.RawMessage `json:"k"`
}

// EncodeCursor projects the row onto exactly the chain's fields and encodes
// them as a versioned, URL-safe token.
func EncodeCursor(p domain.Product, chain SortChain) (string, error) {
	keys := make(map[string]json.RawMessage, len(chain))
	for _, key := range chain {
		value, err := cursorFieldValue(p, key.Field)
		if err != nil {
			return "", err
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return "", fmt.Errorf("encode cursor field %s: %w", key.Field, err)
		}
		keys[string(key.Field)] = raw
	}

	data, err := json.Marshal(cursorPayload{Version: cursorVersion, Keys: keys})
	if err != nil {
		return "", fmt.Errorf("encode cursor: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// DecodeCursor validates and decodes a client-supplied token against the
// active sort chain. Any defect, from malformed base64 to a token minted
// under a different chain, yields domain.ErrInvalidCursor; callers recover
// by starting from the first page. Decoding never panics.
func DecodeCursor(token string, chain SortChain) (CursorValues, error) {
	if token == "" {
		return nil, nil
	}

	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, domain.ErrInvalidCursor
	}

	var payload cursorPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, domain.ErrInvalidCursor
	}
	if payload.Version != cursorVersion {
		return nil, domain.ErrInvalidCursor
	}
	// A token minted under another chain must not be reinterpreted with the
	// wrong seek semantics, so the key set has to match the chain exactly.
	if len(payload.Keys) != len(chain) {
		return nil, domain.ErrInvalidCursor
	}

	values := make(CursorValues, len(chain))
	for _, key := range chain {
		raw, ok := payload.Keys[string(key.Field)]
		if !ok {
			return nil, domain.ErrInvalidCursor
		}
		value, err := decodeCursorValue(key.Field, raw)
		if err != nil {
			return nil, domain.ErrInvalidCursor
		}
		values[key.Field] = value
	}

	return values, nil
}

func cursorFieldValue(p domain.Product, f Field) (any, error) {
	switch f {
	case FieldID:
		return p.ID.String(), nil
	case FieldName:
		return p.Name, nil
	case FieldPrice:
		if p.Price == nil {
			return nil, nil
		}
		return *p.Price, nil
	case FieldStock:
		if p.Stock == nil {
			return nil, nil
		}
		return *p.Stock, nil
	case FieldIsActive:
		return p.IsActive, nil
	case FieldIsFeatured:
		return p.IsFeatured, nil
	case FieldHasVariants:
		return p.HasVariants, nil
	case FieldCreatedAt:
		return p.CreatedAt.Format(time.RFC3339Nano), nil
	default:
		return nil, fmt.Errorf("field %s is not cursor-encodable", f)
	}
}

// decodeCursorValue normalises a raw JSON value into the field's native Go
// type. NULL is accepted only for nullable fields.
func decodeCursorValue(f Field, raw json.RawMessage) (any, error) {
	info, ok := fieldRegistry[f]
	if !ok {
		return nil, fmt.Errorf("unknown field %s", f)
	}

	if string(raw) == "null" {
		if !info.nullable {
			return nil, fmt.Errorf("field %s is not nullable", f)
		}
		return nil, nil
	}

	switch info.kind {
	case kindUUID:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return uuid.Parse(s)
	case kindText:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return s, nil
	case kindNumeric:
		var v float64
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return v, nil
	case kindInteger:
		var v int
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return v, nil
	case kindBool:
		var v bool
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return v, nil
	case kindTimestamp:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return time.Parse(time.RFC3339Nano, s)
	default:
		return nil, fmt.Errorf("unsupported field kind for %s", f)
	}
}
