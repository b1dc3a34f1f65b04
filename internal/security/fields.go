package security

import (
	"encoding/json"
	"fmt"
	"sort"
)

// FieldKind is the JSON type a whitelisted field must carry.
type FieldKind int

const (
	TextField FieldKind = iota
	BoolField
)

// NewsUpdateFields is the whitelist of keys a news update may touch.
var NewsUpdateFields = map[string]FieldKind{
	"title":     TextField,
	"excerpt":   TextField,
	"content":   TextField,
	"date":      TextField,
	"published": BoolField,
	"author":    TextField,
}

// FilterFields keeps only whitelisted keys of raw and returns the names of
// the dropped ones, sorted. Text fields must hold a JSON string or null;
// anything else fails with apperr.ErrInvalidInput.
func FilterFields(raw map[string]json.RawMessage, allowed map[string]FieldKind) (map[string]json.RawMessage, []string, error) {
	kept := make(map[string]json.RawMessage, len(raw))
	var dropped []string
	for key, val := range raw {
		kind, ok := allowed[key]
		if !ok {
			dropped = append(dropped, key)
			continue
		}
		if kind == TextField {
			var v any
			if err := json.Unmarshal(val, &v); err != nil {
				return nil, nil, fmt.Errorf("field %s: %w", key, err)
			}
			if v != nil {
				if _, err := SanitizeValue(v, 0); err != nil {
					return nil, nil, fmt.Errorf("field %s: %w", key, err)
				}
			}
		}
		kept[key] = val
	}
	sort.Strings(dropped)
	return kept, dropped, nil
}
