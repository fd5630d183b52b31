package output

import "strings"

// Wildcard in a field list returns records unprojected.
const Wildcard = "*"

// MaxTextLength is the truncation threshold for long free-text fields.
const MaxTextLength = 500

// TruncationMarker is appended to truncated text. The transform is lossy
// and one-way.
const TruncationMarker = "..."

// longTextFields are the free-text fields subject to truncation.
var longTextFields = map[string]bool{
	"description": true,
	"content":     true,
}

// refFields are nested id/name pairs projected to a minimal shape.
var refFields = map[string]bool{
	"status":  true,
	"product": true,
	"parent":  true,
}

// Project reduces a record to the named fields. Missing or falsy source
// fields are omitted rather than set to null. A wildcard in fields
// returns the record unmodified.
//
// Nested references (status, product, parent) are reduced to {id, name};
// owner is reduced to {id, name} with the email standing in for a missing
// display name. Long text fields are truncated at MaxTextLength.
func Project(record map[string]any, fields []string) map[string]any {
	if record == nil {
		return nil
	}
	for _, f := range fields {
		if f == Wildcard {
			return record
		}
	}

	projected := make(map[string]any, len(fields))
	for _, field := range fields {
		value, ok := record[field]
		if !ok || !present(value) {
			continue
		}

		switch {
		case field == "owner":
			if owner := projectOwner(value); owner != nil {
				projected[field] = owner
			}
		case refFields[field]:
			if ref := projectRef(value); ref != nil {
				projected[field] = ref
			}
		case longTextFields[field]:
			if s, ok := value.(string); ok {
				projected[field] = TruncateText(s)
			} else {
				projected[field] = value
			}
		default:
			projected[field] = value
		}
	}
	return projected
}

// ProjectAll projects every record in a list.
func ProjectAll(records []map[string]any, fields []string) []map[string]any {
	projected := make([]map[string]any, 0, len(records))
	for _, record := range records {
		projected = append(projected, Project(record, fields))
	}
	return projected
}

// TruncateText caps free text at MaxTextLength runes plus the marker.
func TruncateText(s string) string {
	runes := []rune(s)
	if len(runes) <= MaxTextLength {
		return s
	}
	return string(runes[:MaxTextLength]) + TruncationMarker
}

// projectRef reduces a nested reference to {id, name}. Parent references
// nest one level deeper (parent.product); the inner reference wins.
func projectRef(value any) map[string]any {
	m, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	// Unwrap parent-style {"product": {...}} wrappers.
	for _, key := range []string{"product", "component", "feature"} {
		if inner, ok := m[key].(map[string]any); ok {
			m = inner
			break
		}
	}

	ref := map[string]any{}
	if id, ok := m["id"].(string); ok && id != "" {
		ref["id"] = id
	}
	if name, ok := m["name"].(string); ok && name != "" {
		ref["name"] = name
	}
	if len(ref) == 0 {
		return nil
	}
	return ref
}

// projectOwner reduces an owner to {id, name}, falling back to the email
// address when no display name is present.
func projectOwner(value any) map[string]any {
	m, ok := value.(map[string]any)
	if !ok {
		return nil
	}

	owner := map[string]any{}
	if id, ok := m["id"].(string); ok && id != "" {
		owner["id"] = id
	}
	name, _ := m["name"].(string)
	if strings.TrimSpace(name) == "" {
		name, _ = m["email"].(string)
	}
	if name != "" {
		owner["name"] = name
	}
	if len(owner) == 0 {
		return nil
	}
	return owner
}

// present reports whether a value should be copied into a projection.
// Nil, empty strings, false booleans, zero numbers, and empty collections
// are all treated as absent.
func present(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	case float64:
		return v != 0
	case int:
		return v != 0
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}
