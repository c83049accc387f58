package wizard

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

// Operation is one RFC 6902 operation addressed at a form field.
type Operation struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value"`
}

// Replace builds the operation that overwrites a top-level field.
func Replace(field string, value any) Operation {
	return Operation{Op: "replace", Path: fieldPointer(field), Value: value}
}

func fieldPointer(field string) string {
	field = strings.ReplaceAll(field, "~", "~0")
	field = strings.ReplaceAll(field, "/", "~1")
	return "/" + field
}

func fieldFromPointer(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		path = path[:i]
	}
	path = strings.ReplaceAll(path, "~1", "/")
	return strings.ReplaceAll(path, "~0", "~")
}

// fieldsOf returns the JSON document of form keyed by top-level field.
func fieldsOf[T any](form T) (map[string]json.RawMessage, []byte, error) {
	doc, err := json.Marshal(form)
	if err != nil {
		return nil, nil, fmt.Errorf("wizard: marshal form: %w", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(doc, &fields); err != nil {
		return nil, nil, fmt.Errorf("wizard: form must encode as a JSON object: %w", err)
	}
	return fields, doc, nil
}

// applyPatch applies ops to form and decodes the result back into T. The
// original value is untouched when any operation fails.
func applyPatch[T any](form T, ops []Operation) (T, error) {
	var zero T
	if len(ops) == 0 {
		return form, nil
	}

	fields, doc, err := fieldsOf(form)
	if err != nil {
		return zero, err
	}
	for _, op := range ops {
		name := fieldFromPointer(op.Path)
		if _, ok := fields[name]; !ok {
			return zero, fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
	}

	patchJSON, err := json.Marshal(ops)
	if err != nil {
		return zero, fmt.Errorf("wizard: marshal patch: %w", err)
	}
	patch, err := jsonpatch.DecodePatch(patchJSON)
	if err != nil {
		return zero, fmt.Errorf("wizard: decode patch: %w", err)
	}
	modified, err := patch.Apply(doc)
	if err != nil {
		return zero, fmt.Errorf("wizard: apply patch: %w", err)
	}

	var result T
	if err := json.Unmarshal(modified, &result); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return result, nil
}

// toggled returns the set field with value added when absent or removed when
// present. Order of the remaining values is preserved.
func toggled[T any](form T, field, value string) ([]string, error) {
	fields, _, err := fieldsOf(form)
	if err != nil {
		return nil, err
	}
	raw, ok := fields[field]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	var current []string
	if err := json.Unmarshal(raw, &current); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrNotMultiValue, field)
	}

	out := make([]string, 0, len(current)+1)
	removed := false
	for _, v := range current {
		if v == value {
			removed = true
			continue
		}
		out = append(out, v)
	}
	if !removed {
		out = append(out, value)
	}
	return out, nil
}

func clone[T any](form T) T {
	doc, err := json.Marshal(form)
	if err != nil {
		return form
	}
	var out T
	if err := json.Unmarshal(doc, &out); err != nil {
		return form
	}
	return out
}
