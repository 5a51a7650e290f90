package yaml

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	syaml "sigs.k8s.io/yaml"
)

const (
	splitToken     = "."
	indexOpenChar  = "["
	indexCloseChar = "]"
)

var (
	ErrMalformedIndex   = errors.New("malformed index key")
	ErrKeyNotFound      = errors.New("unable to find the key")
	ErrIndexOutOfBounds = errors.New("index out of bounds")
	ErrInvalidType      = errors.New("invalid type")
)

// Document is the top-level mapping of a decoded YAML file. Nested mappings
// are map[string]any and sequences are []any.
type Document map[string]any

// Empty returns true if the document has no keys.
func (d Document) Empty() bool {
	return len(d) == 0
}

// ToYAML serializes the document back to YAML.
func (d Document) ToYAML() ([]byte, error) {
	return syaml.Marshal(map[string]any(d))
}

// Lookup returns the value associated with the given key.
// Keys can be nested using the "." character and sequences can be indexed
// with "[<index>]", as in "masks.a" or "items[1].name".
func (d Document) Lookup(key string) (any, error) {
	if key == "" {
		return d, nil
	}

	var cur any = map[string]any(d)
	for _, part := range strings.Split(key, splitToken) {
		name, index, err := parseIndex(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", err, part)
		}

		m, ok := asMap(cur)
		if !ok {
			return nil, fmt.Errorf("%w: cannot lookup %s in %T", ErrKeyNotFound, name, cur)
		}
		next, exists := m[name]
		if !exists {
			return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, name)
		}

		if index >= 0 {
			list, ok := next.([]any)
			if !ok {
				return nil, fmt.Errorf("%w: cannot index into %T", ErrInvalidType, next)
			}
			if index >= len(list) {
				return nil, fmt.Errorf("%w: %s[%d]", ErrIndexOutOfBounds, name, index)
			}
			next = list[index]
		}
		cur = next
	}
	return cur, nil
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case Document:
		return m, true
	case map[string]any:
		return m, true
	default:
		return nil, false
	}
}

// parseIndex splits "name[3]" into ("name", 3). Keys without an index return -1.
func parseIndex(s string) (string, int, error) {
	start := strings.Index(s, indexOpenChar)
	end := strings.Index(s, indexCloseChar)

	if start == -1 && end == -1 {
		return s, -1, nil
	}
	if start == -1 || end == -1 || end < start || end != len(s)-1 {
		return "", -1, ErrMalformedIndex
	}

	index, err := strconv.Atoi(s[start+1 : end])
	if err != nil || index < 0 {
		return "", -1, ErrMalformedIndex
	}
	return s[:start], index, nil
}
