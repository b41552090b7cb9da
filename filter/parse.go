package filter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidFilter indicates text that is not a nested filter.
var ErrInvalidFilter = errors.New("invalid nested filter")

// Parse parses the text of a nested filter back into an expression tree.
// It accepts the output of TextEncoder and any equivalent JSON.
//
// Every object must hold exactly one key, read as:
//   - "AND" or "OR" with an array value: a conjunction
//   - an operator with a {field: value} object: a comparison
//   - anything else: a path segment wrapping the inner object
//
// Comparison values may be strings, numbers, booleans, or arrays of them.
// Blank text yields a nil expression.
func Parse(data []byte) (Expression, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	expr, err := parseNode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
	}
	return expr, nil
}

// singleKey decodes a one-key object. Duplicate or additional keys are
// rejected.
func singleKey(data json.RawMessage) (string, json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return "", nil, fmt.Errorf("expected object: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return "", nil, fmt.Errorf("expected object, got %v", tok)
	}

	var (
		key   string
		value json.RawMessage
		n     int
	)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return "", nil, fmt.Errorf("invalid object: %w", err)
		}
		k, ok := tok.(string)
		if !ok {
			return "", nil, fmt.Errorf("invalid object key %v", tok)
		}

		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			return "", nil, fmt.Errorf("%s: %w", k, err)
		}

		n++
		if n > 1 {
			return "", nil, fmt.Errorf("expected exactly one key, got %q and %q", key, k)
		}
		key, value = k, v
	}

	if _, err := dec.Token(); err != nil {
		return "", nil, fmt.Errorf("invalid object: %w", err)
	}
	if n == 0 {
		return "", nil, fmt.Errorf("expected exactly one key, got none")
	}
	if dec.More() {
		return "", nil, fmt.Errorf("unexpected data after object")
	}
	return key, value, nil
}

func parseNode(data json.RawMessage) (Expression, error) {
	key, inner, err := singleKey(data)
	if err != nil {
		return nil, err
	}

	if c := Combinator(key); c.Valid() && isArray(inner) {
		return parseConjunction(c, inner)
	}

	if op := Operator(key); op.Valid() {
		if cmp, ok := parseComparison(op, inner); ok {
			return cmp, nil
		}
	}

	if key == "" {
		return nil, fmt.Errorf("empty path segment")
	}

	child, err := parseNode(inner)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return &PathExpression{Segment: key, Child: child}, nil
}

func parseConjunction(c Combinator, data json.RawMessage) (*ConjunctionExpression, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid %s children: %w", c, err)
	}

	children := make([]Expression, 0, len(raw))
	for i, child := range raw {
		expr, err := parseNode(child)
		if err != nil {
			return nil, fmt.Errorf("%s child %d: %w", c, i, err)
		}
		children = append(children, expr)
	}

	return &ConjunctionExpression{Combinator: c, Children: children}, nil
}

// parseComparison reports false when data is not a {field: value} object,
// letting the caller treat the key as a path segment.
func parseComparison(op Operator, data json.RawMessage) (*ComparisonExpression, bool) {
	field, raw, err := singleKey(data)
	if err != nil || field == "" {
		return nil, false
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}

	var value Value
	switch val := v.(type) {
	case []any:
		value.List = true
		value.Items = make([]string, 0, len(val))
		for _, item := range val {
			s, ok := parseScalar(item)
			if !ok {
				return nil, false
			}
			value.Items = append(value.Items, s)
		}
	default:
		s, ok := parseScalar(val)
		if !ok {
			return nil, false
		}
		value.Items = []string{s}
	}

	return &ComparisonExpression{Operator: op, Field: field, Value: value}, true
}

func parseScalar(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case json.Number:
		return val.String(), true
	case bool:
		return strconv.FormatBool(val), true
	}
	return "", false
}

func isArray(data json.RawMessage) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] == '['
}
