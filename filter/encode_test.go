package filter

import (
	"encoding/json"
	"testing"
)

func TestTextEncoderNil(t *testing.T) {
	if got := NewTextEncoder().Encode(nil); got != "" {
		t.Errorf("expected empty string, got '%s'", got)
	}
}

func TestTextEncoderGrammar(t *testing.T) {
	tests := []struct {
		name     string
		expr     Expression
		expected string
	}{
		{
			name:     "leaf scalar",
			expr:     &ComparisonExpression{Operator: OpEqual, Field: "id", Value: Value{Items: []string{"1"}}},
			expected: `{"EQ": {"id": "1"}}`,
		},
		{
			name:     "leaf single element list",
			expr:     &ComparisonExpression{Operator: OpEqual, Field: "id", Value: Value{Items: []string{"1"}, List: true}},
			expected: `{"EQ": {"id": ["1"]}}`,
		},
		{
			name: "path",
			expr: &PathExpression{Segment: "user", Child: &ComparisonExpression{
				Operator: OpLessThan, Field: "age", Value: Value{Items: []string{"30"}},
			}},
			expected: `{"user": {"LT": {"age": "30"}}}`,
		},
		{
			name: "group with raw",
			expr: &ConjunctionExpression{Combinator: Or, Children: []Expression{
				&ComparisonExpression{Operator: OpNotEqual, Field: "a", Value: Value{Items: []string{"x", "y"}, List: true}},
				Raw(`{"EQ": {"b": "2"}}`),
			}},
			expected: `{"OR": [{"NEQ": {"a": ["x", "y"]}}, {"EQ": {"b": "2"}}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewTextEncoder().Encode(tt.expr); got != tt.expected {
				t.Errorf("expected '%s', got '%s'", tt.expected, got)
			}
		})
	}
}

func TestTextEncoderEscaping(t *testing.T) {
	value := "say \"hi\"\\ <b>&\n\x01 ünï"
	expr := &ComparisonExpression{Operator: OpEqual, Field: "note", Value: Value{Items: []string{value}}}

	text := NewTextEncoder().Encode(expr)
	expected := `{"EQ": {"note": "say \"hi\"\\ <b>&\n\u0001 ünï"}}`
	if text != expected {
		t.Errorf("expected '%s', got '%s'", expected, text)
	}

	var decoded map[string]map[string]string
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["EQ"]["note"] != value {
		t.Errorf("expected '%s', got '%s'", value, decoded["EQ"]["note"])
	}
}

func TestNestedOutputIsJSON(t *testing.T) {
	n := NewNested(userSpecs(), &NestedOptions{Combinator: Or})

	var v map[string][]any
	if err := json.Unmarshal([]byte(n.String()), &v); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(v["OR"]) != 3 {
		t.Errorf("expected 3 branches, got %d", len(v["OR"]))
	}
}
