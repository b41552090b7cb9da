package filter

import "testing"

func TestDuckDBEncodeComparisons(t *testing.T) {
	tests := []struct {
		name     string
		spec     Spec
		expected string
	}{
		{"equal", NewSpec("id", 42), "id = '42'"},
		{"equal list", NewSpec("id", []int{1, 2}), "id IN ('1', '2')"},
		{"not equal", NewSpec("status", "done", OpNotEqual), "status <> 'done'"},
		{"not equal list", NewSpec("status", []string{"a", "b"}, OpNotEqual), "status NOT IN ('a', 'b')"},
		{"like", NewSpec("name", "Em", OpLike), "name LIKE 'Em%'"},
		{"like list", NewSpec("name", []string{"A", "B"}, OpLike), "(name LIKE 'A%' OR name LIKE 'B%')"},
		{"less than", NewSpec("age", 30, OpLessThan), "age < '30'"},
		{"less or equal", NewSpec("age", 30, OpLessOrEqual), "age <= '30'"},
		{"greater than", NewSpec("age", 30, OpGreaterThan), "age > '30'"},
		{"greater or equal", NewSpec("age", 30, OpGreaterOrEqual), "age >= '30'"},
		{"ordering list unsupported", NewSpec("age", []int{1, 2}, OpGreaterThan), ""},
		{"nested path", NewSpec("user.contact.email", "x"), `"user".contact.email = 'x'`},
		{"quoted segment", NewSpec("order.created-at", "x"), `"order"."created-at" = 'x'`},
		{"escaped literal", NewSpec("name", "O'Brien"), "name = 'O''Brien'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNested([]Spec{tt.spec}, nil)
			if got := NewDuckDBEncoder(nil).EncodeFilter(n); got != tt.expected {
				t.Errorf("expected '%s', got '%s'", tt.expected, got)
			}
		})
	}
}

func TestDuckDBEncodeConjunctions(t *testing.T) {
	users := NewNested([]Spec{
		NewSpec("age", 18, OpGreaterOrEqual),
		NewSpec("name", "Em", OpLike),
	}, nil)

	enc := NewDuckDBEncoder(nil)

	expected := "(age >= '18' AND name LIKE 'Em%')"
	if got := enc.EncodeFilter(users); got != expected {
		t.Errorf("expected '%s', got '%s'", expected, got)
	}

	either := NewNested([]Spec{NewSpec("id", 1)}, &NestedOptions{Combinator: Or, Prior: users.Expression()})
	expected = "(id = '1' OR (age >= '18' AND name LIKE 'Em%'))"
	if got := enc.EncodeFilter(either); got != expected {
		t.Errorf("expected '%s', got '%s'", expected, got)
	}
}

func TestDuckDBEncodeRawPrior(t *testing.T) {
	raw := Raw(`{"user": {"EQ": {"id": "2"}}}`)
	enc := NewDuckDBEncoder(nil)

	n := NewNested([]Spec{NewSpec("a", 1)}, &NestedOptions{Prior: raw})
	expected := `(a = '1' AND "user".id = '2')`
	if got := enc.EncodeFilter(n); got != expected {
		t.Errorf("expected '%s', got '%s'", expected, got)
	}
}

func TestDuckDBEncodeUnsupported(t *testing.T) {
	raw := Raw(`not a filter`)
	enc := NewDuckDBEncoder(nil)

	// AND keeps supported children
	and := NewNested([]Spec{NewSpec("a", 1)}, &NestedOptions{Prior: raw})
	if got := enc.EncodeFilter(and); got != "a = '1'" {
		t.Errorf("expected 'a = '1'', got '%s'", got)
	}

	// OR is dropped entirely
	or := NewNested([]Spec{NewSpec("a", 1)}, &NestedOptions{Combinator: Or, Prior: raw})
	if got := enc.EncodeFilter(or); got != "" {
		t.Errorf("expected empty string, got '%s'", got)
	}

	lists := NewNested([]Spec{
		NewSpec("a", 1),
		NewSpec("b", []int{1, 2}, OpLessThan),
	}, &NestedOptions{Combinator: Or})
	if got := enc.EncodeFilter(lists); got != "" {
		t.Errorf("expected empty string, got '%s'", got)
	}

	if got := enc.EncodeFilter(NewNested(nil, nil)); got != "" {
		t.Errorf("expected empty string, got '%s'", got)
	}
	if got := enc.EncodeFilter(nil); got != "" {
		t.Errorf("expected empty string, got '%s'", got)
	}
}

func TestDuckDBColumnMapping(t *testing.T) {
	enc := NewDuckDBEncoder(&EncoderOptions{
		ColumnMapping: map[string]string{
			"user.full_name": "full_name",
		},
		ColumnExpressions: map[string]string{
			"user.full_name": "CONCAT(first_name, ' ', last_name)",
		},
	})

	n := NewNested([]Spec{
		NewSpec("user.full_name", "Emil", OpLike),
		NewSpec("user.name", "x"),
	}, nil)

	expected := `(CONCAT(first_name, ' ', last_name) LIKE 'Emil%' AND "user".name = 'x')`
	if got := enc.EncodeFilter(n); got != expected {
		t.Errorf("expected '%s', got '%s'", expected, got)
	}

	mapped := NewDuckDBEncoder(&EncoderOptions{ColumnMapping: map[string]string{"user.id": "uid"}})
	if got := mapped.EncodeFilter(NewNested([]Spec{NewSpec("user.id", 7)}, nil)); got != "uid = '7'" {
		t.Errorf("expected 'uid = '7'', got '%s'", got)
	}
}
