package filter

import (
	"strings"
)

// DuckDBEncoder encodes nested filters to DuckDB SQL syntax.
// It produces the body of a WHERE clause and never runs it.
type DuckDBEncoder struct {
	opts *EncoderOptions
}

// NewDuckDBEncoder creates a new DuckDB SQL encoder.
// If opts is nil, default options are used.
func NewDuckDBEncoder(opts *EncoderOptions) *DuckDBEncoder {
	if opts == nil {
		opts = &EncoderOptions{}
	}
	return &DuckDBEncoder{opts: opts}
}

// EncodeFilter converts a compiled nested filter to a WHERE clause body.
// Returns empty string if the filter is empty or cannot be encoded.
func (e *DuckDBEncoder) EncodeFilter(n *Nested) string {
	if n == nil {
		return ""
	}
	return e.Encode(n.Expression())
}

// Encode converts an expression tree to SQL.
// Returns empty string if expression is unsupported.
func (e *DuckDBEncoder) Encode(expr Expression) string {
	return e.encode(expr, nil)
}

func (e *DuckDBEncoder) encode(expr Expression, path []string) string {
	if expr == nil {
		return ""
	}

	switch ex := expr.(type) {
	case *ComparisonExpression:
		return e.encodeComparison(ex, path)
	case *PathExpression:
		return e.encode(ex.Child, append(path[:len(path):len(path)], ex.Segment))
	case *ConjunctionExpression:
		return e.encodeConjunction(ex, path)
	case *RawExpression:
		tree, err := Parse([]byte(ex.Text))
		if err != nil {
			return ""
		}
		return e.encode(tree, path)
	default:
		return ""
	}
}

// encodeComparison encodes a leaf condition.
func (e *DuckDBEncoder) encodeComparison(c *ComparisonExpression, path []string) string {
	if c.Value.IsEmpty() {
		return ""
	}

	column := e.encodeColumn(append(path[:len(path):len(path)], c.Field))

	values := make([]string, len(c.Value.Items))
	for i, item := range c.Value.Items {
		values[i] = quoteLiteral(item)
	}

	switch c.Operator {
	case OpEqual, "":
		if c.Value.List {
			return column + " IN (" + strings.Join(values, ", ") + ")"
		}
		return column + " = " + values[0]
	case OpNotEqual:
		if c.Value.List {
			return column + " NOT IN (" + strings.Join(values, ", ") + ")"
		}
		return column + " <> " + values[0]
	case OpLike:
		if len(values) == 1 {
			return column + " LIKE " + values[0]
		}
		parts := make([]string, len(values))
		for i, v := range values {
			parts[i] = column + " LIKE " + v
		}
		return "(" + strings.Join(parts, " OR ") + ")"
	case OpLessThan:
		return e.encodeOrdering(column, " < ", c.Value, values)
	case OpLessOrEqual:
		return e.encodeOrdering(column, " <= ", c.Value, values)
	case OpGreaterThan:
		return e.encodeOrdering(column, " > ", c.Value, values)
	case OpGreaterOrEqual:
		return e.encodeOrdering(column, " >= ", c.Value, values)
	default:
		return ""
	}
}

// encodeOrdering encodes <, <=, >, >=. Lists have no single bound and are
// unsupported.
func (e *DuckDBEncoder) encodeOrdering(column, op string, v Value, values []string) string {
	if v.List {
		return ""
	}
	return column + op + values[0]
}

// encodeConjunction encodes AND/OR groups.
func (e *DuckDBEncoder) encodeConjunction(c *ConjunctionExpression, path []string) string {
	var parts []string
	for _, child := range c.Children {
		encoded := e.encode(child, path)
		if encoded != "" {
			parts = append(parts, encoded)
		}
	}

	// Handle unsupported expression rules:
	// - For OR: if any child is unsupported, skip entire OR
	// - For AND: skip unsupported children, keep others
	if c.Combinator == Or && len(parts) != len(c.Children) {
		return ""
	}

	if len(parts) == 0 {
		return ""
	}

	if len(parts) == 1 {
		return parts[0]
	}

	op := " AND "
	if c.Combinator == Or {
		op = " OR "
	}

	return "(" + strings.Join(parts, op) + ")"
}

// encodeColumn resolves a field path to a column reference.
func (e *DuckDBEncoder) encodeColumn(segments []string) string {
	dotted := strings.Join(segments, ".")

	// Check for expression mapping first (takes precedence)
	if e.opts.ColumnExpressions != nil {
		if expr, ok := e.opts.ColumnExpressions[dotted]; ok {
			return expr
		}
	}

	if e.opts.ColumnMapping != nil {
		if mapped, ok := e.opts.ColumnMapping[dotted]; ok {
			return quoteIdentifier(mapped)
		}
	}

	quoted := make([]string, len(segments))
	for i, s := range segments {
		quoted[i] = quoteIdentifier(s)
	}
	return strings.Join(quoted, ".")
}
