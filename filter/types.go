package filter

import (
	"errors"
	"fmt"
	"strings"
)

// Operator is a comparison operator of the crnk filter vocabulary.
type Operator string

const (
	OpEqual          Operator = "EQ"
	OpNotEqual       Operator = "NEQ"
	OpLike           Operator = "LIKE"
	OpLessThan       Operator = "LT"
	OpLessOrEqual    Operator = "LE"
	OpGreaterThan    Operator = "GT"
	OpGreaterOrEqual Operator = "GE"
)

// Combinator is a boolean grouping operator.
type Combinator string

const (
	And Combinator = "AND"
	Or  Combinator = "OR"
)

var (
	// ErrUnknownOperator indicates a string that is not a comparison operator.
	ErrUnknownOperator = errors.New("unknown filter operator")

	// ErrUnknownCombinator indicates a string that is neither AND nor OR.
	ErrUnknownCombinator = errors.New("unknown filter combinator")
)

// Operators lists the whole operator vocabulary.
var Operators = []Operator{
	OpEqual, OpNotEqual, OpLike,
	OpLessThan, OpLessOrEqual, OpGreaterThan, OpGreaterOrEqual,
}

// Valid reports whether o belongs to the operator vocabulary.
func (o Operator) Valid() bool {
	switch o {
	case OpEqual, OpNotEqual, OpLike,
		OpLessThan, OpLessOrEqual, OpGreaterThan, OpGreaterOrEqual:
		return true
	}
	return false
}

// ParseOperator converts s to an Operator, ignoring case and surrounding
// spaces. An empty string yields OpEqual.
func ParseOperator(s string) (Operator, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return OpEqual, nil
	}
	if op := Operator(s); op.Valid() {
		return op, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOperator, s)
}

// Valid reports whether c is AND or OR.
func (c Combinator) Valid() bool {
	return c == And || c == Or
}

// ParseCombinator converts s to a Combinator, ignoring case and
// surrounding spaces. An empty string yields And.
func ParseCombinator(s string) (Combinator, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return And, nil
	}
	if c := Combinator(s); c.Valid() {
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCombinator, s)
}

// ExpressionKind identifies the node type of an expression tree.
type ExpressionKind string

const (
	KindComparison  ExpressionKind = "COMPARISON"
	KindPath        ExpressionKind = "PATH"
	KindConjunction ExpressionKind = "CONJUNCTION"
	KindRaw         ExpressionKind = "RAW"
)

// Expression is the interface implemented by all nodes of a nested filter.
// Use type switches to access specific node data.
type Expression interface {
	// Kind returns the node type.
	Kind() ExpressionKind

	// expressionMarker prevents implementations outside this package.
	expressionMarker()
}

// ComparisonExpression is the innermost node: {operator: {field: value}}.
type ComparisonExpression struct {
	Operator Operator
	Field    string
	Value    Value
}

// PathExpression is one nesting key wrapping the rest of a field path.
type PathExpression struct {
	Segment string
	Child   Expression
}

// ConjunctionExpression groups children under AND or OR.
type ConjunctionExpression struct {
	Combinator Combinator
	Children   []Expression
}

// RawExpression is an already serialized fragment spliced in verbatim
// by TextEncoder. DuckDBEncoder reads it through Parse.
type RawExpression struct {
	Text string
}

// Raw wraps the text of a previously built filter so it can be used as a
// prior fragment. Blank text yields nil, meaning "no prior fragment".
func Raw(text string) Expression {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return &RawExpression{Text: text}
}

func (*ComparisonExpression) Kind() ExpressionKind  { return KindComparison }
func (*PathExpression) Kind() ExpressionKind        { return KindPath }
func (*ConjunctionExpression) Kind() ExpressionKind { return KindConjunction }
func (*RawExpression) Kind() ExpressionKind         { return KindRaw }

func (*ComparisonExpression) expressionMarker()  {}
func (*PathExpression) expressionMarker()        {}
func (*ConjunctionExpression) expressionMarker() {}
func (*RawExpression) expressionMarker()         {}
