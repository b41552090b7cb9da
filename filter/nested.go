package filter

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/hugr-lab/crnk-filtering/params"
)

// ParamName is the query parameter holding a nested filter.
const ParamName = "filter"

// NestedOptions configures a nested filter build.
type NestedOptions struct {
	// Combinator groups the conditions of this build.
	// OPTIONAL: And if empty.
	Combinator Combinator

	// Prior is a previously built filter, appended as the last branch.
	// Pass another builder's Expression() or Raw(other.String()).
	// OPTIONAL: nil means no prior fragment.
	Prior Expression

	// Logger receives debug records about dropped specs.
	// OPTIONAL: Uses slog.Default() if nil.
	Logger *slog.Logger
}

// Nested is a compiled nested filter. It is built once by NewNested and
// is immutable afterwards, so it is safe for concurrent use.
type Nested struct {
	combinator Combinator
	specs      []Spec
	expr       Expression
	text       string
}

// NewNested compiles specs into a nested filter.
//
// Specs whose normalized value is empty are dropped. Each remaining spec
// becomes an independent branch; branches are never merged even when
// they share a path prefix. The result is:
//   - the prior fragment unchanged, when no spec survives
//   - the single branch unwrapped, when one spec survives and there is no prior
//   - {combinator: [branches..., prior]} otherwise
//
// An empty combinator means And. Any combinator other than And or Or is a
// programming error and panics.
//
// Example:
//
//	users := filter.NewNested([]filter.Spec{
//	    filter.NewSpec("user.number", "30000", filter.OpGreaterOrEqual),
//	    filter.NewSpec("user.name", "Emil", filter.OpLike),
//	}, nil)
//
//	clients := filter.NewNested(clientSpecs, &filter.NestedOptions{
//	    Combinator: filter.Or,
//	    Prior:      users.Expression(),
//	})
//	p := clients.Params()
func NewNested(specs []Spec, opts *NestedOptions) *Nested {
	if opts == nil {
		opts = &NestedOptions{}
	}

	combinator := opts.Combinator
	if combinator == "" {
		combinator = And
	}
	if !combinator.Valid() {
		panic(fmt.Sprintf("filter: unknown combinator %q", combinator))
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	n := &Nested{combinator: combinator}

	nodes := make([]Expression, 0, len(specs))
	for _, spec := range specs {
		value := spec.Normalize()
		if value.IsEmpty() {
			logger.Debug("Filter spec dropped",
				"path", spec.Path(),
				"operator", spec.Operator(),
			)
			continue
		}
		n.specs = append(n.specs, spec)
		nodes = append(nodes, BuildNode(spec, value))
	}

	n.expr = Compose(nodes, combinator, opts.Prior)
	n.text = NewTextEncoder().Encode(n.expr)
	if n.text == "" {
		n.expr = nil
	}

	return n
}

// BuildNode builds the branch of a single spec from its normalized value:
// one PathExpression per nesting segment around a ComparisonExpression.
func BuildNode(spec Spec, value Value) Expression {
	segments := spec.segments

	var node Expression = &ComparisonExpression{
		Operator: spec.operator,
		Field:    segments[len(segments)-1],
		Value:    value,
	}
	for i := len(segments) - 2; i >= 0; i-- {
		node = &PathExpression{Segment: segments[i], Child: node}
	}
	return node
}

// Compose combines branches and an optional prior fragment.
// A nil result means there is nothing to filter on.
// A raw prior with blank text counts as no prior.
func Compose(nodes []Expression, combinator Combinator, prior Expression) Expression {
	if raw, ok := prior.(*RawExpression); ok && (raw == nil || strings.TrimSpace(raw.Text) == "") {
		prior = nil
	}

	switch {
	case len(nodes) == 0:
		return prior
	case len(nodes) == 1 && prior == nil:
		return nodes[0]
	}

	children := make([]Expression, 0, len(nodes)+1)
	children = append(children, nodes...)
	if prior != nil {
		children = append(children, prior)
	}
	return &ConjunctionExpression{Combinator: combinator, Children: children}
}

// Expression returns the compiled tree, or nil if the filter is empty.
func (n *Nested) Expression() Expression { return n.expr }

// String returns the filter text without the "filter=" prefix,
// or "" if the filter is empty.
func (n *Nested) String() string { return n.text }

// IsEmpty reports whether the build produced nothing to filter on.
func (n *Nested) IsEmpty() bool { return n.expr == nil }

// Specs returns the specs that survived normalization, in input order.
func (n *Nested) Specs() []Spec { return append([]Spec(nil), n.specs...) }

// Combinator returns the combinator used for grouping.
func (n *Nested) Combinator() Combinator { return n.combinator }

// Apply sets the filter parameter on p if the filter is not empty.
func (n *Nested) Apply(p params.Params) params.Params {
	if n.IsEmpty() {
		return p
	}
	return p.Set(ParamName, n.text)
}

// Params returns a new parameter container holding only this filter.
func (n *Nested) Params() params.Params {
	return n.Apply(params.New())
}
