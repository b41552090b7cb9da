package filter

import (
	"log/slog"
	"strings"

	"github.com/hugr-lab/crnk-filtering/params"
)

// BasicOptions configures a basic filter build.
type BasicOptions struct {
	// Logger receives debug records about dropped specs.
	// OPTIONAL: Uses slog.Default() if nil.
	Logger *slog.Logger
}

// Basic is the flat crnk filter variant: one query key per spec,
//
//	filter[user.name][LIKE]=Emil%
//
// with list values joined by commas. It is immutable after NewBasic.
type Basic struct {
	specs  []Spec
	values []Value
}

// NewBasic keeps the specs whose normalized value is not empty.
func NewBasic(specs []Spec, opts *BasicOptions) *Basic {
	if opts == nil {
		opts = &BasicOptions{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	b := &Basic{}
	for _, spec := range specs {
		value := spec.Normalize()
		if value.IsEmpty() {
			logger.Debug("Filter spec dropped",
				"path", spec.Path(),
				"operator", spec.Operator(),
			)
			continue
		}
		b.specs = append(b.specs, spec)
		b.values = append(b.values, value)
	}
	return b
}

// Key returns the query key of spec in the flat encoding.
func Key(spec Spec) string {
	return ParamName + "[" + spec.Path() + "][" + string(spec.Operator()) + "]"
}

// IsEmpty reports whether no spec survived normalization.
func (b *Basic) IsEmpty() bool { return len(b.specs) == 0 }

// Specs returns the surviving specs in input order.
func (b *Basic) Specs() []Spec { return append([]Spec(nil), b.specs...) }

// Apply sets one filter key per surviving spec on p.
func (b *Basic) Apply(p params.Params) params.Params {
	for i, spec := range b.specs {
		p = p.Set(Key(spec), strings.Join(b.values[i].Items, ","))
	}
	return p
}

// Params returns a new parameter container holding only this filter.
func (b *Basic) Params() params.Params {
	return b.Apply(params.New())
}
