package crnk

import (
	"log/slog"

	"github.com/hugr-lab/crnk-filtering/filter"
	"github.com/hugr-lab/crnk-filtering/params"
)

// Filter is a compiled filter that can attach itself to query parameters.
// Both *filter.Nested and *filter.Basic implement it.
type Filter interface {
	// IsEmpty reports whether the filter has nothing to contribute.
	IsEmpty() bool

	// Apply returns p with the filter entries added.
	Apply(p params.Params) params.Params
}

var (
	_ Filter = (*filter.Nested)(nil)
	_ Filter = (*filter.Basic)(nil)
)

// Query combines a filter with resource inclusion and sort order.
// Not thread-safe while being configured; Params may be called
// concurrently once configuration is done.
type Query struct {
	filter  Filter
	include string
	sort    string
	logger  *slog.Logger
}

// NewQuery creates a query around f. f may be nil.
//
// Example:
//
//	q := crnk.NewQuery(filter.NewNested(specs, nil), nil).
//	    Include("user", "client").
//	    SortBy(crnk.SortSpec{Path: "name", Direction: crnk.Desc})
//	req.URL.RawQuery = q.String()
func NewQuery(f Filter, cfg *Config) *Query {
	return &Query{
		filter: f,
		logger: NewLogger(cfg),
	}
}

// Include sets the related resources to include.
// Calling it again replaces the previous list.
func (q *Query) Include(resources ...string) *Query {
	q.include = IncludeParam(resources...)
	return q
}

// SortBy sets the sort order.
// Calling it again replaces the previous order.
func (q *Query) SortBy(specs ...SortSpec) *Query {
	q.sort = SortParam(specs...)
	return q
}

// Filter returns the filter of the query.
func (q *Query) Filter() Filter {
	return q.filter
}

// HasFilter reports whether the query carries a non-empty filter.
func (q *Query) HasFilter() bool {
	return q.filter != nil && !q.filter.IsEmpty()
}

// Apply returns p with include, filter and sort entries set, in that
// order. Empty parts are left out.
func (q *Query) Apply(p params.Params) params.Params {
	if q.include != "" {
		p = p.Set(IncludeParamName, q.include)
	}

	if q.HasFilter() {
		p = q.filter.Apply(p)
	}

	if q.sort != "" {
		p = p.Set(SortParamName, q.sort)
	}

	q.logger.Debug("Query parameters built",
		"keys", p.Keys(),
		"has_filter", q.HasFilter(),
	)

	return p
}

// Params returns a new parameter container for the query.
func (q *Query) Params() params.Params {
	return q.Apply(params.New())
}

// String returns the encoded query string.
func (q *Query) String() string {
	return q.Params().String()
}
