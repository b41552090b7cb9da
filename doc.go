// Package crnk builds query parameters for crnk (JSON:API) endpoints.
//
// The crnk package assembles the three parameters a crnk client usually
// sends:
//   - filter: a nested or basic filter compiled by the filter package
//   - include: related resources to embed in the response
//   - sort: field paths with an optional descending marker
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//
//	    "github.com/hugr-lab/crnk-filtering"
//	    "github.com/hugr-lab/crnk-filtering/filter"
//	)
//
//	func main() {
//	    nf := filter.NewNested([]filter.Spec{
//	        filter.NewSpec("user.number", "30000", filter.OpGreaterOrEqual),
//	        filter.NewSpec("user.name", "Emil", filter.OpLike),
//	    }, nil)
//
//	    q := crnk.NewQuery(nf, nil).
//	        Include("user").
//	        SortBy(crnk.SortSpec{Path: "user.name", Direction: crnk.Desc})
//
//	    fmt.Println(q.String())
//	}
//
// # Composing Filters
//
// Filters built in different places can be combined by passing one as
// the prior fragment of another (see filter.NestedOptions). Builds that
// end up without conditions are transparent.
//
// # Parameter Container
//
// Query parameters are held in params.Params, an immutable ordered
// container. Apply methods return a new container and never modify the
// one passed in, so a base set of parameters can be reused.
//
// # Logging
//
// Builders log at debug level through log/slog. Pass a Config with a
// Logger or LogLevel to control the output.
package crnk
