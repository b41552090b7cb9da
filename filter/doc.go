// Package filter compiles filter specifications into crnk query filters.
//
// A Spec is one condition on a dot-separated field path. Nested turns a
// list of specs into the single "filter" parameter of the crnk nested
// filtering convention; Basic produces the flat filter[path][OP] form.
//
// # Basic Usage
//
//	nf := filter.NewNested([]filter.Spec{
//	    filter.NewSpec("user.number", "30000", filter.OpGreaterOrEqual),
//	    filter.NewSpec("user.name", "Emil", filter.OpLike),
//	}, nil)
//
//	nf.String()
//	// {"AND": [{"user": {"GE": {"number": "30000"}}}, {"user": {"LIKE": {"name": "Emil%"}}}]}
//
//	req.URL.RawQuery = nf.Params().String()
//
// # Value Normalization
//
// Every value is converted to a string and trimmed. Nil and blank values,
// including blank elements of a slice, are dropped; a spec left without a
// value contributes nothing. LIKE values get a trailing "%". Slices always
// stay lists, even with a single survivor.
//
// # Composition
//
// A built filter can be passed as the prior fragment of another build.
// It is appended as the last branch without being inspected:
//
//	users := filter.NewNested(userSpecs, nil)
//	all := filter.NewNested(clientSpecs, &filter.NestedOptions{
//	    Combinator: filter.Or,
//	    Prior:      users.Expression(), // or filter.Raw(users.String())
//	})
//
// When no spec of a build survives, the result is the prior fragment
// itself, so empty intermediate builds are transparent.
//
// # SQL Encoding
//
// DuckDBEncoder renders the same tree as a DuckDB WHERE clause body, for
// servers that push crnk filters down to a database. Unsupported parts
// (unparseable raw fragments, lists with ordering operators) follow the usual rules:
//   - For AND: Skips unsupported children, keeps others
//   - For OR: If any child is unsupported, skips entire OR expression
//   - Returns empty string if everything is unsupported
//
// # Invalid Input
//
// Empty paths, empty path segments and unknown operators are programming
// errors; NewSpec panics on them. Use ParseOperator and ParseCombinator to
// validate user input first.
package filter
