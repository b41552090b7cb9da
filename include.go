package crnk

import "strings"

// IncludeParamName is the query parameter listing related resources.
const IncludeParamName = "include"

// IncludeParam builds the value of the include parameter from resource
// names. Names are trimmed and blank ones skipped.
func IncludeParam(resources ...string) string {
	parts := make([]string, 0, len(resources))
	for _, r := range resources {
		if r = strings.TrimSpace(r); r != "" {
			parts = append(parts, r)
		}
	}
	return strings.Join(parts, ",")
}
