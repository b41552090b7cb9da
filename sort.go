package crnk

import (
	"fmt"
	"strings"
)

// SortParamName is the query parameter holding the sort order.
const SortParamName = "sort"

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// ParseDirection converts s to a Direction, ignoring case.
// An empty string yields Asc.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "ASC":
		return Asc, nil
	case "DESC":
		return Desc, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// SortSpec orders results by a dot-separated field path.
type SortSpec struct {
	Path      string
	Direction Direction
}

// SortParam builds the value of the sort parameter: paths joined by
// commas, descending ones prefixed with "-". Blank paths are skipped.
//
// Example:
//
//	crnk.SortParam(crnk.SortSpec{Path: "name"}, crnk.SortSpec{Path: "age", Direction: crnk.Desc})
//	// "name,-age"
func SortParam(specs ...SortSpec) string {
	parts := make([]string, 0, len(specs))
	for _, s := range specs {
		path := strings.TrimSpace(s.Path)
		if path == "" {
			continue
		}
		if s.Direction == Desc {
			path = "-" + path
		}
		parts = append(parts, path)
	}
	return strings.Join(parts, ",")
}
