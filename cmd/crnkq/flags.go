package main

import (
	"fmt"
	"strings"

	"github.com/hugr-lab/crnk-filtering"
	"github.com/hugr-lab/crnk-filtering/filter"
	"github.com/hugr-lab/crnk-filtering/internal/document"
)

// parseWhere parses "path:OP:value" or "path:value" (EQ).
// A value containing commas becomes a list.
func parseWhere(s string) (document.SpecDef, error) {
	path, rest, ok := strings.Cut(s, ":")
	if !ok || strings.TrimSpace(path) == "" {
		return document.SpecDef{}, fmt.Errorf("invalid --where %q: expected path:OP:value", s)
	}

	def := document.SpecDef{Path: strings.TrimSpace(path)}
	value := rest
	if op, v, ok := strings.Cut(rest, ":"); ok {
		if _, err := filter.ParseOperator(op); err == nil && strings.TrimSpace(op) != "" {
			def.Operator = strings.ToUpper(strings.TrimSpace(op))
			value = v
		}
	}

	if strings.Contains(value, ",") {
		parts := strings.Split(value, ",")
		list := make([]any, len(parts))
		for i, p := range parts {
			list[i] = p
		}
		def.Value = list
	} else {
		def.Value = value
	}
	return def, nil
}

// parseSort parses "path", "-path" or "path:DIR".
func parseSort(s string) (document.SortDef, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "-") {
		return document.SortDef{Path: s[1:], Direction: string(crnk.Desc)}, nil
	}

	path, dir, _ := strings.Cut(s, ":")
	d, err := crnk.ParseDirection(dir)
	if err != nil {
		return document.SortDef{}, fmt.Errorf("invalid --sort %q: %w", s, err)
	}
	return document.SortDef{Path: path, Direction: string(d)}, nil
}
