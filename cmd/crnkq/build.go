package main

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hugr-lab/crnk-filtering"
	"github.com/hugr-lab/crnk-filtering/filter"
	"github.com/hugr-lab/crnk-filtering/internal/document"
	"github.com/hugr-lab/crnk-filtering/internal/preset"
)

var (
	buildWhere      []string
	buildCombinator string
	buildBasic      bool
	buildInclude    []string
	buildSort       []string
	buildPreset     string
	buildPrior      string
	buildSQL        bool
	buildDecoded    bool
)

var buildCmd = &cobra.Command{
	Use:   "build [FILE]",
	Short: "Build query parameters from a filter document and flags",
	Long: `Build query parameters from a filter document (.toml, .json, .msgpack),
a saved preset, or --where flags, and print the query string.

Examples:
  crnkq build filters.toml
  crnkq build --where user.name:LIKE:Emil --where user.id:1,2,3 --sort -user.name
  crnkq build --where client.id:16512 --combinator OR --prior users
  crnkq build filters.toml --sql`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringArrayVarP(&buildWhere, "where", "w", nil, "filter as path:OP:value (repeatable)")
	buildCmd.Flags().StringVarP(&buildCombinator, "combinator", "c", "", "combinator for nested filters (AND, OR)")
	buildCmd.Flags().BoolVar(&buildBasic, "basic", false, "use the flat filter[path][OP] form")
	buildCmd.Flags().StringSliceVarP(&buildInclude, "include", "i", nil, "related resources to include")
	buildCmd.Flags().StringArrayVarP(&buildSort, "sort", "s", nil, "sort as path, -path or path:DESC (repeatable)")
	buildCmd.Flags().StringVarP(&buildPreset, "preset", "p", "", "start from a saved preset")
	buildCmd.Flags().StringVar(&buildPrior, "prior", "", "saved preset to splice in as prior fragment")
	buildCmd.Flags().BoolVar(&buildSQL, "sql", false, "print a DuckDB WHERE clause body instead (nested filters only)")
	buildCmd.Flags().BoolVarP(&buildDecoded, "decoded", "d", false, "print the query string unescaped")
}

func runBuild(cmd *cobra.Command, args []string) error {
	doc, err := buildDocument(args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if buildSQL {
		where, err := sqlWhere(doc)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, where)
		return nil
	}

	q, err := doc.Query(&crnk.Config{Logger: logger})
	if err != nil {
		return err
	}

	s := q.String()
	if buildDecoded {
		if s, err = url.QueryUnescape(s); err != nil {
			return err
		}
	}
	fmt.Fprintln(out, s)
	return nil
}

// sqlWhere renders the document's nested filter as a DuckDB WHERE body.
// Basic filters have no SQL form.
func sqlWhere(doc *document.Document) (string, error) {
	if strings.EqualFold(strings.TrimSpace(doc.Mode), document.ModeBasic) {
		return "", fmt.Errorf("--sql requires a nested filter, got mode %q", doc.Mode)
	}

	nf, err := doc.Nested(logger)
	if err != nil {
		return "", err
	}
	return filter.NewDuckDBEncoder(nil).EncodeFilter(nf), nil
}

// buildDocument merges the file or preset with the command line flags.
func buildDocument(args []string) (*document.Document, error) {
	if len(args) > 0 && buildPreset != "" {
		return nil, fmt.Errorf("use either FILE or --preset, not both")
	}

	doc := &document.Document{}

	var store *preset.Store
	if buildPreset != "" || buildPrior != "" {
		s, err := preset.Open(presetDir, logger)
		if err != nil {
			return nil, err
		}
		defer s.Close()
		store = s
	}

	switch {
	case len(args) > 0:
		d, err := document.Load(args[0])
		if err != nil {
			return nil, err
		}
		doc = d
	case buildPreset != "":
		d, err := store.Load(buildPreset)
		if err != nil {
			return nil, err
		}
		doc = d
	}

	if buildPrior != "" {
		if doc.Prior != nil {
			return nil, fmt.Errorf("document already has a prior; --prior cannot replace it")
		}
		prior, err := store.Load(buildPrior)
		if err != nil {
			return nil, err
		}
		doc.Prior = prior
	}

	for _, w := range buildWhere {
		def, err := parseWhere(w)
		if err != nil {
			return nil, err
		}
		doc.Filters = append(doc.Filters, def)
	}

	for _, s := range buildSort {
		def, err := parseSort(s)
		if err != nil {
			return nil, err
		}
		doc.Sort = append(doc.Sort, def)
	}

	if buildCombinator != "" {
		doc.Combinator = buildCombinator
	}
	if buildBasic {
		doc.Mode = document.ModeBasic
	}
	doc.Include = append(doc.Include, buildInclude...)

	logger.Debug("Document assembled",
		"filters", len(doc.Filters),
		"has_prior", doc.Prior != nil,
		"mode", doc.Mode,
	)

	return doc, nil
}
