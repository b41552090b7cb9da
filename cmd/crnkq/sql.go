package main

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hugr-lab/crnk-filtering/filter"
)

var sqlColumns []string

var sqlCmd = &cobra.Command{
	Use:   "sql [FILTER]",
	Short: "Translate a nested filter into a DuckDB WHERE clause body",
	Long: `Translate a nested filter into a DuckDB WHERE clause body.

FILTER is the JSON text of a nested filter or a query string holding a
filter parameter. It is read from stdin when omitted.

Examples:
  crnkq sql '{"user": {"EQ": {"id": "12"}}}'
  crnkq sql 'filter=%7B%22EQ%22%3A+%7B%22id%22%3A+%221%22%7D%7D&sort=name'
  crnkq sql --column user.name=full_name < filter.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSQL,
}

func init() {
	sqlCmd.Flags().StringArrayVar(&sqlColumns, "column", nil, "map a dotted path to a column as path=column (repeatable)")
}

func runSQL(cmd *cobra.Command, args []string) error {
	var text string
	if len(args) > 0 {
		text = args[0]
	} else {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return err
		}
		text = string(data)
	}

	text, err := filterText(text)
	if err != nil {
		return err
	}

	expr, err := filter.Parse([]byte(text))
	if err != nil {
		return err
	}

	opts, err := columnMapping(sqlColumns)
	if err != nil {
		return err
	}

	where := filter.NewDuckDBEncoder(opts).Encode(expr)
	logger.Debug("Filter translated", "supported", where != "")
	fmt.Fprintln(cmd.OutOrStdout(), where)
	return nil
}

// filterText extracts the filter parameter when s is a query string.
func filterText(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "{") {
		return s, nil
	}

	values, err := url.ParseQuery(strings.TrimPrefix(s, "?"))
	if err != nil {
		return "", fmt.Errorf("invalid query string: %w", err)
	}
	if !values.Has(filter.ParamName) {
		return "", fmt.Errorf("query string has no %s parameter", filter.ParamName)
	}
	return values.Get(filter.ParamName), nil
}

func columnMapping(defs []string) (*filter.EncoderOptions, error) {
	if len(defs) == 0 {
		return nil, nil
	}

	opts := &filter.EncoderOptions{ColumnMapping: make(map[string]string, len(defs))}
	for _, d := range defs {
		path, column, ok := strings.Cut(d, "=")
		if !ok || path == "" || column == "" {
			return nil, fmt.Errorf("invalid --column %q: expected path=column", d)
		}
		opts.ColumnMapping[path] = column
	}
	return opts, nil
}
