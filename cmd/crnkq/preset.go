package main

import (
	"fmt"
	"net/url"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hugr-lab/crnk-filtering"
	"github.com/hugr-lab/crnk-filtering/internal/document"
	"github.com/hugr-lab/crnk-filtering/internal/preset"
)

var presetShowFormat string

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Manage saved filter documents",
}

var presetSaveCmd = &cobra.Command{
	Use:   "save NAME FILE",
	Short: "Save a filter document as a preset",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := document.Load(args[1])
		if err != nil {
			return err
		}
		// Reject documents that would not build.
		if _, err := doc.Query(&crnk.Config{Logger: logger}); err != nil {
			return err
		}

		return withStore(func(s *preset.Store) error {
			if err := s.Save(args[0], doc); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", args[0])
			return nil
		})
	},
}

var presetShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Print a preset as a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format := document.Format(presetShowFormat)
		if format == document.FormatMsgpack {
			return fmt.Errorf("%w: cannot print %s", document.ErrUnsupportedFormat, format)
		}
		return withStore(func(s *preset.Store) error {
			doc, err := s.Load(args[0])
			if err != nil {
				return err
			}
			data, err := document.Encode(doc, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		})
	},
}

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List presets with their query strings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *preset.Store) error {
			names, err := s.List()
			if err != nil {
				return err
			}

			queries, err := renderPresets(s, names)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for i, name := range names {
				fmt.Fprintf(w, "%s\t%s\n", name, queries[i])
			}
			return w.Flush()
		})
	},
}

var presetDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a preset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *preset.Store) error {
			if err := s.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		})
	},
}

func init() {
	presetShowCmd.Flags().StringVarP(&presetShowFormat, "format", "f", string(document.FormatTOML), "output format (toml, json)")

	presetCmd.AddCommand(presetSaveCmd)
	presetCmd.AddCommand(presetShowCmd)
	presetCmd.AddCommand(presetListCmd)
	presetCmd.AddCommand(presetDeleteCmd)
}

func withStore(fn func(s *preset.Store) error) error {
	s, err := preset.Open(presetDir, logger)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

// renderPresets loads and builds every named preset concurrently and
// returns the decoded query strings in the order of names.
func renderPresets(s *preset.Store, names []string) ([]string, error) {
	queries := make([]string, len(names))

	g := new(errgroup.Group)
	g.SetLimit(8)
	for i, name := range names {
		g.Go(func() error {
			doc, err := s.Load(name)
			if err != nil {
				return fmt.Errorf("preset %s: %w", name, err)
			}
			q, err := doc.Query(&crnk.Config{Logger: logger})
			if err != nil {
				return fmt.Errorf("preset %s: %w", name, err)
			}
			decoded, err := url.QueryUnescape(q.String())
			if err != nil {
				return fmt.Errorf("preset %s: %w", name, err)
			}
			queries[i] = decoded
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return queries, nil
}
