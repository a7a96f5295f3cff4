// Package scripture implements the commands that browse the Scripture catalog and its pathways.
package scripture

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/myrjola/soverain/internal/catalog"
	"github.com/myrjola/soverain/internal/errors"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "scripture",
	Title: "Scripture catalog",
}

// NewCatalogCommand creates the catalog command that lists the seeded entries and the entries of an optional YAML
// file, the same way the web server loads them.
func NewCatalogCommand() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:     "catalog",
		GroupID: Group.ID,
		Short:   "List the Scripture catalog",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := load(file)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0) //nolint:mnd // column padding
			_, _ = fmt.Fprintln(w, "#\tREFERENCE\tFIGURE\tSITUATION\tC\tH\tF")
			for i, e := range registry.List() {
				_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.2f\t%.2f\t%.2f\n",
					i, e.Ref, e.Figure, e.Situation, e.Defaults.C, e.Defaults.H, e.Defaults.F)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "YAML file with extra catalog entries")
	return cmd
}

// NewPathwaysCommand creates the pathways command. Without arguments it lists the pathways, with a name it lists the
// steps of that pathway.
func NewPathwaysCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "pathways [name]",
		GroupID: Group.ID,
		Short:   "List the guided pathways",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := catalog.NewRegistry()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0) //nolint:mnd // column padding
			if len(args) == 0 {
				_, _ = fmt.Fprintln(w, "PATHWAY\tSTEPS")
				for _, name := range registry.PathwayNames() {
					p, err := registry.Pathway(name)
					if err != nil {
						return errors.Wrap(err, "lookup pathway")
					}
					_, _ = fmt.Fprintf(w, "%s\t%d\n", p.Name, len(p.Steps))
				}
				return w.Flush()
			}
			p, err := registry.Pathway(args[0])
			if err != nil {
				return errors.Wrap(err, "lookup pathway")
			}
			_, _ = fmt.Fprintln(w, "STEP\tPASSAGE\tFIGURE\tSITUATION")
			for i, s := range p.Steps {
				_, _ = fmt.Fprintf(w, "%d\t%s %s\t%s\t%s\n", i, s.Book, s.Verse, s.Figure, s.Situation)
			}
			return w.Flush()
		},
	}
}

func load(path string) (*catalog.Registry, error) {
	registry := catalog.NewRegistry()
	if path == "" {
		return registry, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open catalog file", slog.String("path", path))
	}
	defer func(f io.Closer) {
		_ = f.Close()
	}(f)
	if err = registry.LoadYAML(f); err != nil {
		return nil, errors.Wrap(err, "load catalog file", slog.String("path", path))
	}
	return registry, nil
}
