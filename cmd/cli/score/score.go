// Package score implements the score command that runs the alignment calculator without saving anything.
package score

import (
	"fmt"

	"github.com/myrjola/soverain/internal/alignment"
	"github.com/myrjola/soverain/internal/errors"
	"github.com/myrjola/soverain/internal/models"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "score",
	Title: "Scoring",
}

// NewCommand creates the score command.
func NewCommand() *cobra.Command {
	var in models.Inputs
	cmd := &cobra.Command{
		Use:     "score --c 0.9 --h 0.8 --f 0.95",
		GroupID: Group.ID,
		Short:   "Score a decision",
		Long:    `Computes G, A, Score and Label from Christlikeness, Heart and Faithfulness, each in [0, 1].`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := alignment.Compute(in)
			if err != nil {
				return errors.Wrap(err, "compute alignment")
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "G=%.3f A=%.3f Score=%d Label=%s\n", a.G, a.A, a.Score, a.Label)
			return err
		},
	}
	cmd.Flags().Float64Var(&in.C, "c", 0, "Christlikeness in [0, 1]")
	cmd.Flags().Float64Var(&in.H, "h", 0, "Heart in [0, 1]")
	cmd.Flags().Float64Var(&in.F, "f", 0, "Faithfulness in [0, 1]")
	for _, name := range []string{"c", "h", "f"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
