package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/myrjola/soverain/cmd/cli/score"
	"github.com/myrjola/soverain/cmd/cli/scripture"
	"github.com/myrjola/soverain/internal/errors"
	"github.com/spf13/cobra"
)

func init() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rootCmd.AddGroup(score.Group)
	rootCmd.AddCommand(score.NewCommand())
	rootCmd.AddGroup(scripture.Group)
	rootCmd.AddCommand(scripture.NewCatalogCommand(), scripture.NewPathwaysCommand())
}

var rootCmd = &cobra.Command{
	Use:           "soverain-cli",
	Long:          `Command line utilities for Soverain, the spiritual alignment journal`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
