package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/charlesng35/codeshelf/internal/browser"
	"github.com/charlesng35/codeshelf/internal/importer"
	"github.com/charlesng35/codeshelf/internal/tui"
)

func newImportCmd(opts *options) *cobra.Command {
	var validateOnly bool

	cmd := &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Import snippets from a YAML bundle",
		Long: `Import creates every snippet of the bundle whose title is not already in the
store. Categories and tags are matched by name and created when missing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bundle, err := importer.LoadFile(args[0])
			if err != nil {
				return err
			}
			if err := bundle.Validate(); err != nil {
				return err
			}
			if validateOnly {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d snippets, %d categories\n", args[0], len(bundle.Snippets), len(bundle.Categories))
				return nil
			}

			store, err := opts.client()
			if err != nil {
				return err
			}
			result, err := importer.New(store).Import(cmd.Context(), bundle)
			fmt.Fprintf(cmd.OutOrStdout(), "created %d, skipped %d (new categories %d, new tags %d)\n",
				result.Created, result.Skipped, result.CreatedCategories, result.CreatedTags)
			return err
		},
	}

	cmd.Flags().BoolVar(&validateOnly, "validate", false, "Check the bundle without contacting the store")
	return cmd
}

func newBrowseCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(cmd.OutOrStdout()) {
				return fmt.Errorf("browse needs an interactive terminal")
			}
			store, err := opts.client()
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), browser.New(store))
		},
	}
}
