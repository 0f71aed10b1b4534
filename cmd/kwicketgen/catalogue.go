package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/pthm/kwicketgen/internal/cli"
	"github.com/pthm/kwicketgen/pkg/schema"
)

var (
	catalogueFiles     []string
	catalogueNoBuiltin bool
)

var catalogueCmd = &cobra.Command{
	Use:     "catalogue",
	Aliases: []string{"catalog"},
	Short:   "Inspect the component catalogue",
}

var catalogueListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configurations",
	Long: `List every configuration with its target class, parent, model and tag.
Properties are shown as own/inherited-included counts.`,
	Example: `  # List the builtin catalogue
  kwicketgen catalogue list

  # Include a project catalogue
  kwicketgen catalogue list --catalogue components.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configs, err := loadCatalogueForDisplay()
		if err != nil {
			return err
		}
		out, err := pterm.DefaultTable.WithHasHeader().WithData(cli.CatalogueTable(configs)).Srender()
		if err != nil {
			return cli.GeneralError("rendering table", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

var catalogueTreeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Show the configuration inheritance tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		configs, err := loadCatalogueForDisplay()
		if err != nil {
			return err
		}
		out, err := pterm.DefaultTree.WithRoot(cli.CatalogueTree(configs)).Srender()
		if err != nil {
			return cli.GeneralError("rendering tree", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func loadCatalogueForDisplay() ([]*schema.Configuration, error) {
	files := append(append([]string(nil), cfg.Catalogues...), catalogueFiles...)
	configs, err := cli.LoadCatalogue(cfg.Builtin && !catalogueNoBuiltin, files)
	if err != nil {
		return nil, cli.CatalogueError("loading catalogue", err)
	}
	return configs, nil
}

func init() {
	pf := catalogueCmd.PersistentFlags()
	pf.StringSliceVar(&catalogueFiles, "catalogue", nil, "additional catalogue file (.yaml, .json, .cue)")
	pf.BoolVar(&catalogueNoBuiltin, "no-builtin", false, "leave out the builtin Wicket catalogue")

	catalogueCmd.AddCommand(catalogueListCmd)
	catalogueCmd.AddCommand(catalogueTreeCmd)
}
