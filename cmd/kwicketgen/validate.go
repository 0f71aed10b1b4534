package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pthm/kwicketgen/internal/cli"
	"github.com/pthm/kwicketgen/internal/decl"
	"github.com/pthm/kwicketgen/internal/logger"
	"github.com/pthm/kwicketgen/pkg/generator"
	"github.com/pthm/kwicketgen/pkg/schema"
)

var (
	validateCatalogues []string
	validateNoBuiltin  bool
)

// discard is a generator sink that drops every declaration.
type discard struct{}

func (discard) AddType(decl.Type) {}
func (discard) AddFunc(decl.Func) {}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the catalogue",
	Long: `Validate the catalogue and derive the artifacts of every configuration
without writing any output. All problems are reported together.`,
	Example: `  # Validate the builtin catalogue and the configured catalogue files
  kwicketgen validate

  # Validate a project catalogue on its own
  kwicketgen validate --no-builtin --catalogue components.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		files := append(append([]string(nil), cfg.Catalogues...), validateCatalogues...)
		configs, err := cli.LoadCatalogue(cfg.Builtin && !validateNoBuiltin, files)
		if err != nil {
			return cli.CatalogueError("loading catalogue", err)
		}

		naming, err := cfg.NamingStrategy()
		if err != nil {
			return cli.ConfigError("invalid naming configuration", err)
		}

		report, err := generator.Generate(context.Background(), generator.Request{
			Configs:   configs,
			Naming:    naming,
			Sink:      discard{},
			KeepGoing: true,
			Logger:    logger.L(),
		})
		if report == nil {
			if schema.IsInvalidCatalogueErr(err) {
				return cli.CatalogueError("invalid catalogue", err)
			}
			return cli.GenerateError("generation failed", err)
		}
		if err != nil {
			if !quiet {
				for _, f := range report.Failures {
					fmt.Printf("  - %s: %v\n", f.Basename, f.Err)
				}
			}
			return cli.GenerateError(fmt.Sprintf("%d of %d configurations cannot be generated",
				len(report.Failures), len(configs)), nil)
		}

		if !quiet {
			fmt.Printf("Catalogue is valid. %d configurations produce %d types and %d functions.\n",
				len(report.Generated), report.Types, report.Funcs)
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().StringSliceVar(&validateCatalogues, "catalogue", nil, "additional catalogue file (.yaml, .json, .cue)")
	validateCmd.Flags().BoolVar(&validateNoBuiltin, "no-builtin", false, "leave out the builtin Wicket catalogue")
}
