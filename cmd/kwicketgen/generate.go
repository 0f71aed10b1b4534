package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pthm/kwicketgen/internal/cli"
	"github.com/pthm/kwicketgen/internal/emit"
	"github.com/pthm/kwicketgen/internal/logger"
	"github.com/pthm/kwicketgen/internal/watch"
	"github.com/pthm/kwicketgen/pkg/generator"
	"github.com/pthm/kwicketgen/pkg/schema"
)

var (
	genOutput      string
	genFormat      string
	genFileName    string
	genOnly        []string
	genCatalogues  []string
	genNoBuiltin   bool
	genKeepGoing   bool
	genParallelism int
	genWatch       bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate kWicket builder code",
	Long: `Generate the kWicket builder API for every configuration of the catalogue.

Each configuration produces a config interface and class. Configurations that
are not config-only also produce a tag class, a tag method and an include
method. Declarations are grouped into one file per package.

Supported formats: ` + strings.Join(generator.Formats(), ", "),
	Example: `  # Generate Kotlin sources into the configured output directory
  kwicketgen generate

  # Generate into a source set
  kwicketgen generate --output src/main/kotlin

  # Generate a subset as a txtar archive on stdout
  kwicketgen generate --only Label,CheckBox --output -

  # Add project components and regenerate when their catalogue changes
  kwicketgen generate --catalogue components.cue --watch`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := generateOptions{
			output:      resolveString(genOutput, cfg.Generate.Output),
			format:      resolveString(genFormat, cfg.Generate.Format, "kotlin"),
			fileName:    resolveString(genFileName, cfg.Generate.FileName, "Components"),
			only:        resolveStrings(genOnly, cfg.Generate.Only),
			builtin:     cfg.Builtin && !genNoBuiltin,
			catalogues:  append(append([]string(nil), cfg.Catalogues...), genCatalogues...),
			keepGoing:   resolveBool(genKeepGoing, cfg.Generate.KeepGoing),
			parallelism: cfg.Generate.Parallelism,
		}
		if cmd.Flags().Changed("parallelism") {
			opts.parallelism = genParallelism
		}

		naming, err := cfg.NamingStrategy()
		if err != nil {
			return cli.ConfigError("invalid naming configuration", err)
		}
		opts.naming = naming

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if !genWatch {
			return runGenerate(ctx, opts)
		}
		return watchGenerate(ctx, opts)
	},
}

func init() {
	f := generateCmd.Flags()
	f.StringVarP(&genOutput, "output", "o", "", `output directory ("-" writes a txtar archive to stdout)`)
	f.StringVar(&genFormat, "format", "", "output format")
	f.StringVar(&genFileName, "file-name", "", "name of the file generated in each package")
	f.StringSliceVar(&genOnly, "only", nil, "generate only these configurations (comma separated basenames)")
	f.StringSliceVar(&genCatalogues, "catalogue", nil, "additional catalogue file (.yaml, .json, .cue)")
	f.BoolVar(&genNoBuiltin, "no-builtin", false, "leave out the builtin Wicket catalogue")
	f.BoolVar(&genKeepGoing, "keep-going", false, "write the configurations that succeed when others fail")
	f.IntVar(&genParallelism, "parallelism", 0, "configurations derived concurrently (0 uses all CPUs)")
	f.BoolVarP(&genWatch, "watch", "w", false, "regenerate when catalogue files change")
}

type generateOptions struct {
	output      string
	format      string
	fileName    string
	only        []string
	builtin     bool
	catalogues  []string
	keepGoing   bool
	parallelism int
	naming      *schema.Naming
}

func (o generateOptions) target() emit.Target {
	if o.output == "-" {
		return emit.Stream(os.Stdout)
	}
	return emit.Dir(o.output)
}

// runGenerate loads the catalogue, derives every artifact and writes the
// files in one flush.
func runGenerate(ctx context.Context, opts generateOptions) error {
	log := logger.L()

	if opts.output == "" {
		return cli.ConfigError("--output is required", nil)
	}

	configs, err := cli.LoadCatalogue(opts.builtin, opts.catalogues)
	if err != nil {
		return cli.CatalogueError("loading catalogue", err)
	}

	unit, err := generator.NewUnit(opts.format, opts.fileName, log)
	if err != nil {
		return cli.ConfigError("selecting output format", err)
	}

	report, genErr := generator.Generate(ctx, generator.Request{
		Configs:     configs,
		Only:        opts.only,
		Naming:      opts.naming,
		Sink:        unit,
		KeepGoing:   opts.keepGoing,
		Parallelism: opts.parallelism,
		Logger:      log,
	})
	if report == nil {
		switch {
		case schema.IsInvalidCatalogueErr(genErr):
			return cli.CatalogueError("invalid catalogue", genErr)
		case generator.IsUnknownConfigurationErr(genErr):
			return cli.ConfigError("selecting configurations", genErr)
		case errors.Is(genErr, context.Canceled):
			return cli.GeneralError("generation interrupted", genErr)
		default:
			return cli.GenerateError("generation failed", genErr)
		}
	}

	target := opts.target()
	if err := unit.WriteTo(ctx, target); err != nil {
		return cli.GenerateError(fmt.Sprintf("writing %s", target), err)
	}

	if !quiet && opts.output != "-" {
		fmt.Printf("Generated %d configurations (%d declarations) in %s\n",
			len(report.Generated), report.Declarations(), opts.output)
	}

	if genErr != nil {
		return cli.GenerateError(fmt.Sprintf("%d configurations failed", len(report.Failures)), genErr)
	}
	return nil
}

// watchGenerate generates once and again whenever a catalogue file changes,
// until ctx is cancelled.
func watchGenerate(ctx context.Context, opts generateOptions) error {
	log := logger.L()

	if opts.output == "-" {
		return cli.ConfigError("--watch needs an output directory", nil)
	}
	if len(opts.catalogues) == 0 {
		return cli.ConfigError("--watch needs catalogue files", errors.WithHint(
			errors.New("the builtin catalogue never changes"),
			"pass --catalogue or list files under catalogues in kwicketgen.yaml",
		))
	}

	if err := runGenerate(ctx, opts); err != nil {
		// A broken catalogue is reported and fixed while watching.
		if cli.ExitCode(err) == cli.ExitConfig {
			return err
		}
		cli.PrintError(os.Stderr, err)
	}

	w, err := watch.New(opts.catalogues, cfg.Watch.Debounce, log)
	if err != nil {
		return cli.GeneralError("watching catalogue files", err)
	}
	defer func() { _ = w.Close() }()

	if !quiet {
		fmt.Printf("Watching %d catalogue files, press Ctrl+C to stop\n", len(w.Files()))
	}
	return w.Run(ctx, func(ctx context.Context, changed []string) error {
		log.Info("catalogue changed", zap.Strings("files", changed))
		err := runGenerate(ctx, opts)
		if err != nil {
			cli.PrintError(os.Stderr, err)
		}
		return err
	})
}
