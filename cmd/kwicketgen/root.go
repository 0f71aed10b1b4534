package main

import (
	"github.com/spf13/cobra"

	"github.com/pthm/kwicketgen/internal/cli"
	"github.com/pthm/kwicketgen/internal/logger"
)

var (
	// Global state set during PersistentPreRunE
	cfg        *cli.Config
	configPath string

	// Persistent flags
	cfgFile string
	verbose int
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "kwicketgen",
	Short: "Typed Kotlin builders for Apache Wicket",
	Long: `kwicketgen - Typed Kotlin builders for Apache Wicket

kwicketgen reads a catalogue of Wicket component configurations and generates
the kWicket builder API for each of them: a config interface and class, an
HTML tag class, a tag method for the kotlinx.html DSL and an include method
for markup containers.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for help/completion/version commands
		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "version" {
			return nil
		}

		var err error
		cfg, configPath, err = cli.LoadConfig(cfgFile)
		if err != nil {
			return cli.ConfigError("loading configuration", err)
		}

		level := verbose
		if quiet {
			level = logger.VerbosityQuiet
		}
		logger.Initialize(logger.Options{
			JSON:      cfg.Log.Format == "json",
			Verbosity: level,
		})
		logger.L().Debug("configuration loaded")
		if configPath != "" {
			logger.S().Debugf("config file: %s", configPath)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
	SilenceUsage:  true, // Don't show usage on errors
	SilenceErrors: true, // We handle errors ourselves
}

// Command group IDs
const (
	groupGenerate  = "generate"
	groupCatalogue = "catalogue"
	groupUtility   = "utility"
)

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: auto-discover kwicketgen.yaml)")
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase verbosity (can be repeated)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")

	rootCmd.AddGroup(
		&cobra.Group{ID: groupGenerate, Title: "Generation:"},
		&cobra.Group{ID: groupCatalogue, Title: "Catalogue:"},
		&cobra.Group{ID: groupUtility, Title: "Utility:"},
	)

	generateCmd.GroupID = groupGenerate
	validateCmd.GroupID = groupGenerate
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(validateCmd)

	catalogueCmd.GroupID = groupCatalogue
	rootCmd.AddCommand(catalogueCmd)

	doctorCmd.GroupID = groupUtility
	configCmd.GroupID = groupUtility
	versionCmd.GroupID = groupUtility
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		cli.ExitWithError(err)
	}
}

// resolveString returns the first non-empty string from the provided values.
// Used to implement precedence: flag > config > default.
func resolveString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// resolveBool returns true if any of the provided values is true.
func resolveBool(values ...bool) bool {
	for _, v := range values {
		if v {
			return true
		}
	}
	return false
}

// resolveStrings returns the first non-empty list.
func resolveStrings(values ...[]string) []string {
	for _, v := range values {
		if len(v) > 0 {
			return v
		}
	}
	return nil
}
