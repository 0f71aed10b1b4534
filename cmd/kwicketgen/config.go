package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/pthm/kwicketgen/internal/cli"
)

var (
	configShowSource bool
	configInitForce  bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration utilities",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	Long:  `Show the effective configuration after merging defaults, config file, and environment variables.`,
	Example: `  # Show effective configuration
  kwicketgen config show

  # Show configuration with source file path
  kwicketgen config show --source`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if configShowSource {
			if configPath != "" {
				fmt.Printf("Config file: %s\n\n", configPath)
			} else {
				fmt.Println("Config file: (none, using defaults)")
				fmt.Println()
			}
		}

		out, err := yaml.Marshal(cfg)
		if err != nil {
			return cli.GeneralError("encoding configuration", err)
		}
		fmt.Print(string(out))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter kwicketgen.yaml",
	Long: `Write the effective configuration to kwicketgen.yaml in the current
directory, as a starting point for project settings.`,
	Example: `  # Create kwicketgen.yaml
  kwicketgen config init

  # Replace an existing file
  kwicketgen config init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cli.ConfigFileNames[0]
		if _, err := os.Stat(path); err == nil && !configInitForce {
			return cli.ConfigError(fmt.Sprintf("%s already exists", path), nil)
		}

		out, err := yaml.Marshal(cfg)
		if err != nil {
			return cli.GeneralError("encoding configuration", err)
		}
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return cli.GeneralError(fmt.Sprintf("writing %s", path), err)
		}
		if !quiet {
			fmt.Printf("Wrote %s\n", path)
		}
		return nil
	},
}

func init() {
	configShowCmd.Flags().BoolVar(&configShowSource, "source", false, "show config file source")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
