package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pthm/kwicketgen/internal/cli"
	"github.com/pthm/kwicketgen/internal/update"
	"github.com/pthm/kwicketgen/internal/version"
)

var versionCheck bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Example: `  # Print the version
  kwicketgen version

  # Also look for a newer release
  kwicketgen version --check`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(version.Info())
		if !versionCheck {
			return nil
		}

		info, err := update.NewChecker().Check(context.Background())
		if err != nil {
			return cli.GeneralError("checking for updates", err)
		}
		if info.UpdateAvailable {
			fmt.Printf("A newer release is available: %s\n", info.LatestVersion)
			if info.ReleaseURL != "" {
				fmt.Println(info.ReleaseURL)
			}
		} else {
			fmt.Println("kwicketgen is up to date")
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionCheck, "check", false, "check GitHub for a newer release")
}
