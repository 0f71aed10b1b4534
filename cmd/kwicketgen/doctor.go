package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pthm/kwicketgen/internal/cli"
	"github.com/pthm/kwicketgen/internal/doctor"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run health checks",
	Long: `Check the configuration, every catalogue file and the output directory,
then derive all artifacts without writing them.`,
	Example: `  # Run health checks
  kwicketgen doctor

  # Show details of every check
  kwicketgen doctor -v`,
	RunE: func(cmd *cobra.Command, args []string) error {
		naming, namingErr := cfg.NamingStrategy()

		if !quiet {
			fmt.Println("kwicketgen doctor - Health Check")
		}

		d := doctor.New(doctor.Options{
			Builtin:    cfg.Builtin,
			Catalogues: cfg.Catalogues,
			Naming:     naming,
			NamingErr:  namingErr,
			Format:     cfg.Generate.Format,
			Output:     cfg.Generate.Output,
		})
		report, err := d.Run(context.Background())
		if err != nil {
			return cli.GeneralError("running doctor", err)
		}

		report.Print(os.Stdout, verbose > 0)

		if report.HasErrors() {
			return cli.GeneralError("health checks failed", nil)
		}
		return nil
	},
}
