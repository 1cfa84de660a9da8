package main

import (
	"github.com/erp/invoicing/internal/infrastructure/telemetry"
	"github.com/spf13/cobra"
)

func newRootCmd(open reportOpener) *cobra.Command {
	root := &cobra.Command{
		Use:   "invoicectl",
		Short: "Invoicing command-line tools",
		Long: `invoicectl validates bank data and prints tenant reports straight from
the invoicing database. Database settings come from config.toml and
INV_* environment variables, the same as the API server.`,
		Version:       telemetry.ServiceVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")

	root.AddCommand(newIBANCmd(), newReportCmd(open))
	return root
}
