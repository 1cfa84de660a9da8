package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	reportapp "github.com/erp/invoicing/internal/application/report"
	"github.com/erp/invoicing/internal/infrastructure/config"
	"github.com/erp/invoicing/internal/infrastructure/logger"
	"github.com/erp/invoicing/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

// reportOpener builds a report service and returns a function releasing it
type reportOpener func(ctx context.Context, logLevel string) (*reportapp.ReportService, func(), error)

// openReportService connects to the configured database. Reports are not cached.
func openReportService(_ context.Context, logLevel string) (*reportapp.ReportService, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}
	log, err := logger.New(&logger.Config{Level: logLevel, Format: "console", Output: "stderr"})
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	db, err := persistence.NewDatabase(&cfg.Database, log, logLevel)
	if err != nil {
		return nil, nil, err
	}
	svc := reportapp.NewReportService(persistence.NewGormInvoiceReportRepository(db.DB), nil, nil, cfg.Report)
	return svc, func() {
		_ = db.Close()
		_ = log.Sync()
	}, nil
}

func newReportCmd(open reportOpener) *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Print tenant reports",
	}
	reportCmd.PersistentFlags().String("tenant", "", "Tenant (root company) ID")
	_ = reportCmd.MarkPersistentFlagRequired("tenant")

	cashFlow := &cobra.Command{
		Use:   "cashflow",
		Short: "Monthly cash flow of issued invoices",
		Example: `  invoicectl report cashflow --tenant $TENANT --from 2024-01-01 --to 2024-12-31
  invoicectl report cashflow --tenant $TENANT --from 2024-01-01 --to 2024-03-31 --direction sales --format csv
  invoicectl report cashflow --tenant $TENANT --from 2024-01-01 --to 2024-12-31 --by-party`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tenantID, err := tenantFlag(cmd)
			if err != nil {
				return err
			}
			req, err := cashFlowRequest(cmd)
			if err != nil {
				return err
			}
			byParty, _ := cmd.Flags().GetBool("by-party")
			format, _ := cmd.Flags().GetString("format")
			if format != "json" && format != "csv" {
				return fmt.Errorf("unknown format %q", format)
			}
			if byParty && format == "csv" {
				return fmt.Errorf("csv output is only available for the monthly report")
			}

			svc, release, err := openWithLogLevel(cmd, open)
			if err != nil {
				return err
			}
			defer release()

			ctx := cmd.Context()
			switch {
			case byParty:
				r, err := svc.CashFlowByParty(ctx, tenantID, req)
				if err != nil {
					return err
				}
				return writeJSON(cmd, r)
			case format == "csv":
				data, err := svc.CashFlowCSV(ctx, tenantID, req)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			default:
				r, err := svc.CashFlow(ctx, tenantID, req)
				if err != nil {
					return err
				}
				return writeJSON(cmd, r)
			}
		},
	}
	cashFlow.Flags().String("from", "", "First day of the range (2006-01-02)")
	cashFlow.Flags().String("to", "", "Last day of the range (2006-01-02)")
	cashFlow.Flags().String("direction", "all", "sales, purchases or all")
	cashFlow.Flags().Bool("by-party", false, "Group by counterparty instead of month")
	cashFlow.Flags().String("format", "json", "json or csv")
	_ = cashFlow.MarkFlagRequired("from")
	_ = cashFlow.MarkFlagRequired("to")

	pending := &cobra.Command{
		Use:     "pending",
		Short:   "Unpaid invoices grouped by deadline month",
		Example: `  invoicectl report pending --tenant $TENANT`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tenantID, err := tenantFlag(cmd)
			if err != nil {
				return err
			}
			svc, release, err := openWithLogLevel(cmd, open)
			if err != nil {
				return err
			}
			defer release()

			r, err := svc.Pending(cmd.Context(), tenantID)
			if err != nil {
				return err
			}
			return writeJSON(cmd, r)
		},
	}

	reportCmd.AddCommand(cashFlow, pending)
	return reportCmd
}

func openWithLogLevel(cmd *cobra.Command, open reportOpener) (*reportapp.ReportService, func(), error) {
	level, _ := cmd.Flags().GetString("log-level")
	return open(cmd.Context(), level)
}

func tenantFlag(cmd *cobra.Command) (uuid.UUID, error) {
	raw, _ := cmd.Flags().GetString("tenant")
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("invalid tenant ID %q", raw)
	}
	return id, nil
}

func cashFlowRequest(cmd *cobra.Command) (reportapp.CashFlowRequest, error) {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	direction, _ := cmd.Flags().GetString("direction")

	start, err := time.Parse(dateLayout, from)
	if err != nil {
		return reportapp.CashFlowRequest{}, fmt.Errorf("invalid --from date %q", from)
	}
	end, err := time.Parse(dateLayout, to)
	if err != nil {
		return reportapp.CashFlowRequest{}, fmt.Errorf("invalid --to date %q", to)
	}
	return reportapp.CashFlowRequest{StartDate: start, EndDate: end, Direction: direction}, nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
