package cmd

import (
	"context"
	"fmt"

	"loyalty-sync/core/database"
	"loyalty-sync/core/reconcile"
	"loyalty-sync/core/report"
	"loyalty-sync/feature/saleslines"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	diagCustomer string
	diagProducts []string
	diagExport   string
	diagSchema   bool
)

// diagnoseCmd runs the pipeline without writing or booking anything.
var diagnoseCmd = &cobra.Command{
	Use:     "diagnose",
	Aliases: []string{"test", "testing"},
	Short:   "Run the reconciliation read-only and report what would be booked",
	Long: `Fetches the enrolled customers, yesterday's sales lines and the eligible products,
and builds the turnovers without syncing the customer cache or booking anything.

Examples:
  # Trace one customer through every stage
  diagnose --customer 61-225027

  # Ask the partner about explicit product codes only
  diagnose --product 0986479C20,0986479939

  # Write lines, products and turnovers to a workbook
  diagnose --export diagnose.xlsx

  # Check that the sales view exposes every column the repository reads
  diagnose --schema`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := reconcile.DiagnoseOptions{Customer: diagCustomer, ProductCodes: diagProducts}
		if diagSchema {
			return runSchemaCheck(cmd.Context())
		}
		return runDiagnose(cmd.Context(), opts, diagExport)
	},
}

func init() {
	diagnoseCmd.Flags().StringVar(&diagCustomer, "customer", "", "Trace lines whose customer account contains this value")
	diagnoseCmd.Flags().StringSliceVar(&diagProducts, "product", nil, "Only query eligibility for these product codes")
	diagnoseCmd.Flags().StringVar(&diagExport, "export", "", "Write the diagnosis to this xlsx file")
	diagnoseCmd.Flags().BoolVar(&diagSchema, "schema", false, "Only check the sales view columns")
	RootCmd.AddCommand(diagnoseCmd)
}

func runDiagnose(ctx context.Context, opts reconcile.DiagnoseOptions, export string) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.log.Sync()

	d, err := a.orch.Diagnose(ctx, opts)
	if err != nil {
		return err
	}

	if export != "" {
		if err := report.WriteFile(export, d.Sheets()...); err != nil {
			return err
		}
		a.log.Info("Diagnosis exported", zap.String("path", export))
	}
	return nil
}

func runSchemaCheck(ctx context.Context) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.log.Sync()

	db, err := a.connector.Open(ctx)
	if err != nil {
		return err
	}
	defer database.Close(db)

	missing, err := database.MissingColumns(ctx, db, a.cfg.Database.SaleslineView, saleslines.RequiredColumns)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("sales view %s is missing columns: %v", a.cfg.Database.SaleslineView, missing)
	}

	a.log.Info("Sales view exposes every required column", zap.String("view", a.cfg.Database.SaleslineView))
	return nil
}
