package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"loyalty-sync/core/reconcile"

	"github.com/spf13/cobra"
)

// reconcileCmd runs the full reconciliation.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Book yesterday's qualifying sales lines as turnovers",
	Long: `Syncs the enrolled-customer cache, fetches yesterday's sales lines, keeps the lines of
enrolled customers with eligible products and books them in batches.
Rejected batches are appended to the failed-turnover queue.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMode(cmd.Context(), reconcile.ModeReconcile)
	},
}

// handleFailedCmd drains the failed-turnover queue.
var handleFailedCmd = &cobra.Command{
	Use:   "handlefailed",
	Short: "Resubmit turnovers from the failed-turnover queue",
	Long: `Reads the failed-turnover queue, removes duplicates (same amount, operator and
transaction id), clears the queue and resubmits. Batches rejected again are queued anew.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMode(cmd.Context(), reconcile.ModeRetryFailed)
	},
}

func init() {
	RootCmd.AddCommand(reconcileCmd)
	RootCmd.AddCommand(handleFailedCmd)
}

// runMode wires the application and runs one flow. SIGINT/SIGTERM cancel the run; batches
// not yet booked are then queued instead of dropped.
func runMode(parent context.Context, mode reconcile.Mode) error {
	a, err := newApp(parent)
	if err != nil {
		return err
	}
	defer a.log.Sync()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err = a.orch.Run(ctx, mode)
	return err
}
