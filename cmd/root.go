package cmd

import (
	"fmt"
	"os"

	"loyalty-sync/core/logger"
	"loyalty-sync/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// envProfile selects .env.<profile> instead of .env.
	envProfile string
	// configDir is the directory holding the env files.
	configDir string
)

// RootCmd represents the base command when called without any subcommands.
// A single positional argument selects the mode, so scheduled jobs can keep calling
// "loyalty-sync", "loyalty-sync handlefailed" or "loyalty-sync test".
var RootCmd = &cobra.Command{
	Use:   "loyalty-sync [handlefailed|test|testing]",
	Short: "Loyalty turnover reconciliation job",
	Long: `Loyalty Sync reconciles yesterday's sales lines against the loyalty partner's
enrolled customers and eligible products, and books the matching turnovers.
Rejected batches are kept in a failed-turnover queue and retried with "handlefailed".`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		arg := ""
		if len(args) == 1 {
			arg = args[0]
		}
		mode, err := reconcile.ParseMode(arg)
		if err != nil {
			return err
		}
		if mode == reconcile.ModeDiagnostic {
			return runDiagnose(cmd.Context(), reconcile.DiagnoseOptions{}, "")
		}
		return runMode(cmd.Context(), mode)
	},
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Use the application's standard logger for error reporting
		// We use "debug" level configuration to get ISO8601 timestamps (DevConfig)
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&envProfile, "env", "", "Environment profile, loads .env.<profile> (e.g. prod, dev)")
	RootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "Directory containing the env files")
}
