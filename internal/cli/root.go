// Package cli is the ledgerctl command tree.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"firledger/internal/platform/config"
	"firledger/internal/platform/logger"
)

var (
	backendFlag string
	cfg         config.Config
	log         *slog.Logger

	rootCmd = &cobra.Command{
		Use:   "ledgerctl",
		Short: "ledgerctl - FIR and background-check ledger",
		Long: `ledgerctl invokes the ledger's named operations against the configured
record store. Configuration is read from LEDGER_*, POSTGRES_*, REDIS_*,
SQLITE_PATH, KAFKA_* and LOG_LEVEL.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: loadConfig,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "record store backend (memory, sqlite, postgres, redis); overrides LEDGER_BACKEND")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	loaded, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if backendFlag != "" {
		loaded.Backend = backendFlag
		if err := loaded.Validate(); err != nil {
			return err
		}
	}
	cfg = loaded
	log = logger.NewWithWriter(logOutput(cmd), cfg.LogLevel)
	return nil
}

// Logs go to stderr so stdout carries only operation output.
func logOutput(cmd *cobra.Command) io.Writer {
	return cmd.ErrOrStderr()
}
