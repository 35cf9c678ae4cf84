package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"firledger/internal/contract"
	"firledger/pkg/requestcontext"
)

var invokeCmd = &cobra.Command{
	Use:   "invoke <operation> [args...]",
	Short: "Invoke a named ledger operation",
	Long: `Invoke runs one named operation with positional arguments and prints the
JSON result, or the rejection text, on stdout. Free-text arguments are hex
encoded; list arguments are hex-encoded JSON arrays.`,
	Example: `  ledgerctl invoke getAllFIRRegisteredByUser 123412341234
  ledgerctl invoke updateFIRStatusByPolice police.karnataka.bengaluru@ksp.gov.in <uuid> closed`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := buildApp(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer a.close()

		resp, err := a.run(ctx, args[0], args[1:])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), resp.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(invokeCmd)
}

// run invokes fn while the audit worker drains events, then waits for the
// worker to persist everything the operation emitted.
func (a *app) run(ctx context.Context, fn string, args []string) (contract.Response, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.worker.Run(gctx)
	})

	opCtx, cancel := context.WithTimeout(ctx, cfg.OperationTimeout)
	requestID := uuid.NewString()
	opCtx = requestcontext.WithRequestID(opCtx, requestID)
	resp, invokeErr := a.dispatcher.Invoke(opCtx, fn, args...)
	cancel()

	a.publisher.Close()
	if err := g.Wait(); err != nil {
		a.logger.WarnContext(ctx, "audit worker stopped early", "request_id", requestID, "error", err)
	}
	return resp, invokeErr
}
