package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"firledger/internal/contract"
)

var operationsCmd = &cobra.Command{
	Use:   "operations",
	Short: "List the named operations and their arguments",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		d := contract.New(nil, nil)
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, op := range d.Operations() {
			fmt.Fprintf(w, "%s\t%s\n", op.Name, strings.Join(op.Params, " "))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(operationsCmd)
}
