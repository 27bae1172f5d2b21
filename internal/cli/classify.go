package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"car-damage-bot/internal/domain/damage"
)

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify NAME...",
		Short: "Show car category and part normalization for each argument",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "INPUT\tCATEGORY\tPART")
			for _, arg := range args {
				fmt.Fprintf(w, "%s\t%s\t%s\n", arg, damage.DetectCategory(arg), damage.NormalizePart(arg))
			}
			return w.Flush()
		},
	}
}
