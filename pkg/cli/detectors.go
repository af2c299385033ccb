package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newDetectorsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "detectors",
		Short: "List the configured detectors in priority order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, svc, err := loadMaskingService(cmd.Context(), root.configDir)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PRIORITY\tKIND\tDESCRIPTION")
			for _, d := range svc.Catalog().Detectors() {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", d.Priority(), d.Kind(), d.Description())
			}
			return tw.Flush()
		},
	}
}
