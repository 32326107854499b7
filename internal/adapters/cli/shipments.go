package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewShipmentsCommand creates the shipments command group
func NewShipmentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shipments",
		Short: "Inspect shipments",
	}

	cmd.AddCommand(newShipmentsListCommand())

	return cmd
}

func newShipmentsListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List shipments ordered by priority and ship date",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath)
			if err != nil {
				return err
			}
			defer a.close()

			ctx := a.ctx()
			shipments, err := a.shipments.List(ctx, limit)
			if err != nil {
				return fmt.Errorf("failed to list shipments: %w", err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tSTATUS\tPRIO\tLANE\tSHIP DATE\tWEIGHT\tVOLUME\tVOYAGE")
			for _, s := range shipments {
				voyageCode, _, err := a.assignments.ActiveVoyageCode(ctx, s.Code())
				if err != nil {
					return err
				}
				prio := ""
				if s.IsPriority() {
					prio = "*"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s->%s\t%s\t%s\t%s\t%s\n",
					s.Code(), s.Status(), prio,
					s.Origin(), s.Destination(),
					s.ShipDate().Format("2006-01-02"),
					formatDim(s.WeightTons(), "t"),
					formatDim(s.VolumeM3(), "m3"),
					voyageCode)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 100, "Maximum shipments to list")

	return cmd
}

func formatDim(value *float64, unit string) string {
	if value == nil {
		return "-"
	}
	return fmt.Sprintf("%g%s", *value, unit)
}
