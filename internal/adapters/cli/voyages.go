package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewVoyagesCommand creates the voyages command group
func NewVoyagesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "voyages",
		Short: "Inspect voyages",
	}

	cmd.AddCommand(newVoyagesListCommand())
	cmd.AddCommand(newVoyagesManifestCommand())

	return cmd
}

func newVoyagesListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List voyages ordered by departure",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath)
			if err != nil {
				return err
			}
			defer a.close()

			voyages, err := a.voyages.List(a.ctx(), limit)
			if err != nil {
				return fmt.Errorf("failed to list voyages: %w", err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tVESSEL\tLANE\tDEPART\tARRIVE\tWEIGHT CAP\tVOLUME CAP")
			for _, v := range voyages {
				fmt.Fprintf(w, "%s\t%s\t%s->%s\t%s\t%s\t%s\t%s\n",
					v.Code(), v.VesselName(),
					v.Origin(), v.Destination(),
					v.DepartAt().Format("2006-01-02"),
					v.ArriveBy().Format("2006-01-02"),
					formatDim(v.WeightCapT(), "t"),
					formatDim(v.VolumeCapM3(), "m3"))
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 100, "Maximum voyages to list")

	return cmd
}

func newVoyagesManifestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manifest <voyage-code>",
		Short: "List shipments assigned to a voyage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath)
			if err != nil {
				return err
			}
			defer a.close()

			assignments, err := a.assignments.ListForVoyage(a.ctx(), args[0])
			if err != nil {
				return err
			}

			if len(assignments) == 0 {
				fmt.Printf("No shipments assigned to %s\n", args[0])
				return nil
			}
			for _, entry := range assignments {
				fmt.Printf("%s  assigned %s\n",
					entry.ShipmentCode(), entry.AssignedAt().Format("2006-01-02 15:04"))
			}
			return nil
		},
	}

	return cmd
}
