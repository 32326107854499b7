package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cargoplan/cargoplan/internal/application/assign"
)

// NewPlanCommand creates the plan command
func NewPlanCommand() *cobra.Command {
	var (
		vesselName  string
		weightCap   float64
		volumeCap   float64
		origin      string
		destination string
		startAfter  string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Preview a First-Fit-Decreasing load plan",
		Long: `Pack the unassigned shipment pool onto a hypothetical vessel without
committing anything. Zero capacity flags mean unlimited in that dimension.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath)
			if err != nil {
				return err
			}
			defer a.close()

			req := assign.PlanRequest{
				VesselName:  vesselName,
				Origin:      origin,
				Destination: destination,
			}
			if weightCap > 0 {
				req.WeightCapT = &weightCap
			}
			if volumeCap > 0 {
				req.VolumeCapM3 = &volumeCap
			}
			if startAfter != "" {
				parsed, err := time.Parse("2006-01-02", startAfter)
				if err != nil {
					return fmt.Errorf("invalid --start-after %q: expected YYYY-MM-DD", startAfter)
				}
				req.StartAfter = parsed
			}

			result, err := a.runner.PlanPreview(a.ctx(), req)
			if err != nil {
				return fmt.Errorf("plan preview failed: %w", err)
			}

			plan := result.Plan
			fmt.Printf("Planned %d shipments (weight %d%%, volume %d%% utilized)\n",
				len(plan.Assigned), plan.Utilization.WeightPct, plan.Utilization.VolumePct)
			for _, code := range plan.Assigned {
				fmt.Printf("  + %s\n", code)
			}
			for _, sk := range plan.Skipped {
				fmt.Printf("  - %s (%s)\n", sk.ShipmentCode, sk.Reason)
			}
			if result.Narrative != "" {
				fmt.Printf("\n%s\n", result.Narrative)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&vesselName, "vessel", "", "Vessel name for the preview")
	cmd.Flags().Float64Var(&weightCap, "weight-cap", 0, "Weight capacity in tons (0 = unlimited)")
	cmd.Flags().Float64Var(&volumeCap, "volume-cap", 0, "Volume capacity in cubic meters (0 = unlimited)")
	cmd.Flags().StringVar(&origin, "origin", "", "Only include shipments whose origin matches")
	cmd.Flags().StringVar(&destination, "destination", "", "Only include shipments whose destination matches")
	cmd.Flags().StringVar(&startAfter, "start-after", "", "Only include shipments shipping on or after this date (YYYY-MM-DD)")

	return cmd
}
