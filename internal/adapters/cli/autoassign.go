package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewAutoAssignCommand creates the autoassign command
func NewAutoAssignCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "autoassign",
		Short: "Assign all unassigned shipments in one batch",
		Long: `Run one committing batch pass: every assignable unassigned shipment is
matched against the upcoming voyages and committed where feasible.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath)
			if err != nil {
				return err
			}
			defer a.close()

			result, err := a.runner.AutoAssign(a.ctx())
			if err != nil {
				return fmt.Errorf("auto-assign failed: %w", err)
			}

			fmt.Printf("Assigned %d of %d shipments\n", result.Assigned, result.Processed)
			for _, pair := range result.Pairs {
				fmt.Printf("  %s -> %s\n", pair.ShipmentCode, pair.VoyageCode)
			}
			for _, msg := range result.Messages {
				fmt.Printf("  ! %s\n", msg)
			}
			return nil
		},
	}

	return cmd
}
