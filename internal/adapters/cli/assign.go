package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewAssignCommand creates the assign command
func NewAssignCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign <shipment-code>",
		Short: "Assign one shipment to its best feasible voyage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath)
			if err != nil {
				return err
			}
			defer a.close()

			result, err := a.runner.AssignShipment(a.ctx(), args[0])
			if err != nil {
				return err
			}

			if !result.Assigned {
				fmt.Printf("Not assigned: %s\n", result.Reason)
				return nil
			}
			fmt.Printf("Assigned %s to %s\n", args[0], result.VoyageCode)
			fmt.Printf("  %s\n", result.Reason)
			return nil
		},
	}

	return cmd
}

// NewMoveCommand creates the move command
func NewMoveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <shipment-code> <voyage-code>",
		Short: "Move one shipment onto a named voyage",
		Long: `Commit an operator-chosen voyage for a shipment, replacing any existing
assignment. The pairing is still checked against lane, window and remaining
capacity before it commits.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath)
			if err != nil {
				return err
			}
			defer a.close()

			result, err := a.runner.MoveShipment(a.ctx(), args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Printf("Moved %s to %s\n", args[0], result.VoyageCode)
			fmt.Printf("  %s\n", result.Reason)
			return nil
		},
	}

	return cmd
}

// NewSuggestCommand creates the suggest command
func NewSuggestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest <shipment-code>",
		Short: "Resolve one shipment with advisor guidance",
		Long: `Ask the advisor to pick among the feasible voyages and commit its verified
pick. Without a usable advisor answer the deterministic ranking decides; with
no feasible voyage at all, a routing hint is printed instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath)
			if err != nil {
				return err
			}
			defer a.close()

			result, err := a.runner.Suggest(a.ctx(), args[0])
			if err != nil {
				return err
			}

			if !result.Committed {
				fmt.Printf("No voyage committed for %s\n", args[0])
				if result.Hint != "" {
					fmt.Printf("  Hint: %s\n", result.Hint)
				}
				return nil
			}
			fmt.Printf("Assigned %s to %s\n", args[0], result.VoyageCode)
			if result.Why != "" {
				fmt.Printf("  Why: %s\n", result.Why)
			}
			return nil
		},
	}

	return cmd
}
