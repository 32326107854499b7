package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cargoplan",
		Short: "CargoPlan - assign shipments to scheduled voyages",
		Long: `CargoPlan plans and commits shipment-to-voyage assignments against
remaining vessel capacity, lane and schedule constraints.

Examples:
  cargoplan serve
  cargoplan shipments list --limit 50
  cargoplan voyages list
  cargoplan assign SHP-001
  cargoplan move SHP-001 VOY-002
  cargoplan suggest SHP-001
  cargoplan autoassign
  cargoplan plan --vessel "MV Coastal" --weight-cap 120 --volume-cap 900
  cargoplan seed`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to configuration file (default: search ./, ./configs, /etc/cargoplan)")

	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewShipmentsCommand())
	rootCmd.AddCommand(NewVoyagesCommand())
	rootCmd.AddCommand(NewAssignCommand())
	rootCmd.AddCommand(NewMoveCommand())
	rootCmd.AddCommand(NewSuggestCommand())
	rootCmd.AddCommand(NewAutoAssignCommand())
	rootCmd.AddCommand(NewPlanCommand())
	rootCmd.AddCommand(NewSeedCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
