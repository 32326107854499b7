package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cargoplan/cargoplan/internal/domain/shipment"
	"github.com/cargoplan/cargoplan/internal/domain/voyage"
)

// NewSeedCommand creates the seed command
func NewSeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo shipments and voyages",
		Long:  `Insert a small demo dataset for trying out assignment locally.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath)
			if err != nil {
				return err
			}
			defer a.close()

			ctx := a.ctx()
			if err := seedShipments(ctx, a); err != nil {
				return err
			}
			if err := seedVoyages(ctx, a); err != nil {
				return err
			}
			fmt.Println("Demo data loaded")
			return nil
		},
	}

	return cmd
}

func seedShipments(ctx context.Context, a *app) error {
	base := time.Now().AddDate(0, 0, 3).Truncate(24 * time.Hour)

	rows := []struct {
		code        string
		origin      string
		destination string
		dayOffset   int
		transitDays int
		priority    bool
		weightTons  *float64
		volumeM3    *float64
	}{
		{"SHP-001", "Mumbai", "Chennai", 0, 5, true, f64(12), f64(80)},
		{"SHP-002", "Mumbai", "Chennai", 0, 5, false, f64(30), f64(210)},
		{"SHP-003", "Mumbai", "Chennai", 2, 4, false, f64(8), nil},
		{"SHP-004", "Chennai", "Kolkata", 1, 3, false, nil, f64(45)},
		{"SHP-005", "Mumbai", "Kochi", 4, 2, true, f64(18), f64(120)},
	}

	for _, row := range rows {
		s, err := shipment.NewShipment(row.code, row.origin, row.destination,
			base.AddDate(0, 0, row.dayOffset), row.transitDays, row.priority,
			row.weightTons, row.volumeM3)
		if err != nil {
			return fmt.Errorf("failed to build shipment %s: %w", row.code, err)
		}
		if err := a.shipments.Save(ctx, s); err != nil {
			return fmt.Errorf("failed to save shipment %s: %w", row.code, err)
		}
	}
	return nil
}

func seedVoyages(ctx context.Context, a *app) error {
	base := time.Now().AddDate(0, 0, 2).Truncate(24 * time.Hour)

	rows := []struct {
		code        string
		vesselName  string
		origin      string
		destination string
		departDay   int
		arriveDay   int
		weightCapT  *float64
		volumeCapM3 *float64
	}{
		{"VOY-001", "MV Coastal Star", "Mumbai", "Chennai", 1, 7, f64(40), f64(300)},
		{"VOY-002", "MV Malabar", "Mumbai", "Chennai", 4, 10, f64(60), f64(420)},
		{"VOY-003", "MV Bay Runner", "Chennai", "Kolkata", 2, 6, f64(25), nil},
		{"VOY-004", "MV Konkan", "Mumbai", "Kochi", 6, 9, nil, f64(200)},
	}

	for _, row := range rows {
		v, err := voyage.NewVoyage(row.code, row.vesselName, row.origin, row.destination,
			base.AddDate(0, 0, row.departDay), base.AddDate(0, 0, row.arriveDay),
			row.weightCapT, row.volumeCapM3)
		if err != nil {
			return fmt.Errorf("failed to build voyage %s: %w", row.code, err)
		}
		if err := a.voyages.Save(ctx, v); err != nil {
			return fmt.Errorf("failed to save voyage %s: %w", row.code, err)
		}
	}
	return nil
}

func f64(v float64) *float64 { return &v }
