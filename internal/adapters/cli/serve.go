package cli

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/cargoplan/cargoplan/internal/adapters/httpapi"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Start the CargoPlan HTTP API. When assignment batch scheduling is
configured, unassigned shipments are auto-assigned on the cron schedule.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath)
			if err != nil {
				return err
			}
			defer a.close()

			server := httpapi.NewServer(&a.cfg.Server, a.db,
				a.shipments, a.voyages, a.assignments, a.runner, a.registry, a.logger)

			if expr := a.cfg.Server.AutoAssignCron; expr != "" {
				scheduler := cron.New()
				_, err := scheduler.AddFunc(expr, func() {
					result, err := a.runner.AutoAssign(a.ctx())
					if err != nil {
						a.logger.Error("scheduled auto-assign failed", map[string]interface{}{
							"error": err.Error(),
						})
						return
					}
					a.logger.Info("scheduled auto-assign completed", map[string]interface{}{
						"assigned":  result.Assigned,
						"processed": result.Processed,
					})
				})
				if err != nil {
					return fmt.Errorf("invalid auto-assign cron expression %q: %w", expr, err)
				}
				scheduler.Start()
				defer scheduler.Stop()
			}

			a.logger.Info("starting http server", map[string]interface{}{
				"host": a.cfg.Server.Host,
				"port": a.cfg.Server.Port,
			})
			return server.Run()
		},
	}

	return cmd
}
