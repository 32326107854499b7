package cli

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/cargoplan/cargoplan/internal/adapters/advisor"
	"github.com/cargoplan/cargoplan/internal/adapters/events"
	"github.com/cargoplan/cargoplan/internal/adapters/metrics"
	"github.com/cargoplan/cargoplan/internal/adapters/persistence"
	"github.com/cargoplan/cargoplan/internal/application/assign"
	"github.com/cargoplan/cargoplan/internal/application/common"
	"github.com/cargoplan/cargoplan/internal/domain/assignment"
	"github.com/cargoplan/cargoplan/internal/domain/shared"
	"github.com/cargoplan/cargoplan/internal/domain/shipment"
	"github.com/cargoplan/cargoplan/internal/domain/voyage"
	"github.com/cargoplan/cargoplan/internal/infrastructure/config"
	"github.com/cargoplan/cargoplan/internal/infrastructure/database"
	"github.com/cargoplan/cargoplan/internal/infrastructure/logging"
)

// app wires configuration, storage, collaborators and the assignment engine
// for every CLI command. One app per process; the Runner inside it is the
// single writer for all committing operations.
type app struct {
	cfg         *config.Config
	db          *gorm.DB
	logger      common.Logger
	shipments   shipment.Repository
	voyages     voyage.Repository
	assignments assignment.Repository
	runner      *assign.Runner
	registry    *prometheus.Registry
	publisher   assign.Publisher
	closers     []func() error
}

func newApp(configPath string) (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.NewLogger(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	a := &app{
		cfg:    cfg,
		db:     db,
		logger: logger,
	}
	a.closers = append(a.closers, func() error { return database.Close(db) })

	clock := shared.NewRealClock()
	a.shipments = persistence.NewShipmentRepository(db)
	a.voyages = persistence.NewVoyageRepository(db)
	a.assignments = persistence.NewAssignmentRepository(db, clock)

	a.registry = prometheus.NewRegistry()
	recorder := metrics.NewAssignmentMetricsCollector(a.registry)

	var adv assign.Advisor
	if cfg.Advisor.Enabled {
		adv = advisor.NewClient(&cfg.Advisor, clock)
	}

	if cfg.Events.Enabled && len(cfg.Events.Brokers) > 0 {
		publisher := events.NewKafkaPublisher(cfg.Events.Brokers, cfg.Events.Topic)
		a.publisher = publisher
		a.closers = append(a.closers, publisher.Close)
	}

	checker := assignment.NewChecker(cfg.Assignment.DepartSlack)
	assigner := assignment.NewAssigner(checker, assignment.Mode(cfg.Assignment.ScoringMode))

	auto := assign.NewAutoAssignHandler(a.shipments, a.voyages, a.assignments,
		assigner, adv, a.publisher, recorder, clock).
		WithLimits(cfg.Assignment.ShipmentLimit, cfg.Assignment.VoyageLimit)
	single := assign.NewAssignShipmentHandler(a.shipments, a.voyages, a.assignments,
		assigner, a.publisher, recorder, clock).
		WithVoyageLimit(cfg.Assignment.VoyageLimit)
	suggest := assign.NewSuggestHandler(a.shipments, a.voyages, a.assignments,
		assigner, adv, a.publisher, recorder, clock).
		WithVoyageLimit(cfg.Assignment.VoyageLimit)
	planning := assign.NewPlanPreviewHandler(a.shipments, adv, recorder).
		WithShipmentLimit(cfg.Assignment.ShipmentLimit)

	a.runner = assign.NewRunner(auto, single, suggest, planning)
	return a, nil
}

// ctx returns a base context carrying the app logger
func (a *app) ctx() context.Context {
	return common.WithLogger(context.Background(), a.logger)
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("failed to close resource", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}
