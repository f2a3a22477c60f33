package cmd

import (
	"context"
	"fmt"

	"loyalty-sync/core/config"
	"loyalty-sync/core/database"
	"loyalty-sync/core/logger"
	"loyalty-sync/core/partner"
	"loyalty-sync/core/queue"
	"loyalty-sync/core/reconcile"
	"loyalty-sync/feature/customers"
	"loyalty-sync/feature/products"
	"loyalty-sync/feature/saleslines"
	"loyalty-sync/feature/turnovers"

	"go.uber.org/zap"
)

// app holds the wired components of one process.
type app struct {
	cfg       *config.Config
	log       *zap.Logger
	connector database.Connector
	submitter *turnovers.Submitter
	orch      *reconcile.Orchestrator
}

// newApp loads configuration and wires every component.
// Configuration errors surface here, before any network or database call.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig(configDir, envProfile)
	if err != nil {
		return nil, err
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(l)

	api := partner.NewClient(cfg.Partner)
	connector := database.NewConnector(cfg.Database)

	failed, err := queue.Open[turnovers.Turnover](cfg.Queue, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open failed-turnover queue: %w", err)
	}
	if err := queue.Prepare(ctx, failed); err != nil {
		return nil, err
	}

	submitter := turnovers.NewSubmitter(api, failed, turnovers.Options{
		Country:   cfg.Partner.Country,
		TestMode:  cfg.Partner.TestMode,
		BatchSize: cfg.Partner.BatchSize,
	}, l)

	orch := reconcile.New(reconcile.Deps{
		Customers: customers.NewRegistry(api, connector, cfg.Database, l),
		Sales:     saleslines.NewRepository(connector, cfg.Database, l),
		Products:  products.NewClient(api, cfg.Partner.ProductBatchSize, l),
		Booker:    submitter,
	}, reconcile.Settings{
		Wholesaler: cfg.Partner.Wholesaler,
		Country:    cfg.Partner.Country,
	}, l)

	return &app{cfg: cfg, log: l, connector: connector, submitter: submitter, orch: orch}, nil
}

// checkDatabase opens and releases one connection.
func (a *app) checkDatabase(ctx context.Context) error {
	db, err := a.connector.Open(ctx)
	if err != nil {
		return err
	}
	return database.Close(db)
}

// checkQueue reads the failed queue.
func (a *app) checkQueue(ctx context.Context) error {
	_, err := a.submitter.ReadFailed(ctx)
	return err
}
