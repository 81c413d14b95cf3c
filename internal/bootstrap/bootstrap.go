// Package bootstrap initializes the infrastructure the bot depends on:
// logging, the spreadsheet ledger, and the optional Postgres mirror.
package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/skeemans/cafebot/internal/config"
	"github.com/skeemans/cafebot/internal/logger"
	"github.com/skeemans/cafebot/internal/sheet"
	"github.com/skeemans/cafebot/internal/storage"
)

// Options control the bootstrap pipeline. Hooks default to the real
// implementations and exist so tests can substitute them.
type Options struct {
	Config *config.Config

	LoggerInit func(*config.Config) error
	NewLedger  func(context.Context, config.SheetConfig) (*sheet.Ledger, error)
	Connect    func(config.DatabaseConfig) (*sqlx.DB, error)
	Migrate    func(config.DatabaseConfig) error
}

// Result exposes infrastructure initialized by the bootstrap pipeline.
// DB and Orders are nil when no database is configured.
type Result struct {
	Ledger *sheet.Ledger
	DB     *sqlx.DB
	Orders *storage.Orders
}

// Run initializes the logger, builds the ledger client, and, when a database
// host is configured, connects and applies migrations.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("bootstrap: nil config provided")
	}
	cfg := opts.Config

	loggerInit := opts.LoggerInit
	if loggerInit == nil {
		loggerInit = logger.InitLogger
	}
	if err := loggerInit(cfg); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}

	newLedger := opts.NewLedger
	if newLedger == nil {
		newLedger = sheet.New
	}
	ledger, err := newLedger(ctx, cfg.Sheet)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: ledger init failed: %w", err)
	}

	res := &Result{Ledger: ledger}

	if strings.TrimSpace(cfg.Database.Host) == "" {
		logger.DB.Info("db disabled",
			"event", "db.skip",
			"reason", "no_host_configured",
		)
		return res, nil
	}

	connect := opts.Connect
	if connect == nil {
		connect = storage.Connect
	}
	db, err := connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: database initialization failed: %w", err)
	}

	migrate := opts.Migrate
	if migrate == nil {
		migrate = storage.RunMigrations
	}
	if err := migrate(cfg.Database); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap: migrations failed: %w", err)
	}

	res.DB = db
	res.Orders = storage.NewOrders(db)
	return res, nil
}
