// Command cafebot runs the café self-checkout Telegram bot.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/skeemans/cafebot/internal/bootstrap"
	"github.com/skeemans/cafebot/internal/config"
	"github.com/skeemans/cafebot/internal/handlers"
	"github.com/skeemans/cafebot/internal/logger"
	"github.com/skeemans/cafebot/internal/order"
	tg "github.com/skeemans/cafebot/internal/telegram"
	"github.com/skeemans/cafebot/internal/telegram/router"
	"github.com/skeemans/cafebot/internal/telegram/sender"
)

const defaultConfigPath = "config.yaml"

func main() {
	if err := run(); err != nil {
		log.Fatalf("cafebot: %v", err)
	}
}

func run() error {
	// .env is optional; real deployments configure via environment.
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = defaultConfigPath
	}
	log.Printf("loading config: %s", cfgPath)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	infra, err := bootstrap.Run(ctx, bootstrap.Options{Config: cfg})
	if err != nil {
		return err
	}
	defer func() {
		if err := logger.Shutdown(); err != nil {
			log.Printf("logger shutdown error: %v", err)
		}
	}()
	if infra.DB != nil {
		defer infra.DB.Close()
	}

	sessions := order.NewStore()
	reg := tg.NewRegistry()
	dispatcher := sender.NewDispatcher(sender.Options{})

	var mirror handlers.OrderMirror
	if infra.Orders != nil {
		mirror = infra.Orders
	}

	h := handlers.New(handlers.Deps{
		Config:     cfg,
		Sessions:   sessions,
		Ledger:     infra.Ledger,
		Mirror:     mirror,
		Dispatcher: dispatcher,
	})
	h.Register(reg)

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{AdminID: cfg.Telegram.AdminID})
	routes = append(routes,
		router.TextRoute(sessions, reg),
		router.CallbackRoute(reg),
	)

	startedAt := time.Now()
	return tg.Run(ctx, tg.RunOptions{
		Config:      cfg,
		Registry:    reg,
		Dispatcher:  dispatcher,
		Middlewares: tg.DefaultMiddlewares(cfg, nil),
		Routes:      routes,
		OnStart: func(ctx context.Context, rt tg.Runtime) error {
			logger.L.With("component", "app").Info("app ready",
				slog.String("event", "ready"),
				slog.Duration("startup_duration", logger.RoundMS(time.Since(startedAt))),
			)
			return nil
		},
		OnStop: func(ctx context.Context, rt tg.Runtime) error {
			logger.L.With("component", "app").Info("shutting down...",
				slog.String("event", "shutdown"),
			)
			return nil
		},
	})
}
