package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/wallet-ledger/wallet_ledger/internal/config"
	"github.com/wallet-ledger/wallet_ledger/internal/ledger"
	"github.com/wallet-ledger/wallet_ledger/internal/middleware"
	"github.com/wallet-ledger/wallet_ledger/internal/notification"
	"github.com/wallet-ledger/wallet_ledger/internal/storage"
	"github.com/wallet-ledger/wallet_ledger/internal/transfer"
	"github.com/wallet-ledger/wallet_ledger/internal/wallet"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	RegisterHealthRoutes(app, d)

	// Stores: Postgres when a pool is present, otherwise the in-memory
	// store shared across all three concerns (dev fallback).
	var walletRepo wallet.Repository
	var recordStore ledger.Store
	var transferStore transfer.Store
	if d.DB != nil {
		walletRepo = wallet.NewPostgresRepository(d.DB)
		recordStore = ledger.NewPostgresStore(d.DB)
		transferStore = transfer.NewPostgresStore(d.DB)
	} else {
		mem := storage.NewMemory()
		walletRepo = mem
		recordStore = mem
		transferStore = mem
	}

	walletSvc := wallet.NewService(walletRepo)
	notifier := notification.NewLoggerNotifier(d.Logger)
	engine := transfer.NewService(transferStore, notifier).WithMaxRetries(d.Cfg.TransferRetries)
	reader := ledger.NewReader(recordStore)

	walletHandler := wallet.NewHandler(walletSvc)
	transferHandler := transfer.NewHandler(engine, reader, d.Cfg.TransferTimeout)

	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	RegisterWalletRoutes(api, walletHandler)
	RegisterTransferRoutes(api, transferHandler)

	return nil
}
