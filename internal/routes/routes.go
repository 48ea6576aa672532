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

	"github.com/tigz/wallet-api/internal/config"
	"github.com/tigz/wallet-api/internal/middleware"
	"github.com/tigz/wallet-api/internal/person"
	"github.com/tigz/wallet-api/internal/wallet"
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
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	RegisterHealthRoutes(app, d)

	var store wallet.Store
	if d.DB != nil {
		store = wallet.NewPostgresStore(d.DB)
	} else {
		store = wallet.NewMemoryStore()
	}
	limits := wallet.Limits{
		MinDeposit:  d.Cfg.Wallet.MinDeposit,
		MaxDeposit:  d.Cfg.Wallet.MaxDeposit,
		MinWithdraw: d.Cfg.Wallet.MinWithdraw,
		MaxWithdraw: d.Cfg.Wallet.MaxWithdraw,
	}
	walletSvc := wallet.NewService(store, limits, d.Logger)
	walletHandler := wallet.NewHandler(walletSvc)

	var personRepo person.Repository
	if d.DB != nil {
		personRepo = person.NewPostgresRepository(d.DB)
	} else {
		personRepo = person.NewMemoryRepository()
	}
	personSvc := person.NewService(personRepo)
	personHandler := person.NewHandler(personSvc)

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
	RegisterPersonRoutes(api, personHandler)

	return nil
}
