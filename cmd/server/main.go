package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"restaurant-panel/internal/audit"
	"restaurant-panel/internal/auth"
	"restaurant-panel/internal/bank"
	"restaurant-panel/internal/blob"
	"restaurant-panel/internal/config"
	"restaurant-panel/internal/dashboard"
	"restaurant-panel/internal/database"
	"restaurant-panel/internal/events"
	"restaurant-panel/internal/ingest"
	"restaurant-panel/internal/notify"
	"restaurant-panel/internal/orders"
	"restaurant-panel/internal/payouts"
	"restaurant-panel/internal/products"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()
	loc := cfg.Location()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Fatalf("[FATAL] could not connect to redis at %s: %v", cfg.RedisAddr, err)
	}
	cancelPing()

	profiles := auth.NewGormProfileStore(db)
	guard := auth.NewGuard(profiles)
	revoker := auth.NewRevoker(rdb)
	authenticator := auth.NewAuthenticator(cfg.JWTSecret, profiles, guard, auth.NewThrottle(rdb))

	notifier := notify.NewRedisNotifier(rdb)
	recorder := audit.NewGormRecorder(db)

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.KafkaBroker != "" {
		writer := events.NewKafkaWriter(cfg.KafkaBroker, cfg.KafkaStatusTopic)
		defer writer.Close()
		publisher = events.NewKafkaPublisher(writer)
	}

	orderRepo := orders.NewGormRepository(db)
	orderSvc := orders.NewService(orderRepo, recorder, notifier, publisher, loc)
	productRepo := products.NewGormRepository(db)
	productSvc := products.NewService(productRepo, recorder, notifier)
	bankSvc := bank.NewService(bank.NewGormRepository(db), recorder, notifier)
	store := blob.NewLocalStore(cfg.BlobPath, cfg.PublicBaseURL)

	app := fiber.New(fiber.Config{
		BodyLimit: 6 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("[ERROR] unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	app.Use(recover.New())
	app.Use(logger.New())

	// CORS_ALLOWED_ORIGINS is a comma separated list
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	app.Static("/blobs", cfg.BlobPath)

	api := app.Group("/api")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Public auth
	api.Post("/auth/login", auth.LoginHandler(authenticator))

	// EventSource cannot set headers, the stream authenticates with a ticket
	api.Get("/events", auth.StreamTicketMiddleware(cfg.JWTSecret, guard, revoker), notify.StreamHandler(notifier, ctx))

	// Everything else needs a restaurant session
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg.JWTSecret, guard, revoker))

	protected.Get("/auth/me", auth.MeHandler())
	protected.Post("/auth/logout", auth.LogoutHandler(revoker))

	// Orders
	protected.Get("/orders", orders.ListOrdersHandler(orderSvc))
	protected.Get("/orders/export", orders.ExportHandler(orderSvc))
	protected.Get("/orders/:id", orders.GetOrderHandler(orderSvc))
	protected.Get("/orders/:id/receipt", orders.ReceiptHandler(orderSvc))
	protected.Post("/orders/:id/status", orders.UpdateStatusHandler(orderSvc))

	// Dashboard
	protected.Get("/dashboard", dashboard.SummaryHandler(orderRepo, productRepo, loc))
	protected.Get("/dashboard/revenue-chart", dashboard.RevenueChartHandler(orderRepo, loc))

	// Products
	protected.Get("/products", products.ListProductsHandler(productSvc))
	protected.Post("/products", products.CreateProductHandler(productSvc))
	protected.Get("/products/:id", products.GetProductHandler(productSvc))
	protected.Put("/products/:id", products.UpdateProductHandler(productSvc))
	protected.Delete("/products/:id", products.DeleteProductHandler(productSvc))
	protected.Get("/products/:id/qrcode", products.QRCodeHandler(productSvc, products.PNGQRGenerator{}, cfg.PublicBaseURL))
	protected.Post("/uploads/product-image", products.UploadImageHandler(store))
	protected.Get("/categories", products.ListCategoriesHandler(productSvc))

	// Bank details and payouts
	protected.Get("/bank-details", bank.GetBankDetailsHandler(bankSvc))
	protected.Put("/bank-details", bank.SaveBankDetailsHandler(bankSvc))
	protected.Get("/payouts", payouts.ListPayoutsHandler(payouts.NewGormRepository(db)))

	// Live updates and history
	protected.Post("/events/ticket", auth.StreamTicketHandler(cfg.JWTSecret))
	protected.Get("/audit-logs", audit.ListAuditLogsHandler(recorder))

	if cfg.KafkaBroker != "" {
		var alerter ingest.Alerter
		if cfg.TelegramToken != "" {
			tg, err := ingest.NewTelegramAlerter(cfg.TelegramToken, profiles)
			if err != nil {
				log.Printf("[WARN] telegram alerts disabled: %v", err)
			} else {
				alerter = tg
			}
		}

		reader := events.NewKafkaReader(cfg.KafkaBroker, cfg.KafkaOrdersTopic, cfg.KafkaGroupID)
		defer reader.Close()
		go ingest.NewConsumer(reader, orderSvc, alerter).Start(ctx)
	}

	go func() {
		<-ctx.Done()
		log.Println("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("[ERROR] shutdown: %v", err)
		}
	}()

	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
