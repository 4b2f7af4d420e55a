package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tu-usuario/imprenta-pro/internal/application/access"
	"github.com/tu-usuario/imprenta-pro/internal/application/analytics"
	"github.com/tu-usuario/imprenta-pro/internal/application/auth"
	"github.com/tu-usuario/imprenta-pro/internal/application/billing"
	"github.com/tu-usuario/imprenta-pro/internal/application/crm"
	"github.com/tu-usuario/imprenta-pro/internal/application/notify"
	"github.com/tu-usuario/imprenta-pro/internal/application/production"
	"github.com/tu-usuario/imprenta-pro/internal/application/usecase"
	"github.com/tu-usuario/imprenta-pro/internal/domain/validation"
	"github.com/tu-usuario/imprenta-pro/internal/infrastructure/accounting"
	infrapdf "github.com/tu-usuario/imprenta-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/imprenta-pro/internal/infrastructure/postgres"
	"github.com/tu-usuario/imprenta-pro/internal/realtime"
	httpRouter "github.com/tu-usuario/imprenta-pro/internal/interfaces/http"
	"github.com/tu-usuario/imprenta-pro/pkg/config"
	"github.com/tu-usuario/imprenta-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	vendorRepo := postgres.NewVendorRepository(pool)
	poRepo := postgres.NewPurchaseOrderRepository(pool)
	invoiceRepo := postgres.NewVendorInvoiceRepository(pool)
	jobRepo := postgres.NewJobRepository(pool)
	substitutionRepo := postgres.NewSubstitutionRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	quoteRepo := postgres.NewQuoteRepository(pool)
	deliveryRepo := postgres.NewDeliveryRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	hub := realtime.NewHub(log)
	notifier := notify.NewNotifier(notificationRepo, hub, log)
	checker := access.NewChecker(jobRepo, substitutionRepo)

	policy := validation.Policy{
		TolerancePct: cfg.Validation.TolerancePct,
		StaleDays:    cfg.Validation.StaleDays,
	}

	authUC := auth.NewAuthUseCase(userRepo, vendorRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	vendorUC := usecase.NewVendorUseCase(vendorRepo)
	poUC := billing.NewPurchaseOrderUseCase(poRepo, vendorRepo)
	submitUC := billing.NewSubmitInvoiceUseCase(txRunner, poRepo)
	reviewUC := billing.NewReviewInvoiceUseCase(
		invoiceRepo, poRepo, vendorRepo, userRepo, notifier, policy, log,
	)
	exportUC := billing.NewExportInvoiceUseCase(
		invoiceRepo, poRepo, vendorRepo,
		accounting.NewXMLExporter(), infrapdf.NewMarotoInvoiceReport(), policy,
	)
	jobUC := production.NewJobUseCase(jobRepo, dashboardRepo, hub, notifier, log)
	substitutionUC := production.NewSubstitutionUseCase(
		substitutionRepo, jobRepo, userRepo, dashboardRepo, hub, notifier, log,
	)
	deliveryUC := production.NewDeliveryUseCase(deliveryRepo, jobRepo)
	clientUC := crm.NewClientUseCase(clientRepo)
	quoteUC := crm.NewQuoteUseCase(quoteRepo, clientRepo, jobRepo)
	dashboardUC := analytics.NewDashboardUseCase(dashboardRepo)
	notificationUC := analytics.NewNotificationUseCase(notificationRepo)
	wsHandler := httpRouter.NewWSHandler(hub, checker, jobUC, substitutionUC, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Imprenta Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		VendorUC:       vendorUC,
		PurchaseOrders: poUC,
		SubmitInvoice:  submitUC,
		ReviewInvoice:  reviewUC,
		ExportInvoice:  exportUC,
		JobUC:          jobUC,
		SubstitutionUC: substitutionUC,
		DeliveryUC:     deliveryUC,
		ClientUC:       clientUC,
		QuoteUC:        quoteUC,
		DashboardUC:    dashboardUC,
		NotificationUC: notificationUC,
		WS:             wsHandler,
		JWTSecret:      cfg.JWT.Secret,
	})

	// Barrido periódico de vencimientos. El endpoint deadline-scan permite
	// dispararlo a mano.
	scanCtx, stopScan := context.WithCancel(ctx)
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-scanCtx.Done():
				return
			case <-ticker.C:
				if emitted, err := jobUC.ScanDeadlines(time.Now()); err != nil {
					log.Error().Err(err).Msg("barrido de vencimientos")
				} else if emitted > 0 {
					log.Info().Int("alerts", emitted).Msg("alertas de vencimiento emitidas")
				}
			}
		}
	}()

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stopScan()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
