package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/imprenta-pro/internal/application/analytics"
	"github.com/tu-usuario/imprenta-pro/internal/application/auth"
	"github.com/tu-usuario/imprenta-pro/internal/application/billing"
	"github.com/tu-usuario/imprenta-pro/internal/application/crm"
	"github.com/tu-usuario/imprenta-pro/internal/application/production"
	"github.com/tu-usuario/imprenta-pro/internal/application/usecase"
	"github.com/tu-usuario/imprenta-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	VendorUC       *usecase.VendorUseCase
	PurchaseOrders *billing.PurchaseOrderUseCase
	SubmitInvoice  *billing.SubmitInvoiceUseCase
	ReviewInvoice  *billing.ReviewInvoiceUseCase
	ExportInvoice  *billing.ExportInvoiceUseCase
	JobUC          *production.JobUseCase
	SubstitutionUC *production.SubstitutionUseCase
	DeliveryUC     *production.DeliveryUseCase
	ClientUC       *crm.ClientUseCase
	QuoteUC        *crm.QuoteUseCase
	DashboardUC    *analytics.DashboardUseCase
	NotificationUC *analytics.NotificationUseCase
	WS             *WSHandler
	JWTSecret      string
}

// Router registra las rutas REST y los canales WebSocket.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	staffOnly := RequireRole(entity.RoleAdmin, entity.RoleAccountManager, entity.RoleProduction)
	managersOnly := RequireRole(entity.RoleAdmin, entity.RoleAccountManager)

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Vendors (solo roles internos)
	vendors := protected.Group("/vendors", staffOnly)
	vendorHandler := NewVendorHandler(deps.VendorUC)
	vendors.Post("/", vendorHandler.Create)
	vendors.Get("/", vendorHandler.List)
	vendors.Get("/:id", vendorHandler.GetByID)
	vendors.Patch("/:id/active", vendorHandler.SetActive)

	// Purchase orders
	orders := protected.Group("/purchase-orders")
	poHandler := NewPurchaseOrderHandler(deps.PurchaseOrders)
	orders.Post("/", managersOnly, poHandler.Create)
	orders.Get("/", poHandler.ListByVendor)
	orders.Get("/:id", poHandler.GetByID)

	// Vendor invoices
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.SubmitInvoice, deps.ReviewInvoice, deps.ExportInvoice)
	invoices.Post("/", invoiceHandler.Submit)
	invoices.Get("/", invoiceHandler.ListByVendor)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Post("/:id/validate", managersOnly, invoiceHandler.Validate)
	invoices.Post("/:id/approve", managersOnly, invoiceHandler.Approve)
	invoices.Get("/:id/export.xml", managersOnly, invoiceHandler.ExportXML)
	invoices.Get("/:id/report.pdf", managersOnly, invoiceHandler.ReportPDF)

	// Jobs
	jobs := protected.Group("/jobs")
	jobHandler := NewJobHandler(deps.JobUC)
	substitutionHandler := NewSubstitutionHandler(deps.SubstitutionUC)
	deliveryHandler := NewDeliveryHandler(deps.DeliveryUC)
	jobs.Post("/", staffOnly, jobHandler.Create)
	jobs.Post("/deadline-scan", staffOnly, jobHandler.ScanDeadlines)
	jobs.Get("/", jobHandler.ListByStatus)
	jobs.Get("/:id", jobHandler.GetByID)
	jobs.Patch("/:id/status", staffOnly, jobHandler.UpdateStatus)
	jobs.Patch("/:id/progress", staffOnly, jobHandler.UpdateProgress)
	jobs.Patch("/:id/assignee", staffOnly, jobHandler.Assign)
	jobs.Get("/:id/substitutions", substitutionHandler.ListByJob)
	jobs.Get("/:id/deliveries", deliveryHandler.ListByJob)

	// Substitutions
	substitutions := protected.Group("/substitutions")
	substitutions.Post("/", RequireRole(entity.RoleVendor), substitutionHandler.Create)
	substitutions.Get("/:id", substitutionHandler.GetByID)
	substitutions.Post("/:id/approve", staffOnly, substitutionHandler.Approve)
	substitutions.Post("/:id/reject", staffOnly, substitutionHandler.Reject)

	// Deliveries
	deliveries := protected.Group("/deliveries")
	deliveries.Post("/", staffOnly, deliveryHandler.Record)
	deliveries.Get("/", deliveryHandler.ListByVendor)

	// Clients y quotes (portal comercial)
	clients := protected.Group("/clients", managersOnly)
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)

	quotes := protected.Group("/quotes", managersOnly)
	quoteHandler := NewQuoteHandler(deps.QuoteUC)
	quotes.Post("/", quoteHandler.Create)
	quotes.Get("/", quoteHandler.ListByClient)
	quotes.Get("/:id", quoteHandler.GetByID)
	quotes.Post("/:id/send", quoteHandler.Send)
	quotes.Post("/:id/accept", quoteHandler.Accept)
	quotes.Post("/:id/reject", quoteHandler.Reject)

	// Dashboard y notificaciones
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.NotificationUC)
	protected.Get("/dashboard/stats", staffOnly, dashboardHandler.Stats)
	protected.Get("/notifications", dashboardHandler.ListNotifications)
	protected.Post("/notifications/:id/read", dashboardHandler.MarkNotificationRead)

	// Canales WebSocket (token por query)
	ws := app.Group("/ws", Upgrade(deps.JWTSecret))
	ws.Get("/jobs/:id", deps.WS.Job())
	ws.Get("/dashboards/:kind/:userID", deps.WS.Dashboard())
	ws.Get("/notifications", deps.WS.Notifications())
	ws.Get("/substitutions/:id", deps.WS.Substitution())
}
