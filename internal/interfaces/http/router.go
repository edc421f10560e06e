package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/estoque-api/internal/application/catalog"
	"github.com/jhoicas/estoque-api/internal/application/invoices"
	"github.com/jhoicas/estoque-api/internal/application/orders"
	"github.com/jhoicas/estoque-api/internal/application/parties"
	"github.com/jhoicas/estoque-api/internal/application/reports"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	OrderUC   *orders.OrderUseCase
	InvoiceUC *invoices.InvoiceUseCase
	ProductUC *catalog.ProductUseCase
	PartyUC   *parties.UseCase
	ReportUC  *reports.UseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Deactivate)
	products.Get("/:id/movements", productHandler.Movements)

	// Orders (protegido)
	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Patch("/:id/status", orderHandler.SetStatus)
	ordersGroup.Delete("/:id", orderHandler.Cancel)

	// Purchase invoices (protegido)
	invoicesGroup := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	invoicesGroup.Post("/", invoiceHandler.Create)
	invoicesGroup.Post("/import-xml", invoiceHandler.ImportXML)
	invoicesGroup.Get("/", invoiceHandler.List)
	invoicesGroup.Get("/:id", invoiceHandler.GetByID)

	// Suppliers / Customers (protegido)
	partyHandler := NewPartyHandler(deps.PartyUC)
	suppliers := protected.Group("/suppliers")
	suppliers.Post("/", partyHandler.CreateSupplier)
	suppliers.Get("/", partyHandler.ListSuppliers)
	suppliers.Get("/:id", partyHandler.GetSupplier)
	customers := protected.Group("/customers")
	customers.Post("/", partyHandler.CreateCustomer)
	customers.Get("/", partyHandler.ListCustomers)
	customers.Get("/:id", partyHandler.GetCustomer)

	// Reports (protegido)
	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reportsGroup.Get("/stock-overview", reportHandler.StockOverview)
}
