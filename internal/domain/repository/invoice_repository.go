package repository

import (
	"time"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// InvoiceSummary proyección para el listado de notas de compra.
type InvoiceSummary struct {
	ID           string
	Number       string
	SupplierName string
	IssueDate    time.Time
	Total        decimal.Decimal
}

// InvoiceRepository puerto de persistencia para notas fiscales de compra.
type InvoiceRepository interface {
	Create(invoice *entity.PurchaseInvoice) error
	CreateLine(line *entity.PurchaseInvoiceLine) error
	GetByID(id string) (*entity.PurchaseInvoice, error)
	GetLines(invoiceID string) ([]*entity.PurchaseInvoiceLine, error)
	List(limit, offset int) ([]*InvoiceSummary, error)
	UpdateTotal(id string, total decimal.Decimal) error
}
