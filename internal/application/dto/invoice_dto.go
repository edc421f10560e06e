package dto

import "github.com/shopspring/decimal"

// CreateInvoiceRequest body para POST /api/invoices (entrada manual).
type CreateInvoiceRequest struct {
	SupplierID string               `json:"supplier_id"`
	Number     string               `json:"number"`
	IssueDate  string               `json:"issue_date"` // YYYY-MM-DD
	Items      []InvoiceItemRequest `json:"items"`
}

// InvoiceItemRequest línea de nota de compra manual.
type InvoiceItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// InvoiceResponse nota de compra con detalle.
type InvoiceResponse struct {
	ID           string                `json:"id"`
	SupplierID   string                `json:"supplier_id"`
	SupplierName string                `json:"supplier_name,omitempty"`
	Number       string                `json:"number"`
	IssueDate    string                `json:"issue_date"`
	Total        decimal.Decimal       `json:"total"`
	Lines        []InvoiceLineResponse `json:"lines"`
}

// InvoiceLineResponse línea de la nota en la respuesta.
type InvoiceLineResponse struct {
	ID         string          `json:"id"`
	LineNumber int             `json:"line_number"`
	Product    ProductSummary  `json:"product"`
	Quantity   int64           `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

// InvoiceSummaryResponse fila del listado de notas de compra.
type InvoiceSummaryResponse struct {
	ID           string          `json:"id"`
	Number       string          `json:"number"`
	SupplierName string          `json:"supplier_name"`
	IssueDate    string          `json:"issue_date"`
	Total        decimal.Decimal `json:"total"`
}

// ImportXMLResponse resumen de una importación de XML NFe.
type ImportXMLResponse struct {
	InvoiceID    string          `json:"invoice_id"`
	Number       string          `json:"number"`
	SupplierName string          `json:"supplier_name"`
	Total        decimal.Decimal `json:"total"`
	TotalItems   int             `json:"total_items"`
}
