package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseInvoice cabecera de una nota fiscal de compra (manual o importada
// desde XML NFe). Total se calcula como Σ cantidad × costo unitario de las
// líneas, una vez que todas se procesaron. Number es único por proveedor
// (no se valida globalmente aquí).
type PurchaseInvoice struct {
	ID         string
	SupplierID string
	Number     string
	IssueDate  time.Time
	Total      decimal.Decimal
	CreatedAt  time.Time
	Lines      []*PurchaseInvoiceLine
}

// ComputeTotal recalcula el total desde las líneas.
func (n *PurchaseInvoice) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range n.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// PurchaseInvoiceLine línea de nota de compra: cantidad recibida y costo
// unitario al momento de la recepción.
type PurchaseInvoiceLine struct {
	ID         string
	InvoiceID  string
	LineNumber int
	ProductID  string
	Quantity   int64
	UnitCost   decimal.Decimal
}

// Subtotal cantidad × costo unitario.
func (l *PurchaseInvoiceLine) Subtotal() decimal.Decimal {
	return decimal.NewFromInt(l.Quantity).Mul(l.UnitCost)
}
