package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación sobre PostgreSQL (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste la cabecera de la factura de compra.
func (r *InvoiceRepo) Create(inv *entity.PurchaseInvoice) error {
	query := `
		INSERT INTO purchase_invoices (id, number, supplier_id, issue_date, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.Number, inv.SupplierID, inv.IssueDate, inv.Total, inv.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase invoice: %w", err)
	}
	return nil
}

// CreateLine persiste una línea de factura con su número de secuencia.
func (r *InvoiceRepo) CreateLine(line *entity.PurchaseInvoiceLine) error {
	query := `
		INSERT INTO purchase_invoice_lines (id, invoice_id, line_number, product_id, quantity, unit_cost)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.InvoiceID, line.LineNumber, line.ProductID, line.Quantity, line.UnitCost,
	)
	if err != nil {
		return fmt.Errorf("insert purchase invoice line: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera. Devuelve (nil, nil) si no existe.
func (r *InvoiceRepo) GetByID(id string) (*entity.PurchaseInvoice, error) {
	query := `
		SELECT id, number, supplier_id, issue_date, total, created_at
		FROM purchase_invoices WHERE id = $1`
	var inv entity.PurchaseInvoice
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&inv.ID, &inv.Number, &inv.SupplierID, &inv.IssueDate, &inv.Total, &inv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase invoice: %w", err)
	}
	return &inv, nil
}

// GetLines obtiene las líneas de la factura en orden de inserción.
func (r *InvoiceRepo) GetLines(invoiceID string) ([]*entity.PurchaseInvoiceLine, error) {
	query := `
		SELECT id, invoice_id, line_number, product_id, quantity, unit_cost
		FROM purchase_invoice_lines WHERE invoice_id = $1 ORDER BY line_number`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list purchase invoice lines: %w", err)
	}
	defer rows.Close()
	var lines []*entity.PurchaseInvoiceLine
	for rows.Next() {
		var l entity.PurchaseInvoiceLine
		if err := rows.Scan(&l.ID, &l.InvoiceID, &l.LineNumber, &l.ProductID, &l.Quantity, &l.UnitCost); err != nil {
			return nil, fmt.Errorf("scan purchase invoice line: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

// List proyecta el listado de facturas con nombre de proveedor.
func (r *InvoiceRepo) List(limit, offset int) ([]*repository.InvoiceSummary, error) {
	query := `
		SELECT i.id, i.number, s.name, i.issue_date, i.total
		FROM purchase_invoices i
		JOIN suppliers s ON s.id = i.supplier_id
		ORDER BY i.issue_date DESC, i.created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase invoices: %w", err)
	}
	defer rows.Close()
	var list []*repository.InvoiceSummary
	for rows.Next() {
		var s repository.InvoiceSummary
		if err := rows.Scan(&s.ID, &s.Number, &s.SupplierName, &s.IssueDate, &s.Total); err != nil {
			return nil, fmt.Errorf("scan invoice summary: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// UpdateTotal escribe el total calculado tras insertar todas las líneas.
func (r *InvoiceRepo) UpdateTotal(id string, total decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE purchase_invoices SET total = $2 WHERE id = $1`, id, total)
	if err != nil {
		return fmt.Errorf("update purchase invoice total: %w", err)
	}
	return nil
}
