package invoices

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/stock"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/infrastructure/nfe"
	"github.com/shopspring/decimal"
)

// ImportXML procesa una NFe: parsea el XML completo antes de abrir la
// transacción, resuelve proveedor (por CNPJ) y productos (por nombre exacto)
// y entrega las líneas al mismo núcleo transaccional que la entrada manual.
// Con AutoProvision activo, proveedor y productos faltantes se crean con
// valores heurísticos (contacto placeholder; precio de venta = costo ×
// MarkupFactor); desactivado, cualquier faltante aborta la importación.
func (uc *InvoiceUseCase) ImportXML(ctx context.Context, userID string, raw []byte) (*dto.ImportXMLResponse, error) {
	if len(raw) == 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	doc, err := uc.parser.Parse(raw, now)
	if err != nil {
		return nil, err
	}

	invoice := &entity.PurchaseInvoice{
		ID:        uuid.New().String(),
		Number:    doc.Number,
		IssueDate: doc.IssueDate,
		Total:     decimal.Zero,
		CreatedAt: now,
	}
	supplierName := ""
	productNames := make(map[string]string)

	err = uc.txRunner.Run(ctx, func(r stock.Repos) error {
		supplier, err := uc.resolveSupplier(r, doc, now)
		if err != nil {
			return err
		}
		invoice.SupplierID = supplier.ID
		supplierName = supplier.Name

		lines := make([]receiveLine, 0, len(doc.Lines))
		for i, xl := range doc.Lines {
			product, err := uc.resolveProduct(r, xl, now)
			if err != nil {
				return lineError(i, xl.ProductCode, err)
			}
			lines = append(lines, receiveLine{
				ProductID: product.ID,
				Quantity:  xl.Quantity,
				UnitCost:  xl.UnitCost,
			})
		}
		return uc.receiveInTx(r, userID, invoice, lines, productNames, now)
	})
	if err != nil {
		return nil, err
	}

	return &dto.ImportXMLResponse{
		InvoiceID:    invoice.ID,
		Number:       invoice.Number,
		SupplierName: supplierName,
		Total:        invoice.Total,
		TotalItems:   len(invoice.Lines),
	}, nil
}

// resolveSupplier busca el proveedor por CNPJ; si no existe y AutoProvision
// está activo lo crea con contacto placeholder (mismo registro mínimo que el
// importador original).
func (uc *InvoiceUseCase) resolveSupplier(r stock.Repos, doc *nfe.Document, now time.Time) (*entity.Supplier, error) {
	supplier, err := r.Suppliers.GetByTaxID(doc.SupplierTaxID)
	if err != nil {
		return nil, err
	}
	if supplier != nil {
		return supplier, nil
	}
	if !uc.cfg.AutoProvision {
		return nil, domain.ErrSupplierNotFound
	}
	supplier = &entity.Supplier{
		ID:        uuid.New().String(),
		Name:      doc.SupplierName,
		TaxID:     doc.SupplierTaxID,
		Email:     "xml@import.com",
		CreatedAt: now,
	}
	if err := r.Suppliers.Create(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// resolveProduct busca el producto por nombre exacto; si no existe y
// AutoProvision está activo lo crea sin existencias, con costo igual al de la
// línea y precio de venta = costo × MarkupFactor. El stock lo suma después la
// recepción normal de la línea.
func (uc *InvoiceUseCase) resolveProduct(r stock.Repos, line nfe.Line, now time.Time) (*entity.Product, error) {
	product, err := r.Products.GetByName(line.ProductName)
	if err != nil {
		return nil, err
	}
	if product != nil {
		return product, nil
	}
	if !uc.cfg.AutoProvision {
		return nil, domain.ErrProductNotFound
	}
	product = &entity.Product{
		ID:        uuid.New().String(),
		Name:      line.ProductName,
		Category:  "Importado",
		Quantity:  0,
		Cost:      line.UnitCost,
		Price:     line.UnitCost.Mul(uc.cfg.MarkupFactor),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.Products.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}
