package invoices

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/stock"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/jhoicas/estoque-api/internal/infrastructure/nfe"
	"github.com/shopspring/decimal"
)

// Config política de aprovisionamiento del receptor de notas de compra.
// AutoProvision habilita crear proveedor/producto faltantes al importar XML
// (la entrada manual siempre exige registros preexistentes: no trae nombres
// con qué crearlos). MarkupFactor fija el precio de venta de productos
// auto-creados: costo × factor.
type Config struct {
	AutoProvision bool
	MarkupFactor  decimal.Decimal
}

// InvoiceUseCase registra notas fiscales de compra (manuales o importadas)
// sumando stock por línea vía ledger. Toda la nota es una transacción: un
// producto faltante o un fallo de persistencia aborta la nota completa.
type InvoiceUseCase struct {
	txRunner     stock.TxRunner
	ledger       *stock.Ledger
	supplierRepo repository.SupplierRepository
	invoiceRepo  repository.InvoiceRepository
	productRepo  repository.ProductRepository
	parser       *nfe.Parser
	cfg          Config
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	txRunner stock.TxRunner,
	ledger *stock.Ledger,
	supplierRepo repository.SupplierRepository,
	invoiceRepo repository.InvoiceRepository,
	productRepo repository.ProductRepository,
	parser *nfe.Parser,
	cfg Config,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:     txRunner,
		ledger:       ledger,
		supplierRepo: supplierRepo,
		invoiceRepo:  invoiceRepo,
		productRepo:  productRepo,
		parser:       parser,
		cfg:          cfg,
	}
}

// Create registra una nota de compra manual. El proveedor y cada producto
// deben existir de antemano. Por cada línea suma stock y sobreescribe el
// costo (last-cost-wins); el total se calcula tras procesar todas las líneas
// y se escribe en la cabecera dentro de la misma transacción.
func (uc *InvoiceUseCase) Create(ctx context.Context, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.SupplierID == "" || in.Number == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity < 1 || item.UnitCost.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrSupplierNotFound
	}

	issueDate := time.Now()
	if in.IssueDate != "" {
		parsed, err := time.Parse("2006-01-02", in.IssueDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		issueDate = parsed
	}

	lines := make([]receiveLine, 0, len(in.Items))
	for _, item := range in.Items {
		lines = append(lines, receiveLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitCost:  item.UnitCost,
		})
	}

	invoice, productNames, err := uc.receive(ctx, userID, supplier.ID, in.Number, issueDate, lines)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice, supplier.Name, productNames), nil
}

// receiveLine línea ya resuelta a un producto del catálogo.
type receiveLine struct {
	ProductID string
	Quantity  int64
	UnitCost  decimal.Decimal
}

// receive abre la transacción y delega en receiveInTx.
func (uc *InvoiceUseCase) receive(ctx context.Context, userID, supplierID, number string, issueDate time.Time, lines []receiveLine) (*entity.PurchaseInvoice, map[string]string, error) {
	now := time.Now()
	invoice := &entity.PurchaseInvoice{
		ID:         uuid.New().String(),
		SupplierID: supplierID,
		Number:     number,
		IssueDate:  issueDate,
		Total:      decimal.Zero,
		CreatedAt:  now,
	}
	productNames := make(map[string]string)

	err := uc.txRunner.Run(ctx, func(r stock.Repos) error {
		return uc.receiveInTx(r, userID, invoice, lines, productNames, now)
	})
	if err != nil {
		return nil, nil, err
	}
	return invoice, productNames, nil
}

// receiveInTx núcleo transaccional compartido por la entrada manual y la
// importación XML: cabecera, recepción de stock línea a línea y total al
// final. Asume repos atados a una transacción abierta.
func (uc *InvoiceUseCase) receiveInTx(r stock.Repos, userID string, invoice *entity.PurchaseInvoice, lines []receiveLine, productNames map[string]string, now time.Time) error {
	if err := r.Invoices.Create(invoice); err != nil {
		return err
	}
	total := decimal.Zero
	for i, item := range lines {
		product, err := uc.ledger.Receive(r.Products, r.Movements, item.ProductID, item.Quantity, item.UnitCost, invoice.ID, userID, now)
		if err != nil {
			return lineError(i, item.ProductID, err)
		}
		line := &entity.PurchaseInvoiceLine{
			ID:         uuid.New().String(),
			InvoiceID:  invoice.ID,
			LineNumber: i + 1,
			ProductID:  product.ID,
			Quantity:   item.Quantity,
			UnitCost:   item.UnitCost,
		}
		if err := r.Invoices.CreateLine(line); err != nil {
			return err
		}
		invoice.Lines = append(invoice.Lines, line)
		productNames[product.ID] = product.Name
		total = total.Add(line.Subtotal())
	}
	invoice.Total = total
	return r.Invoices.UpdateTotal(invoice.ID, total)
}

// GetByID devuelve la nota con su detalle completo.
func (uc *InvoiceUseCase) GetByID(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.invoiceRepo.GetLines(id)
	if err != nil {
		return nil, err
	}
	invoice.Lines = lines

	supplierName := ""
	if supplier, _ := uc.supplierRepo.GetByID(invoice.SupplierID); supplier != nil {
		supplierName = supplier.Name
	}
	productNames := make(map[string]string)
	for _, line := range lines {
		if product, _ := uc.productRepo.GetByID(line.ProductID); product != nil {
			productNames[line.ProductID] = product.Name
		}
	}
	return toInvoiceResponse(invoice, supplierName, productNames), nil
}

// List devuelve el listado de notas con nombre de proveedor.
func (uc *InvoiceUseCase) List(ctx context.Context, limit, offset int) ([]dto.InvoiceSummaryResponse, error) {
	rows, err := uc.invoiceRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceSummaryResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.InvoiceSummaryResponse{
			ID:           row.ID,
			Number:       row.Number,
			SupplierName: row.SupplierName,
			IssueDate:    row.IssueDate.Format("2006-01-02"),
			Total:        row.Total,
		})
	}
	return out, nil
}

func lineError(index int, productID string, err error) error {
	if shortage, ok := err.(*domain.StockShortageError); ok {
		shortage.Line = index + 1
		return shortage
	}
	return &domain.LineError{Line: index + 1, ProductID: productID, Err: err}
}

func toInvoiceResponse(invoice *entity.PurchaseInvoice, supplierName string, productNames map[string]string) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:           invoice.ID,
		SupplierID:   invoice.SupplierID,
		SupplierName: supplierName,
		Number:       invoice.Number,
		IssueDate:    invoice.IssueDate.Format("2006-01-02"),
		Total:        invoice.Total,
		Lines:        make([]dto.InvoiceLineResponse, 0, len(invoice.Lines)),
	}
	for _, line := range invoice.Lines {
		resp.Lines = append(resp.Lines, dto.InvoiceLineResponse{
			ID:         line.ID,
			LineNumber: line.LineNumber,
			Product:    dto.ProductSummary{ID: line.ProductID, Name: productNames[line.ProductID]},
			Quantity:   line.Quantity,
			UnitCost:   line.UnitCost,
			Subtotal:   line.Subtotal(),
		})
	}
	return resp
}
