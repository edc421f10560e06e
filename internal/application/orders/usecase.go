package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/stock"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// OrderUseCase crea, cancela y consulta pedidos de venta. Toda mutación de
// stock pasa por el ledger dentro de una transacción del TxRunner: o el pedido
// completo queda persistido con su stock descontado, o nada.
type OrderUseCase struct {
	txRunner     stock.TxRunner
	ledger       *stock.Ledger
	customerRepo repository.CustomerRepository
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	txRunner stock.TxRunner,
	ledger *stock.Ledger,
	customerRepo repository.CustomerRepository,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
) *OrderUseCase {
	return &OrderUseCase{
		txRunner:     txRunner,
		ledger:       ledger,
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
		productRepo:  productRepo,
	}
}

// Create valida la forma del pedido, abre una transacción, crea la cabecera en
// Pending y por cada línea reserva stock y congela el precio de venta vigente.
// Cualquier fallo en cualquier línea (producto inexistente, stock insuficiente,
// error de persistencia) hace rollback completo: nunca se observa un pedido
// parcial ni un descuento de stock huérfano.
func (uc *OrderUseCase) Create(ctx context.Context, userID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.CustomerID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity < 1 {
			return nil, domain.ErrInvalidInput
		}
	}

	// Cliente (solo lectura, fuera de la tx)
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	order := &entity.Order{
		ID:         uuid.New().String(),
		CustomerID: in.CustomerID,
		Status:     entity.OrderStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	productNames := make(map[string]string)

	err = uc.txRunner.Run(ctx, func(r stock.Repos) error {
		if err := r.Orders.Create(order); err != nil {
			return err
		}
		for i, item := range in.Items {
			// Reserve bloquea la fila del producto y descuenta; devuelve el
			// producto con su precio de venta vigente para congelarlo.
			product, err := uc.ledger.Reserve(r.Products, r.Movements, item.ProductID, item.Quantity, order.ID, userID, now)
			if err != nil {
				return lineError(i, item.ProductID, err)
			}
			line := &entity.OrderLine{
				ID:         uuid.New().String(),
				OrderID:    order.ID,
				LineNumber: i + 1,
				ProductID:  product.ID,
				Quantity:   item.Quantity,
				UnitPrice:  product.Price,
			}
			if err := r.Orders.CreateLine(line); err != nil {
				return err
			}
			order.Lines = append(order.Lines, line)
			productNames[product.ID] = product.Name
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toOrderResponse(order, customer.Name, productNames), nil
}

// Cancel elimina un pedido Pending devolviendo al stock exactamente las
// cantidades reservadas, sin importar cambios posteriores del catálogo.
// Existencia y estado se verifican dentro de la transacción con la cabecera
// bloqueada: dos cancelaciones simultáneas no pueden devolver el stock dos
// veces, la segunda ve el pedido ya borrado. Líneas y cabecera se borran en
// la misma transacción.
func (uc *OrderUseCase) Cancel(ctx context.Context, userID, id string) error {
	now := time.Now()
	return uc.txRunner.Run(ctx, func(r stock.Repos) error {
		order, err := r.Orders.GetForUpdate(id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.OrderStatusPending {
			return domain.ErrConflict
		}
		lines, err := r.Orders.GetLines(id)
		if err != nil {
			return err
		}
		for _, line := range lines {
			if _, err := uc.ledger.Release(r.Products, r.Movements, line.ProductID, line.Quantity, id, userID, now); err != nil {
				return err
			}
		}
		return r.Orders.Delete(id)
	})
}

// SetStatus cambia el estado del pedido validando la tabla de transiciones
// (Pending→Completed, Pending→Cancelled). Es un cambio de metadatos: no toca
// stock; para devolver existencias está Cancel.
func (uc *OrderUseCase) SetStatus(ctx context.Context, id string, status string) error {
	next := entity.OrderStatus(status)
	if !next.Valid() {
		return domain.ErrInvalidInput
	}
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if !order.Status.CanTransitionTo(next) {
		return domain.ErrInvalidTransition
	}
	return uc.orderRepo.UpdateStatus(id, next, time.Now())
}

// GetByID devuelve el pedido materializado (cabecera, líneas y resúmenes).
func (uc *OrderUseCase) GetByID(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.orderRepo.GetLines(id)
	if err != nil {
		return nil, err
	}
	order.Lines = lines

	customerName := ""
	if customer, _ := uc.customerRepo.GetByID(order.CustomerID); customer != nil {
		customerName = customer.Name
	}
	productNames := make(map[string]string)
	for _, line := range lines {
		if product, _ := uc.productRepo.GetByID(line.ProductID); product != nil {
			productNames[line.ProductID] = product.Name
		}
	}
	return toOrderResponse(order, customerName, productNames), nil
}

// List devuelve el listado de pedidos con nombre de cliente y total.
func (uc *OrderUseCase) List(ctx context.Context, limit, offset int) ([]dto.OrderSummaryResponse, error) {
	rows, err := uc.orderRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderSummaryResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.OrderSummaryResponse{
			ID:           row.ID,
			CustomerName: row.CustomerName,
			Status:       string(row.Status),
			Total:        row.Total,
			CreatedAt:    row.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

// lineError envuelve el error con la línea (base 1) que abortó la transacción.
// Los *StockShortageError ya traen producto y cantidades; solo se les anota la línea.
func lineError(index int, productID string, err error) error {
	if shortage, ok := err.(*domain.StockShortageError); ok {
		shortage.Line = index + 1
		return shortage
	}
	return &domain.LineError{Line: index + 1, ProductID: productID, Err: err}
}

func toOrderResponse(order *entity.Order, customerName string, productNames map[string]string) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:           order.ID,
		CustomerID:   order.CustomerID,
		CustomerName: customerName,
		Status:       string(order.Status),
		CreatedAt:    order.CreatedAt.Format(time.RFC3339),
		Total:        order.Total(),
		Lines:        make([]dto.OrderLineResponse, 0, len(order.Lines)),
	}
	for _, line := range order.Lines {
		resp.Lines = append(resp.Lines, dto.OrderLineResponse{
			ID:         line.ID,
			LineNumber: line.LineNumber,
			Product:    dto.ProductSummary{ID: line.ProductID, Name: productNames[line.ProductID]},
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			Subtotal:   line.Subtotal(),
		})
	}
	return resp
}
