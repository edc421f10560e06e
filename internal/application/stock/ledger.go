package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Ledger es el punto único de mutación de existencias. Cada operación bloquea
// la fila del producto (GetForUpdate), valida, escribe cantidad y costo en una
// sentencia y deja un movimiento de auditoría. Las tres operaciones asumen una
// transacción abierta (repos atados a la tx del TxRunner); el rollback del
// caller deshace cantidad, costo y movimiento juntos.
type Ledger struct{}

// NewLedger construye el ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Reserve descuenta quantity del stock del producto. Falla con
// ErrProductNotFound si no existe y con *StockShortageError si
// quantity excede las existencias; en ese caso no escribe nada.
// Devuelve el producto bloqueado, con su precio de venta vigente
// (el caller lo congela en la línea del pedido).
func (l *Ledger) Reserve(products repository.ProductRepository, movements repository.StockMovementRepository,
	productID string, quantity int64, reference, userID string, now time.Time) (*entity.Product, error) {

	if quantity < 1 {
		return nil, domain.ErrInvalidInput
	}
	product, err := products.GetForUpdate(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if product.Quantity < quantity {
		return nil, &domain.StockShortageError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Available:   product.Quantity,
			Requested:   quantity,
		}
	}
	product.Quantity -= quantity
	if err := products.UpdateStock(product.ID, product.Quantity, product.Cost); err != nil {
		return nil, err
	}
	return product, l.record(movements, product, entity.MovementTypeReserve, -quantity, product.Cost, reference, userID, now)
}

// Receive suma quantity al stock y sobreescribe el costo del producto con
// unitCost (last-cost-wins, no promedio ponderado). Falla con
// ErrProductNotFound si el producto no está en el catálogo. Acepta
// quantity cero: el parser laxo de NF-e mapea campos numéricos ilegibles
// a cero y la importación debe conservar la línea con un movimiento nulo
// en vez de abortar la nota entera.
func (l *Ledger) Receive(products repository.ProductRepository, movements repository.StockMovementRepository,
	productID string, quantity int64, unitCost decimal.Decimal, reference, userID string, now time.Time) (*entity.Product, error) {

	if quantity < 0 || unitCost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	product, err := products.GetForUpdate(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	product.Quantity += quantity
	product.Cost = unitCost
	if err := products.UpdateStock(product.ID, product.Quantity, product.Cost); err != nil {
		return nil, err
	}
	return product, l.record(movements, product, entity.MovementTypeReceive, quantity, unitCost, reference, userID, now)
}

// Release devuelve quantity al stock (reverso de una reserva al cancelar un
// pedido). Restaura exactamente la cantidad reservada, sin tocar el costo.
func (l *Ledger) Release(products repository.ProductRepository, movements repository.StockMovementRepository,
	productID string, quantity int64, reference, userID string, now time.Time) (*entity.Product, error) {

	if quantity < 1 {
		return nil, domain.ErrInvalidInput
	}
	product, err := products.GetForUpdate(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	product.Quantity += quantity
	if err := products.UpdateStock(product.ID, product.Quantity, product.Cost); err != nil {
		return nil, err
	}
	return product, l.record(movements, product, entity.MovementTypeRelease, quantity, product.Cost, reference, userID, now)
}

func (l *Ledger) record(movements repository.StockMovementRepository, product *entity.Product,
	movType string, quantity int64, unitCost decimal.Decimal, reference, userID string, now time.Time) error {

	return movements.Create(&entity.StockMovement{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		Type:      movType,
		Quantity:  quantity,
		UnitCost:  unitCost,
		Reference: reference,
		CreatedAt: now,
		CreatedBy: userID,
	})
}
