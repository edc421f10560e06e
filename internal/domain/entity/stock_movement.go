package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeReserve = "reserve" // salida por pedido
	MovementTypeReceive = "receive" // entrada por nota de compra
	MovementTypeRelease = "release" // devolución por cancelación de pedido
)

// StockMovement registro de auditoría de cada delta aplicado al stock de un
// producto. Quantity lleva signo: negativo para reservas, positivo para
// recepciones y devoluciones. Reference apunta al pedido o nota de compra
// que originó el movimiento.
type StockMovement struct {
	ID        string
	ProductID string
	Type      string
	Quantity  int64
	UnitCost  decimal.Decimal
	Reference string
	CreatedAt time.Time
	CreatedBy string
}
