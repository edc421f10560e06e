package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo con su stock disponible.
// Quantity y Cost se mutan únicamente a través del ledger de stock (nunca por
// escrituras ad hoc); Cost sigue la política last-cost-wins: cada recepción de
// nota de compra sobreescribe el costo con el de la última línea recibida.
type Product struct {
	ID        string
	Name      string
	Category  string
	Quantity  int64           // existencias; nunca negativo tras una operación exitosa
	Cost      decimal.Decimal // costo unitario de la última compra
	Price     decimal.Decimal // precio de venta; se congela en la línea al crear el pedido
	Active    bool            // desactivación lógica; no se borra mientras tenga referencias
	CreatedAt time.Time
	UpdatedAt time.Time
}

// InStock indica si el producto tiene existencias.
func (p *Product) InStock() bool {
	return p.Quantity > 0
}
