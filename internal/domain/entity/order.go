package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado del pedido. Conjunto cerrado con tabla de transiciones
// explícita: un pedido Pending puede completarse o cancelarse; Completed y
// Cancelled son terminales.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusCompleted OrderStatus = "Completed"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// Valid indica si el valor corresponde a un estado conocido.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo aplica la tabla de transiciones: Pending→Completed y
// Pending→Cancelled son las únicas permitidas.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return s == OrderStatusPending &&
		(next == OrderStatusCompleted || next == OrderStatusCancelled)
}

// Order cabecera de un pedido de venta. Posee sus líneas en exclusiva
// (se borran en cascada con la cabecera).
type Order struct {
	ID         string
	CustomerID string
	Status     OrderStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Lines      []*OrderLine
}

// Total suma cantidad × precio unitario congelado de todas las líneas.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// OrderLine línea de pedido. UnitPrice es el precio de venta del producto al
// momento de crear el pedido; cambios posteriores del catálogo no lo alteran.
type OrderLine struct {
	ID         string
	OrderID    string
	LineNumber int
	ProductID  string
	Quantity   int64
	UnitPrice  decimal.Decimal
}

// Subtotal cantidad × precio unitario congelado.
func (l *OrderLine) Subtotal() decimal.Decimal {
	return decimal.NewFromInt(l.Quantity).Mul(l.UnitPrice)
}
