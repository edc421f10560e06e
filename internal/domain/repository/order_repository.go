package repository

import (
	"time"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// OrderSummary proyección para el listado de pedidos (sin grafo de objetos).
type OrderSummary struct {
	ID           string
	CustomerName string
	Status       entity.OrderStatus
	Total        decimal.Decimal
	CreatedAt    time.Time
}

// OrderRepository puerto de persistencia para pedidos y sus líneas.
type OrderRepository interface {
	Create(order *entity.Order) error
	CreateLine(line *entity.OrderLine) error
	GetByID(id string) (*entity.Order, error)
	// GetForUpdate bloquea la cabecera dentro de la transacción en curso
	// (SELECT ... FOR UPDATE). Devuelve (nil, nil) si no existe.
	GetForUpdate(id string) (*entity.Order, error)
	GetLines(orderID string) ([]*entity.OrderLine, error)
	List(limit, offset int) ([]*OrderSummary, error)
	UpdateStatus(id string, status entity.OrderStatus, updatedAt time.Time) error
	// Delete elimina cabecera y líneas (cascada por FK).
	Delete(id string) error
}
