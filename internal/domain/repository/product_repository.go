package repository

import (
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductRepository puerto de persistencia para productos.
// Los métodos Get* devuelven (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando la fila (SELECT FOR UPDATE).
	// Es el punto único de serialización para mutaciones de stock; solo tiene
	// sentido dentro de una transacción.
	GetForUpdate(id string) (*entity.Product, error)
	GetByName(name string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStock escribe cantidad y costo en una sola sentencia; lo usa
	// exclusivamente el ledger de stock.
	UpdateStock(productID string, quantity int64, cost decimal.Decimal) error
	SetActive(id string, active bool) error
}
