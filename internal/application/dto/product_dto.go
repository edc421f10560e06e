package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Quantity int64           `json:"quantity"`
	Cost     decimal.Decimal `json:"cost"`
	Price    decimal.Decimal `json:"price"`
}

// UpdateProductRequest body para PUT /api/products/:id. No toca cantidad ni
// costo: esos campos solo cambian vía pedidos y notas de compra.
type UpdateProductRequest struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Quantity int64           `json:"quantity"`
	Cost     decimal.Decimal `json:"cost"`
	Price    decimal.Decimal `json:"price"`
	Active   bool            `json:"active"`
	Status   string          `json:"status"` // "Em Estoque" | "Sem Estoque"
}

// ProductSummary referencia mínima de producto dentro de una línea.
type ProductSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// StockMovementResponse entrada del diario de movimientos de un producto.
type StockMovementResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Type      string          `json:"type"`
	Quantity  int64           `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Reference string          `json:"reference,omitempty"`
	CreatedBy string          `json:"created_by,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
