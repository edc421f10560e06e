package dto

import "github.com/shopspring/decimal"

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	CustomerID string             `json:"customer_id"`
	Items      []OrderItemRequest `json:"items"`
}

// OrderItemRequest línea solicitada (producto y cantidad).
type OrderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// SetOrderStatusRequest body para PATCH /api/orders/:id/status.
type SetOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderResponse pedido materializado: cabecera, líneas con precio congelado y
// resúmenes de cliente/producto (sin referencias circulares).
type OrderResponse struct {
	ID           string              `json:"id"`
	CustomerID   string              `json:"customer_id"`
	CustomerName string              `json:"customer_name,omitempty"`
	Status       string              `json:"status"`
	CreatedAt    string              `json:"created_at"`
	Total        decimal.Decimal     `json:"total"`
	Lines        []OrderLineResponse `json:"lines"`
}

// OrderLineResponse línea del pedido con su precio unitario congelado.
type OrderLineResponse struct {
	ID         string          `json:"id"`
	LineNumber int             `json:"line_number"`
	Product    ProductSummary  `json:"product"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

// OrderSummaryResponse fila del listado de pedidos.
type OrderSummaryResponse struct {
	ID           string          `json:"id"`
	CustomerName string          `json:"customer_name"`
	Status       string          `json:"status"`
	Total        decimal.Decimal `json:"total"`
	CreatedAt    string          `json:"created_at"`
}
