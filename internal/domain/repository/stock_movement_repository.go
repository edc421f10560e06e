package repository

import "github.com/jhoicas/estoque-api/internal/domain/entity"

// StockMovementRepository puerto para el registro de auditoría de stock.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
}
