package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo de productos. La cantidad y el
// costo solo cambian a través del ledger de stock; aquí se gestionan los
// datos comerciales (nombre, categoría, precio) y el alta inicial.
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository, movementRepo repository.StockMovementRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, movementRepo: movementRepo}
}

// Create da de alta un producto con su stock inicial.
func (uc *ProductUseCase) Create(req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if req.Quantity < 0 || req.Cost.IsNegative() || req.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	p := &entity.Product{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(req.Name),
		Category:  req.Category,
		Quantity:  req.Quantity,
		Cost:      req.Cost,
		Price:     req.Price,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.productRepo.Create(p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// GetByID obtiene un producto.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	return toProductResponse(p), nil
}

// List lista el catálogo paginado.
func (uc *ProductUseCase) List(page dto.PageRequest) ([]*dto.ProductResponse, error) {
	page.DefaultPage()
	products, err := uc.productRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// Update modifica nombre, categoría y precio de venta.
func (uc *ProductUseCase) Update(id string, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if strings.TrimSpace(req.Name) == "" || req.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	p.Name = strings.TrimSpace(req.Name)
	p.Category = req.Category
	p.Price = req.Price
	p.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Deactivate desactiva lógicamente un producto. No se borra: las líneas de
// pedidos y notas de compra siguen referenciándolo.
func (uc *ProductUseCase) Deactivate(id string) error {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrProductNotFound
	}
	return uc.productRepo.SetActive(id, false)
}

// Movements lista el diario de movimientos de stock de un producto.
func (uc *ProductUseCase) Movements(productID string, page dto.PageRequest) ([]*dto.StockMovementResponse, error) {
	page.DefaultPage()
	p, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	movements, err := uc.movementRepo.ListByProduct(productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, &dto.StockMovementResponse{
			ID:        m.ID,
			ProductID: m.ProductID,
			Type:      m.Type,
			Quantity:  m.Quantity,
			UnitCost:  m.UnitCost,
			Reference: m.Reference,
			CreatedBy: m.CreatedBy,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	status := "Sem Estoque"
	if p.InStock() {
		status = "Em Estoque"
	}
	return &dto.ProductResponse{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		Quantity: p.Quantity,
		Cost:     p.Cost,
		Price:    p.Price,
		Active:   p.Active,
		Status:   status,
	}
}
