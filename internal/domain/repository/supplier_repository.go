package repository

import "github.com/jhoicas/estoque-api/internal/domain/entity"

// SupplierRepository puerto de persistencia para proveedores.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	// GetByTaxID resuelve el proveedor por CNPJ (importación XML).
	GetByTaxID(taxID string) (*entity.Supplier, error)
	List(limit, offset int) ([]*entity.Supplier, error)
}
