package parties

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// UseCase casos de uso de proveedores y clientes.
type UseCase struct {
	supplierRepo repository.SupplierRepository
	customerRepo repository.CustomerRepository
}

// New construye el caso de uso.
func New(supplierRepo repository.SupplierRepository, customerRepo repository.CustomerRepository) *UseCase {
	return &UseCase{supplierRepo: supplierRepo, customerRepo: customerRepo}
}

// CreateSupplier da de alta un proveedor. El CNPJ debe ser único.
func (uc *UseCase) CreateSupplier(req dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.TaxID) == "" {
		return nil, domain.ErrInvalidInput
	}
	s := &entity.Supplier{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(req.Name),
		TaxID:     strings.TrimSpace(req.TaxID),
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		CreatedAt: time.Now(),
	}
	if err := uc.supplierRepo.Create(s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// GetSupplier obtiene un proveedor.
func (uc *UseCase) GetSupplier(id string) (*dto.SupplierResponse, error) {
	s, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrSupplierNotFound
	}
	return toSupplierResponse(s), nil
}

// ListSuppliers lista proveedores paginados.
func (uc *UseCase) ListSuppliers(page dto.PageRequest) ([]*dto.SupplierResponse, error) {
	page.DefaultPage()
	suppliers, err := uc.supplierRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SupplierResponse, 0, len(suppliers))
	for _, s := range suppliers {
		out = append(out, toSupplierResponse(s))
	}
	return out, nil
}

// CreateCustomer da de alta un cliente.
func (uc *UseCase) CreateCustomer(req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	c := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(req.Name),
		TaxID:     strings.TrimSpace(req.TaxID),
		Email:     req.Email,
		Address:   req.Address,
		CreatedAt: time.Now(),
	}
	if err := uc.customerRepo.Create(c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// GetCustomer obtiene un cliente.
func (uc *UseCase) GetCustomer(id string) (*dto.CustomerResponse, error) {
	c, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(c), nil
}

// ListCustomers lista clientes paginados.
func (uc *UseCase) ListCustomers(page dto.PageRequest) ([]*dto.CustomerResponse, error) {
	page.DefaultPage()
	customers, err := uc.customerRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:      s.ID,
		Name:    s.Name,
		TaxID:   s.TaxID,
		Email:   s.Email,
		Phone:   s.Phone,
		Address: s.Address,
	}
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:      c.ID,
		Name:    c.Name,
		TaxID:   c.TaxID,
		Email:   c.Email,
		Address: c.Address,
	}
}
