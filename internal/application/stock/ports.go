package stock

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// Repos repositorios atados a una misma transacción de BD. El TxRunner los
// construye sobre la tx y los pasa al callback; usarlos fuera del callback
// es un error.
type Repos struct {
	Products  repository.ProductRepository
	Orders    repository.OrderRepository
	Invoices  repository.InvoiceRepository
	Suppliers repository.SupplierRepository
	Movements repository.StockMovementRepository
}

// TxRunner ejecuta fn dentro de una transacción: si fn retorna nil hace
// Commit y todos los efectos quedan visibles a la vez; si retorna error hace
// Rollback y el estado queda exactamente como antes de la llamada. El error
// de fn se propaga sin alterar. No reintenta: ante ErrConcurrencyConflict el
// reintento es responsabilidad del caller.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
