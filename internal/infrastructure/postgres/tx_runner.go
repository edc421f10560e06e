package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/estoque-api/internal/application/stock"
	"github.com/jhoicas/estoque-api/internal/domain"
)

// Ensure TxRunner implements stock.TxRunner.
var _ stock.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL: todos los
// efectos se confirman juntos o ninguno queda visible.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Los fallos de serialización de PostgreSQL se reportan
// como ErrConcurrencyConflict; no se reintenta aquí.
func (r *TxRunner) Run(ctx context.Context, fn func(repos stock.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := stock.Repos{
		Products:  NewProductRepository(tx),
		Orders:    NewOrderRepository(tx),
		Invoices:  NewInvoiceRepository(tx),
		Suppliers: NewSupplierRepository(tx),
		Movements: NewStockMovementRepository(tx),
	}

	if err := fn(repos); err != nil {
		return translateConcurrency(err)
	}
	if err := tx.Commit(ctx); err != nil {
		if translateConcurrency(err) == domain.ErrConcurrencyConflict {
			return domain.ErrConcurrencyConflict
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
