package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo agregados de solo lectura sobre el inventario.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// StockOverview calcula el resumen del inventario activo en una sola consulta.
func (r *ReportRepo) StockOverview() (*repository.StockOverview, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(quantity), 0),
		       COALESCE(SUM(quantity * price), 0),
		       COALESCE(SUM(quantity * cost), 0)
		FROM products WHERE active`
	var ov repository.StockOverview
	err := r.q.QueryRow(context.Background(), query).Scan(
		&ov.UniqueItems, &ov.TotalUnits, &ov.SaleValue, &ov.CostValue,
	)
	if err != nil {
		return nil, fmt.Errorf("stock overview: %w", err)
	}
	return &ov, nil
}
