package reports

import (
	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// UseCase reportes de solo lectura sobre el inventario.
type UseCase struct {
	reportRepo repository.ReportRepository
}

// New construye el caso de uso.
func New(reportRepo repository.ReportRepository) *UseCase {
	return &UseCase{reportRepo: reportRepo}
}

// StockOverview resumen del inventario activo: referencias, unidades y
// valoración a precio de venta y a costo.
func (uc *UseCase) StockOverview() (*dto.StockOverviewResponse, error) {
	ov, err := uc.reportRepo.StockOverview()
	if err != nil {
		return nil, err
	}
	return &dto.StockOverviewResponse{
		UniqueItems: ov.UniqueItems,
		TotalUnits:  ov.TotalUnits,
		SaleValue:   ov.SaleValue,
		CostValue:   ov.CostValue,
	}, nil
}
