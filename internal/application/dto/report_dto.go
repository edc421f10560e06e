package dto

import "github.com/shopspring/decimal"

// StockOverviewResponse visión general del inventario para reportes.
type StockOverviewResponse struct {
	UniqueItems int64           `json:"unique_items"`
	TotalUnits  int64           `json:"total_units"`
	SaleValue   decimal.Decimal `json:"sale_value"`
	CostValue   decimal.Decimal `json:"cost_value"`
}
