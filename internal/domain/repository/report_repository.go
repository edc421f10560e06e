package repository

import "github.com/shopspring/decimal"

// StockOverview visión general del inventario activo.
type StockOverview struct {
	UniqueItems int64
	TotalUnits  int64
	SaleValue   decimal.Decimal // existencias valoradas a precio de venta
	CostValue   decimal.Decimal // existencias valoradas a costo
}

// ReportRepository consultas agregadas de solo lectura.
type ReportRepository interface {
	StockOverview() (*StockOverview, error)
}
