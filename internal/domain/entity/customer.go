package entity

import "time"

// Customer cliente asociado a pedidos de venta.
type Customer struct {
	ID        string
	Name      string
	TaxID     string
	Email     string
	Address   string
	CreatedAt time.Time
}
