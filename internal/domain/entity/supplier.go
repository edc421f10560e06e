package entity

import "time"

// Supplier proveedor emisor de notas de compra. TaxID es el CNPJ del emisor
// en el XML NFe; sirve para resolver el proveedor al importar.
type Supplier struct {
	ID        string
	Name      string
	TaxID     string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
}
