package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrProductNotFound     = errors.New("producto no encontrado")
	ErrSupplierNotFound    = errors.New("proveedor no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrConcurrencyConflict = errors.New("conflicto de concurrencia, reintente la operación")
	ErrMalformedDocument   = errors.New("documento XML malformado")
	ErrInvalidTransition   = errors.New("transición de estado inválida")
)

// StockShortageError detalla un rechazo por stock insuficiente: qué producto,
// cuánto había disponible y cuánto se pidió. errors.Is(err, ErrInsufficientStock) == true.
type StockShortageError struct {
	ProductID   string
	ProductName string
	Line        int
	Available   int64
	Requested   int64
}

func (e *StockShortageError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto %q: disponible %d, solicitado %d",
		e.ProductName, e.Available, e.Requested)
}

// Is permite comparar contra el sentinel ErrInsufficientStock.
func (e *StockShortageError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// LineError señala la línea (base 1) de un pedido o nota de compra que hizo fallar
// la transacción completa.
type LineError struct {
	Line      int
	ProductID string
	Err       error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("línea %d (producto %s): %v", e.Line, e.ProductID, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }
