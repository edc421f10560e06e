package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/estoque-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" // unique_violation
}

// translateConcurrency mapea fallos de serialización y deadlocks de PostgreSQL
// (40001, 40P01) a ErrConcurrencyConflict para que el caller pueda
// distinguirlos de un faltante de stock y decidir si reintenta.
func translateConcurrency(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (pgErr.Code == "40001" || pgErr.Code == "40P01") {
		return domain.ErrConcurrencyConflict
	}
	return err
}
