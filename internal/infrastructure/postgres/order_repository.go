package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la cabecera del pedido.
func (r *OrderRepo) Create(order *entity.Order) error {
	query := `
		INSERT INTO orders (id, customer_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.CustomerID, string(order.Status), order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateLine persiste una línea con su número de secuencia y su precio
// unitario congelado.
func (r *OrderRepo) CreateLine(line *entity.OrderLine) error {
	query := `
		INSERT INTO order_lines (id, order_id, line_number, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.OrderID, line.LineNumber, line.ProductID, line.Quantity, line.UnitPrice,
	)
	if err != nil {
		return fmt.Errorf("insert order line: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera del pedido. Devuelve (nil, nil) si no existe.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `SELECT id, customer_id, status, created_at, updated_at FROM orders WHERE id = $1`
	var o entity.Order
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.CustomerID, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

// GetForUpdate obtiene la cabecera bloqueando la fila (SELECT FOR UPDATE).
// Serializa cancelaciones concurrentes del mismo pedido: la segunda
// transacción ve el pedido ya borrado o en estado final.
func (r *OrderRepo) GetForUpdate(id string) (*entity.Order, error) {
	query := `SELECT id, customer_id, status, created_at, updated_at FROM orders WHERE id = $1 FOR UPDATE`
	var o entity.Order
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.CustomerID, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order for update: %w", translateConcurrency(err))
	}
	return &o, nil
}

// GetLines obtiene las líneas del pedido en orden de inserción.
func (r *OrderRepo) GetLines(orderID string) ([]*entity.OrderLine, error) {
	query := `
		SELECT id, order_id, line_number, product_id, quantity, unit_price
		FROM order_lines WHERE order_id = $1 ORDER BY line_number`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()
	var lines []*entity.OrderLine
	for rows.Next() {
		var l entity.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.LineNumber, &l.ProductID, &l.Quantity, &l.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

// List proyecta el listado de pedidos con nombre de cliente y total calculado
// desde las líneas.
func (r *OrderRepo) List(limit, offset int) ([]*repository.OrderSummary, error) {
	query := `
		SELECT o.id, c.name, o.status, COALESCE(SUM(l.quantity * l.unit_price), 0), o.created_at
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		LEFT JOIN order_lines l ON l.order_id = o.id
		GROUP BY o.id, c.name, o.status, o.created_at
		ORDER BY o.created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*repository.OrderSummary
	for rows.Next() {
		var s repository.OrderSummary
		if err := rows.Scan(&s.ID, &s.CustomerName, &s.Status, &s.Total, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order summary: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// UpdateStatus actualiza solo el estado (la tabla de transiciones se valida
// en el caso de uso).
func (r *OrderRepo) UpdateStatus(id string, status entity.OrderStatus, updatedAt time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`,
		id, string(status), updatedAt)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

// Delete elimina la cabecera; las líneas caen por ON DELETE CASCADE.
func (r *OrderRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}
