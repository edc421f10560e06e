// Package stocktest provee implementaciones en memoria de los repositorios y
// del TxRunner para pruebas de los casos de uso, con rollback por snapshot:
// si el callback falla, el estado vuelve exactamente al punto de partida,
// igual que la transacción real de PostgreSQL.
package stocktest

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/estoque-api/internal/application/stock"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Store estado compartido de todos los repositorios fake.
type Store struct {
	Products  map[string]*entity.Product
	Orders    map[string]*entity.Order
	OrderLn   []*entity.OrderLine
	Invoices  map[string]*entity.PurchaseInvoice
	InvoiceLn []*entity.PurchaseInvoiceLine
	Suppliers map[string]*entity.Supplier
	Customers map[string]*entity.Customer
	Movements []*entity.StockMovement

	// FailOn fuerza un error de persistencia en la operación indicada
	// ("product.update", "order.create", ...) para probar rollbacks.
	FailOn map[string]error
}

// NewStore construye un Store vacío.
func NewStore() *Store {
	return &Store{
		Products:  map[string]*entity.Product{},
		Orders:    map[string]*entity.Order{},
		Invoices:  map[string]*entity.PurchaseInvoice{},
		Suppliers: map[string]*entity.Supplier{},
		Customers: map[string]*entity.Customer{},
		FailOn:    map[string]error{},
	}
}

// Repos devuelve el bundle de repositorios atado al Store.
func (s *Store) Repos() stock.Repos {
	return stock.Repos{
		Products:  &productRepo{s},
		Orders:    &orderRepo{s},
		Invoices:  &invoiceRepo{s},
		Suppliers: &supplierRepo{s},
		Movements: &movementRepo{s},
	}
}

func (s *Store) fail(op string) error {
	if err, ok := s.FailOn[op]; ok {
		return err
	}
	return nil
}

func (s *Store) clone() *Store {
	c := NewStore()
	for k, v := range s.Products {
		p := *v
		c.Products[k] = &p
	}
	for k, v := range s.Orders {
		o := *v
		c.Orders[k] = &o
	}
	for k, v := range s.Invoices {
		n := *v
		c.Invoices[k] = &n
	}
	for k, v := range s.Suppliers {
		sp := *v
		c.Suppliers[k] = &sp
	}
	for k, v := range s.Customers {
		cu := *v
		c.Customers[k] = &cu
	}
	for _, l := range s.OrderLn {
		ln := *l
		c.OrderLn = append(c.OrderLn, &ln)
	}
	for _, l := range s.InvoiceLn {
		ln := *l
		c.InvoiceLn = append(c.InvoiceLn, &ln)
	}
	for _, m := range s.Movements {
		mv := *m
		c.Movements = append(c.Movements, &mv)
	}
	c.FailOn = s.FailOn
	return c
}

func (s *Store) restore(from *Store) {
	s.Products = from.Products
	s.Orders = from.Orders
	s.OrderLn = from.OrderLn
	s.Invoices = from.Invoices
	s.InvoiceLn = from.InvoiceLn
	s.Suppliers = from.Suppliers
	s.Customers = from.Customers
	s.Movements = from.Movements
}

// TxRunner fake: ejecuta fn sobre el Store y restaura el snapshot si falla.
type TxRunner struct {
	Store *Store
}

// Run implementa stock.TxRunner.
func (t *TxRunner) Run(_ context.Context, fn func(r stock.Repos) error) error {
	snap := t.Store.clone()
	if err := fn(t.Store.Repos()); err != nil {
		t.Store.restore(snap)
		return err
	}
	return nil
}

type productRepo struct{ s *Store }

var _ repository.ProductRepository = (*productRepo)(nil)

func (r *productRepo) Create(p *entity.Product) error {
	if err := r.s.fail("product.create"); err != nil {
		return err
	}
	cp := *p
	r.s.Products[p.ID] = &cp
	return nil
}

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.Products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *productRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *productRepo) GetByName(name string) (*entity.Product, error) {
	for _, p := range r.s.Products {
		if p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *productRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.Products {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *productRepo) Update(p *entity.Product) error {
	if err := r.s.fail("product.update"); err != nil {
		return err
	}
	cp := *p
	r.s.Products[p.ID] = &cp
	return nil
}

func (r *productRepo) UpdateStock(productID string, quantity int64, cost decimal.Decimal) error {
	if err := r.s.fail("product.updatestock"); err != nil {
		return err
	}
	p, ok := r.s.Products[productID]
	if !ok {
		return nil
	}
	p.Quantity = quantity
	p.Cost = cost
	p.UpdatedAt = time.Now()
	return nil
}

func (r *productRepo) SetActive(id string, active bool) error {
	if p, ok := r.s.Products[id]; ok {
		p.Active = active
	}
	return nil
}

type orderRepo struct{ s *Store }

var _ repository.OrderRepository = (*orderRepo)(nil)

func (r *orderRepo) Create(o *entity.Order) error {
	if err := r.s.fail("order.create"); err != nil {
		return err
	}
	cp := *o
	cp.Lines = nil
	r.s.Orders[o.ID] = &cp
	return nil
}

func (r *orderRepo) CreateLine(l *entity.OrderLine) error {
	if err := r.s.fail("order.createline"); err != nil {
		return err
	}
	cp := *l
	r.s.OrderLn = append(r.s.OrderLn, &cp)
	return nil
}

func (r *orderRepo) GetByID(id string) (*entity.Order, error) {
	o, ok := r.s.Orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *orderRepo) GetForUpdate(id string) (*entity.Order, error) {
	return r.GetByID(id)
}

func (r *orderRepo) GetLines(orderID string) ([]*entity.OrderLine, error) {
	var out []*entity.OrderLine
	for _, l := range r.s.OrderLn {
		if l.OrderID == orderID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *orderRepo) List(limit, offset int) ([]*repository.OrderSummary, error) {
	var out []*repository.OrderSummary
	for _, o := range r.s.Orders {
		lines, _ := r.GetLines(o.ID)
		total := decimal.Zero
		for _, l := range lines {
			total = total.Add(l.Subtotal())
		}
		name := ""
		if c, ok := r.s.Customers[o.CustomerID]; ok {
			name = c.Name
		}
		out = append(out, &repository.OrderSummary{
			ID: o.ID, CustomerName: name, Status: o.Status, Total: total, CreatedAt: o.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *orderRepo) UpdateStatus(id string, status entity.OrderStatus, updatedAt time.Time) error {
	o, ok := r.s.Orders[id]
	if !ok {
		return nil
	}
	o.Status = status
	o.UpdatedAt = updatedAt
	return nil
}

func (r *orderRepo) Delete(id string) error {
	if err := r.s.fail("order.delete"); err != nil {
		return err
	}
	delete(r.s.Orders, id)
	var keep []*entity.OrderLine
	for _, l := range r.s.OrderLn {
		if l.OrderID != id {
			keep = append(keep, l)
		}
	}
	r.s.OrderLn = keep
	return nil
}

type invoiceRepo struct{ s *Store }

var _ repository.InvoiceRepository = (*invoiceRepo)(nil)

func (r *invoiceRepo) Create(n *entity.PurchaseInvoice) error {
	if err := r.s.fail("invoice.create"); err != nil {
		return err
	}
	cp := *n
	cp.Lines = nil
	r.s.Invoices[n.ID] = &cp
	return nil
}

func (r *invoiceRepo) CreateLine(l *entity.PurchaseInvoiceLine) error {
	if err := r.s.fail("invoice.createline"); err != nil {
		return err
	}
	cp := *l
	r.s.InvoiceLn = append(r.s.InvoiceLn, &cp)
	return nil
}

func (r *invoiceRepo) GetByID(id string) (*entity.PurchaseInvoice, error) {
	n, ok := r.s.Invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *n
	return &cp, nil
}

func (r *invoiceRepo) GetLines(invoiceID string) ([]*entity.PurchaseInvoiceLine, error) {
	var out []*entity.PurchaseInvoiceLine
	for _, l := range r.s.InvoiceLn {
		if l.InvoiceID == invoiceID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *invoiceRepo) List(limit, offset int) ([]*repository.InvoiceSummary, error) {
	var out []*repository.InvoiceSummary
	for _, n := range r.s.Invoices {
		name := ""
		if sp, ok := r.s.Suppliers[n.SupplierID]; ok {
			name = sp.Name
		}
		out = append(out, &repository.InvoiceSummary{
			ID: n.ID, Number: n.Number, SupplierName: name, IssueDate: n.IssueDate, Total: n.Total,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *invoiceRepo) UpdateTotal(id string, total decimal.Decimal) error {
	if n, ok := r.s.Invoices[id]; ok {
		n.Total = total
	}
	return nil
}

type supplierRepo struct{ s *Store }

var _ repository.SupplierRepository = (*supplierRepo)(nil)

func (r *supplierRepo) Create(sp *entity.Supplier) error {
	if err := r.s.fail("supplier.create"); err != nil {
		return err
	}
	cp := *sp
	r.s.Suppliers[sp.ID] = &cp
	return nil
}

func (r *supplierRepo) GetByID(id string) (*entity.Supplier, error) {
	sp, ok := r.s.Suppliers[id]
	if !ok {
		return nil, nil
	}
	cp := *sp
	return &cp, nil
}

func (r *supplierRepo) GetByTaxID(taxID string) (*entity.Supplier, error) {
	for _, sp := range r.s.Suppliers {
		if sp.TaxID == taxID {
			cp := *sp
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *supplierRepo) List(limit, offset int) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	for _, sp := range r.s.Suppliers {
		cp := *sp
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type movementRepo struct{ s *Store }

var _ repository.StockMovementRepository = (*movementRepo)(nil)

func (r *movementRepo) Create(m *entity.StockMovement) error {
	if err := r.s.fail("movement.create"); err != nil {
		return err
	}
	cp := *m
	r.s.Movements = append(r.s.Movements, &cp)
	return nil
}

func (r *movementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.Movements {
		if m.ProductID == productID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}
