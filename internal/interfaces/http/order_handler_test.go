package http

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/orders"
	"github.com/jhoicas/estoque-api/internal/application/stock"
	"github.com/jhoicas/estoque-api/internal/application/stock/stocktest"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// customerRepoAdapter expone el mapa de clientes del Store como repositorio.
type customerRepoAdapter struct{ s *stocktest.Store }

func (r *customerRepoAdapter) Create(c *entity.Customer) error {
	r.s.Customers[c.ID] = c
	return nil
}

func (r *customerRepoAdapter) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.s.Customers[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (r *customerRepoAdapter) List(limit, offset int) ([]*entity.Customer, error) {
	out := make([]*entity.Customer, 0, len(r.s.Customers))
	for _, c := range r.s.Customers {
		out = append(out, c)
	}
	return out, nil
}

func newOrderApp(store *stocktest.Store) *fiber.App {
	repos := store.Repos()
	uc := orders.NewOrderUseCase(
		&stocktest.TxRunner{Store: store},
		stock.NewLedger(),
		&customerRepoAdapter{store},
		repos.Orders,
		repos.Products,
	)
	app := fiber.New()
	h := NewOrderHandler(uc)
	app.Post("/api/orders", h.Create)
	app.Get("/api/orders/:id", h.GetByID)
	app.Patch("/api/orders/:id/status", h.SetStatus)
	app.Delete("/api/orders/:id", h.Cancel)
	return app
}

func seededStore() *stocktest.Store {
	store := stocktest.NewStore()
	store.Customers["c1"] = &entity.Customer{ID: "c1", Name: "Cliente Uno", CreatedAt: time.Now()}
	store.Products["p1"] = &entity.Product{
		ID: "p1", Name: "Teclado", Quantity: 10,
		Cost: decimal.NewFromFloat(3.00), Price: decimal.NewFromFloat(5.00), Active: true,
	}
	return store
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestOrderHandler_Create(t *testing.T) {
	store := seededStore()
	app := newOrderApp(store)

	status, out := doJSON(t, app, "POST", "/api/orders", dto.CreateOrderRequest{
		CustomerID: "c1",
		Items:      []dto.OrderItemRequest{{ProductID: "p1", Quantity: 3}},
	})
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "Pending", out["status"])
	assert.EqualValues(t, 7, store.Products["p1"].Quantity)
}

func TestOrderHandler_Create_StockInsuficiente(t *testing.T) {
	store := seededStore()
	app := newOrderApp(store)

	status, out := doJSON(t, app, "POST", "/api/orders", dto.CreateOrderRequest{
		CustomerID: "c1",
		Items:      []dto.OrderItemRequest{{ProductID: "p1", Quantity: 99}},
	})
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", out["code"])

	details, ok := out["details"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "p1", details["product_id"])
	assert.EqualValues(t, 10, details["available"])
	assert.EqualValues(t, 99, details["requested"])
	assert.EqualValues(t, 10, store.Products["p1"].Quantity, "nada persistido tras el rechazo")
}

func TestOrderHandler_Create_ProductoInexistente(t *testing.T) {
	store := seededStore()
	app := newOrderApp(store)

	status, out := doJSON(t, app, "POST", "/api/orders", dto.CreateOrderRequest{
		CustomerID: "c1",
		Items:      []dto.OrderItemRequest{{ProductID: "no-existe", Quantity: 1}},
	})
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "PRODUCT_NOT_FOUND", out["code"])
}

func TestOrderHandler_Create_BodyInvalido(t *testing.T) {
	store := seededStore()
	app := newOrderApp(store)

	req := httptest.NewRequest("POST", "/api/orders", bytes.NewBufferString("{no json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestOrderHandler_Create_CantidadInvalida(t *testing.T) {
	store := seededStore()
	app := newOrderApp(store)

	status, out := doJSON(t, app, "POST", "/api/orders", dto.CreateOrderRequest{
		CustomerID: "c1",
		Items:      []dto.OrderItemRequest{{ProductID: "p1", Quantity: 0}},
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", out["code"])
}

func TestOrderHandler_SetStatus_TransicionInvalida(t *testing.T) {
	store := seededStore()
	app := newOrderApp(store)

	status, out := doJSON(t, app, "POST", "/api/orders", dto.CreateOrderRequest{
		CustomerID: "c1",
		Items:      []dto.OrderItemRequest{{ProductID: "p1", Quantity: 1}},
	})
	require.Equal(t, fiber.StatusCreated, status)
	orderID := out["id"].(string)

	status, _ = doJSON(t, app, "PATCH", "/api/orders/"+orderID+"/status", dto.SetOrderStatusRequest{Status: "Completed"})
	assert.Equal(t, fiber.StatusNoContent, status)

	// Completed es terminal
	status, body := doJSON(t, app, "PATCH", "/api/orders/"+orderID+"/status", dto.SetOrderStatusRequest{Status: "Cancelled"})
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "INVALID_TRANSITION", body["code"])
}

func TestOrderHandler_Cancel_DevuelveStock(t *testing.T) {
	store := seededStore()
	app := newOrderApp(store)

	status, out := doJSON(t, app, "POST", "/api/orders", dto.CreateOrderRequest{
		CustomerID: "c1",
		Items:      []dto.OrderItemRequest{{ProductID: "p1", Quantity: 4}},
	})
	require.Equal(t, fiber.StatusCreated, status)
	orderID := out["id"].(string)
	require.EqualValues(t, 6, store.Products["p1"].Quantity)

	status, _ = doJSON(t, app, "DELETE", "/api/orders/"+orderID, nil)
	assert.Equal(t, fiber.StatusNoContent, status)
	assert.EqualValues(t, 10, store.Products["p1"].Quantity)
}

func TestOrderHandler_GetByID_NoExiste(t *testing.T) {
	store := seededStore()
	app := newOrderApp(store)

	status, out := doJSON(t, app, "GET", "/api/orders/desconocido", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", out["code"])
}
