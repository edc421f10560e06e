package entity_test

import (
	"testing"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_TablaDeTransiciones(t *testing.T) {
	cases := []struct {
		from, to entity.OrderStatus
		ok       bool
	}{
		{entity.OrderStatusPending, entity.OrderStatusCompleted, true},
		{entity.OrderStatusPending, entity.OrderStatusCancelled, true},
		{entity.OrderStatusPending, entity.OrderStatusPending, false},
		{entity.OrderStatusCompleted, entity.OrderStatusCancelled, false},
		{entity.OrderStatusCompleted, entity.OrderStatusPending, false},
		{entity.OrderStatusCancelled, entity.OrderStatusCompleted, false},
		{entity.OrderStatusCancelled, entity.OrderStatusPending, false},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.ok, tc.from.CanTransitionTo(tc.to), "%s → %s", tc.from, tc.to)
	}
}

func TestOrderStatus_Valid(t *testing.T) {
	assert.True(t, entity.OrderStatusPending.Valid())
	assert.True(t, entity.OrderStatusCompleted.Valid())
	assert.True(t, entity.OrderStatusCancelled.Valid())
	assert.False(t, entity.OrderStatus("Enviado").Valid())
	assert.False(t, entity.OrderStatus("").Valid())
}

func TestOrder_TotalSumaSubtotales(t *testing.T) {
	order := &entity.Order{
		Lines: []*entity.OrderLine{
			{Quantity: 3, UnitPrice: decimal.NewFromFloat(5.00)},
			{Quantity: 2, UnitPrice: decimal.NewFromFloat(1.25)},
		},
	}
	assert.True(t, order.Total().Equal(decimal.NewFromFloat(17.50)))
}

func TestPurchaseInvoice_ComputeTotal(t *testing.T) {
	invoice := &entity.PurchaseInvoice{
		Lines: []*entity.PurchaseInvoiceLine{
			{Quantity: 4, UnitCost: decimal.NewFromFloat(1.00)},
			{Quantity: 2, UnitCost: decimal.NewFromFloat(3.00)},
		},
	}
	assert.True(t, invoice.ComputeTotal().Equal(decimal.NewFromFloat(10.00)))
}
