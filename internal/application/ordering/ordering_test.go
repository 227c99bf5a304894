package ordering_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodegas-api/internal/application/access"
	"github.com/jhoicas/Bodegas-api/internal/application/dto"
	"github.com/jhoicas/Bodegas-api/internal/application/engine"
	"github.com/jhoicas/Bodegas-api/internal/domain/entity"
	"github.com/jhoicas/Bodegas-api/internal/infrastructure/memory"
)

var (
	manager    = access.Actor{UserID: "u-manager", CompanyID: "c-1", Role: entity.RoleManager}
	supervisor = access.Actor{UserID: "u-supervisor", CompanyID: "c-1", Role: entity.RoleSupervisor}
	vendor     = access.Actor{UserID: "u-vendor", CompanyID: "c-1", Role: entity.RoleVendor}
	clock      = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
)

func num(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// newEngine carga los datos de demostración: wh-1 (restante 40) con r-1 (A1, p-x x10, restante 10)
// y r-2 (A2, p-z x5, restante 30); wh-2 vacía con r-3 (B1, 20) y r-4 (B2, 30).
func newEngine(t *testing.T) (*memory.Store, *engine.Engine) {
	t.Helper()
	s, err := memory.LoadDemo()
	require.NoError(t, err)
	return s, engine.New(s, func() time.Time { return clock }, zerolog.Nop())
}

func items(pairs ...any) []dto.OrderItemRequest {
	out := make([]dto.OrderItemRequest, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, dto.OrderItemRequest{ProductID: pairs[i].(string), Quantity: pairs[i+1].(int)})
	}
	return out
}

func fromWarehouse(recipient string, it ...dto.OrderItemRequest) dto.CreateOrderRequest {
	return dto.CreateOrderRequest{OrderType: entity.OrderTypeFromWarehouse, SupplierID: "wh-1", RecipientID: recipient, Items: it}
}

func toWarehouse(warehouse string, it ...dto.OrderItemRequest) dto.CreateOrderRequest {
	return dto.CreateOrderRequest{OrderType: entity.OrderTypeToWarehouse, SupplierID: "v-1", RecipientID: warehouse, Items: it}
}

func create(t *testing.T, e *engine.Engine, in dto.CreateOrderRequest) *dto.OrderResponse {
	t.Helper()
	out, err := e.Orders.Create(context.Background(), vendor, in)
	require.NoError(t, err)
	return out
}

// confirmed crea la orden y la confirma con el transporte grande.
func confirmed(t *testing.T, e *engine.Engine, in dto.CreateOrderRequest) string {
	t.Helper()
	order := create(t, e, in)
	_, err := e.Orders.Confirm(context.Background(), manager, order.ID, dto.ConfirmOrderRequest{TransportID: "t-big"})
	require.NoError(t, err)
	return order.ID
}

// toDelivered lleva una orden nueva hasta delivered con el transporte grande.
func toDelivered(t *testing.T, e *engine.Engine, id string) {
	t.Helper()
	ctx := context.Background()
	_, err := e.Orders.Confirm(ctx, manager, id, dto.ConfirmOrderRequest{TransportID: "t-big"})
	require.NoError(t, err)
	_, err = e.Orders.Send(ctx, manager, id)
	require.NoError(t, err)
	_, err = e.Orders.Deliver(ctx, manager, id)
	require.NoError(t, err)
}

func assertIs(t *testing.T, err error, kind error) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, kind), "se esperaba %v, se obtuvo %v", kind, err)
}

func assertQuantity(t *testing.T, s *memory.Store, rack, product string, want int) {
	t.Helper()
	inv, ok := s.Inventory(rack, product)
	if want == 0 {
		assert.False(t, ok, "no debería quedar %s en %s", product, rack)
		return
	}
	require.True(t, ok, "falta %s en %s", product, rack)
	assert.Equal(t, want, inv.Quantity)
}

func assertRackRemaining(t *testing.T, s *memory.Store, rack string, want int64) {
	t.Helper()
	r, ok := s.Rack(rack)
	require.True(t, ok)
	assert.True(t, r.RemainingCapacity.Equal(num(want)), "rack %s restante %s", rack, r.RemainingCapacity)
}
