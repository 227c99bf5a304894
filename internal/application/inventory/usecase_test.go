package inventory_test

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
	"github.com/jhoicas/Bodegas-api/internal/application/inventory"
	"github.com/jhoicas/Bodegas-api/internal/application/ledger"
	"github.com/jhoicas/Bodegas-api/internal/domain"
	"github.com/jhoicas/Bodegas-api/internal/domain/entity"
	"github.com/jhoicas/Bodegas-api/internal/infrastructure/memory"
)

var (
	manager    = access.Actor{UserID: "u-manager", CompanyID: "c-1", Role: entity.RoleManager}
	supervisor = access.Actor{UserID: "u-supervisor", CompanyID: "c-1", Role: entity.RoleSupervisor}
	clock      = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
)

func num(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// newWarehouse arma W(100, dry) con R1(A1, 60) y R2(A2, 40).
func newWarehouse(t *testing.T) (*memory.Store, *inventory.UseCase) {
	t.Helper()
	s := memory.New()
	s.AddWarehouse(entity.Warehouse{ID: "W", CompanyID: "c-1", SupervisorID: "u-supervisor", WarehouseType: entity.WarehouseTypeDry,
		OverallCapacity: num(100), RemainingCapacity: num(100)})
	s.AddRack(entity.Rack{ID: "R1", WarehouseID: "W", Position: "A1", OverallCapacity: num(60), RemainingCapacity: num(60)})
	s.AddRack(entity.Rack{ID: "R2", WarehouseID: "W", Position: "A2", OverallCapacity: num(40), RemainingCapacity: num(40)})
	days := 30
	s.AddProduct(entity.Product{ID: "X", CompanyID: "c-1", Name: "X", Volume: num(5), IsStackable: true, ProductType: entity.WarehouseTypeDry, ExpiryDuration: &days})
	s.AddProduct(entity.Product{ID: "Y", CompanyID: "c-1", Name: "Y", Volume: num(1), IsStackable: false, ProductType: entity.WarehouseTypeDry})
	s.AddProduct(entity.Product{ID: "Z", CompanyID: "c-1", Name: "Z", Volume: num(2), IsStackable: true, ProductType: entity.WarehouseTypeDry})
	s.AddProduct(entity.Product{ID: "ICE", CompanyID: "c-1", Name: "ICE", Volume: num(1), IsStackable: true, ProductType: entity.WarehouseTypeFreezer})
	s.AddProduct(entity.Product{ID: "FOREIGN", CompanyID: "c-2", Name: "F", Volume: num(1), IsStackable: true, ProductType: entity.WarehouseTypeDry})
	uc := inventory.NewUseCase(s, ledger.New(func() time.Time { return clock }), zerolog.Nop())
	return s, uc
}

func place(t *testing.T, uc *inventory.UseCase, rack, product string, qty int) *dto.InventoryResponse {
	t.Helper()
	out, err := uc.Place(context.Background(), manager, dto.PlaceInventoryRequest{RackID: rack, ProductID: product, Quantity: qty})
	require.NoError(t, err)
	return out
}

func assertRemaining(t *testing.T, s *memory.Store, rack string, rackWant int64, whWant int64) {
	t.Helper()
	r, _ := s.Rack(rack)
	w, _ := s.Warehouse(r.WarehouseID)
	assert.True(t, r.RemainingCapacity.Equal(num(rackWant)), "rack %s remaining %s", rack, r.RemainingCapacity)
	assert.True(t, w.RemainingCapacity.Equal(num(whWant)), "warehouse remaining %s", w.RemainingCapacity)
}

func TestPlace_CascadaDeCapacidad(t *testing.T) {
	s, uc := newWarehouse(t)

	out := place(t, uc, "R1", "X", 10)
	assert.Equal(t, 10, out.Quantity)
	assert.True(t, out.TotalVolume.Equal(num(50)))
	assert.True(t, out.ArrivalDate.Equal(clock))
	require.NotNil(t, out.ExpiryDate)
	assert.True(t, out.ExpiryDate.Equal(clock.AddDate(0, 0, 30)))

	assertRemaining(t, s, "R1", 10, 50)
}

func TestPlace_MismoProductoSeFusiona(t *testing.T) {
	s, uc := newWarehouse(t)
	place(t, uc, "R2", "Y", 2)
	out := place(t, uc, "R2", "Y", 3)

	assert.Equal(t, 5, out.Quantity)
	assert.True(t, out.TotalVolume.Equal(num(5)))
	assertRemaining(t, s, "R2", 35, 95)

	rack, err := uc.ListRack(context.Background(), manager, "R2")
	require.NoError(t, err)
	assert.Len(t, rack.Items, 1)
}

func TestPlace_NoApilableEnRackOcupado(t *testing.T) {
	s, uc := newWarehouse(t)
	place(t, uc, "R2", "Z", 1)

	_, err := uc.Place(context.Background(), manager, dto.PlaceInventoryRequest{RackID: "R2", ProductID: "Y", Quantity: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Equal(t, "Non stackable product is already occupying this rack", err.Error())

	_, ok := s.Inventory("R2", "Y")
	assert.False(t, ok)
	assertRemaining(t, s, "R2", 38, 98)
}

func TestPlace_ApilableSobreNoApilable(t *testing.T) {
	_, uc := newWarehouse(t)
	place(t, uc, "R2", "Y", 1)

	_, err := uc.Place(context.Background(), manager, dto.PlaceInventoryRequest{RackID: "R2", ProductID: "Z", Quantity: 1})
	require.Error(t, err)
	assert.Equal(t, "Non stackable product is already occupying this rack", err.Error())
}

func TestPlace_CapacidadInsuficienteNoModificaEstado(t *testing.T) {
	s, uc := newWarehouse(t)
	place(t, uc, "R1", "X", 10)

	_, err := uc.Place(context.Background(), manager, dto.PlaceInventoryRequest{RackID: "R1", ProductID: "X", Quantity: 3})
	assert.True(t, errors.Is(err, domain.ErrCapacityExceeded))

	inv, ok := s.Inventory("R1", "X")
	require.True(t, ok)
	assert.Equal(t, 10, inv.Quantity)
	assertRemaining(t, s, "R1", 10, 50)
}

func TestPlace_Validaciones(t *testing.T) {
	_, uc := newWarehouse(t)
	ctx := context.Background()
	tests := []struct {
		name  string
		actor access.Actor
		in    dto.PlaceInventoryRequest
		kind  error
	}{
		{"cantidad cero", manager, dto.PlaceInventoryRequest{RackID: "R1", ProductID: "X"}, domain.ErrValidation},
		{"tipo distinto", manager, dto.PlaceInventoryRequest{RackID: "R1", ProductID: "ICE", Quantity: 1}, domain.ErrValidation},
		{"rack inexistente", manager, dto.PlaceInventoryRequest{RackID: "NOPE", ProductID: "X", Quantity: 1}, domain.ErrNotFound},
		{"producto de otra empresa", manager, dto.PlaceInventoryRequest{RackID: "R1", ProductID: "FOREIGN", Quantity: 1}, domain.ErrNotFound},
		{"supervisor ajeno", access.Actor{UserID: "u-otro", CompanyID: "c-1", Role: entity.RoleSupervisor},
			dto.PlaceInventoryRequest{RackID: "R1", ProductID: "X", Quantity: 1}, domain.ErrNotFound},
		{"vendor sin permiso", access.Actor{UserID: "u-vendor", Role: entity.RoleVendor},
			dto.PlaceInventoryRequest{RackID: "R1", ProductID: "X", Quantity: 1}, domain.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Place(ctx, tt.actor, tt.in)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)
		})
	}
}

func TestPlaceRemove_IdaYVuelta(t *testing.T) {
	s, uc := newWarehouse(t)
	place(t, uc, "R1", "X", 4)

	out, err := uc.Remove(context.Background(), supervisor, dto.RemoveInventoryRequest{RackID: "R1", ProductID: "X", Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, 0, out.RemainingQuantity)
	assert.Empty(t, out.ThrownItemID)

	_, ok := s.Inventory("R1", "X")
	assert.False(t, ok, "la fila se elimina al llegar a 0")
	assertRemaining(t, s, "R1", 60, 100)
}

func TestRemove_StockInsuficienteYSinFila(t *testing.T) {
	s, uc := newWarehouse(t)
	place(t, uc, "R1", "X", 2)
	ctx := context.Background()

	_, err := uc.Remove(ctx, manager, dto.RemoveInventoryRequest{RackID: "R1", ProductID: "X", Quantity: 3})
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Equal(t, "This rack does not have the specified amount of goods", err.Error())
	inv, _ := s.Inventory("R1", "X")
	assert.Equal(t, 2, inv.Quantity)

	_, err = uc.Remove(ctx, manager, dto.RemoveInventoryRequest{RackID: "R2", ProductID: "X", Quantity: 1})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestRemove_BajaRegistraThrownItem(t *testing.T) {
	s, uc := newWarehouse(t)
	place(t, uc, "R1", "X", 5)

	out, err := uc.Remove(context.Background(), supervisor, dto.RemoveInventoryRequest{
		RackID: "R1", ProductID: "X", Quantity: 2, WriteOff: true, Reason: "dañado",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, out.RemainingQuantity)
	require.NotEmpty(t, out.ThrownItemID)

	thrown := s.ThrownItems()
	require.Len(t, thrown, 1)
	assert.Equal(t, "W", thrown[0].WarehouseID)
	assert.Equal(t, 2, thrown[0].Quantity)
	assert.Equal(t, "dañado", thrown[0].Reason)
	assert.Equal(t, "u-supervisor", thrown[0].CreatedBy)
	assertRemaining(t, s, "R1", 45, 85)
}

func TestListRack_FueraDeAlcance(t *testing.T) {
	_, uc := newWarehouse(t)
	_, err := uc.ListRack(context.Background(), access.Actor{UserID: "x", CompanyID: "c-9", Role: entity.RoleManager}, "R1")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
