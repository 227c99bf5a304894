package usecase_test

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
	"github.com/jhoicas/Bodegas-api/internal/domain"
	"github.com/jhoicas/Bodegas-api/internal/domain/entity"
	"github.com/jhoicas/Bodegas-api/internal/infrastructure/memory"
)

var (
	manager    = access.Actor{UserID: "u-manager", CompanyID: "c-1", Role: entity.RoleManager}
	supervisor = access.Actor{UserID: "u-supervisor", CompanyID: "c-1", Role: entity.RoleSupervisor}
	admin      = access.Actor{UserID: "u-admin", Role: entity.RoleAdmin}
	clock      = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
)

func num(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func newEngine(t *testing.T) (*memory.Store, *engine.Engine) {
	t.Helper()
	s, err := memory.LoadDemo()
	require.NoError(t, err)
	return s, engine.New(s, func() time.Time { return clock }, zerolog.Nop())
}

func newWarehouse(t *testing.T, e *engine.Engine, capacity int64) *dto.WarehouseResponse {
	t.Helper()
	out, err := e.Warehouses.Create(context.Background(), manager, dto.CreateWarehouseRequest{
		Name: "Bodega Centro", Address: "Calle 50", WarehouseType: entity.WarehouseTypeDry,
		OverallCapacity: num(capacity), SupervisorID: "u-supervisor",
	})
	require.NoError(t, err)
	return out
}

func TestCreate_BodegaDeLaEmpresaDelManager(t *testing.T) {
	s, e := newEngine(t)

	out := newWarehouse(t, e, 80)

	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "c-1", out.CompanyID)
	assert.True(t, out.RemainingCapacity.Equal(num(80)))
	stored, ok := s.Warehouse(out.ID)
	require.True(t, ok)
	assert.Equal(t, "Bodega Centro", stored.Name)
}

func TestCreate_AdminEligeEmpresa(t *testing.T) {
	_, e := newEngine(t)

	out, err := e.Warehouses.Create(context.Background(), admin, dto.CreateWarehouseRequest{
		Name: "Cuarto frío", WarehouseType: entity.WarehouseTypeFreezer, OverallCapacity: num(10), CompanyID: "c-9",
	})
	require.NoError(t, err)
	assert.Equal(t, "c-9", out.CompanyID)
}

func TestCreate_Validaciones(t *testing.T) {
	_, e := newEngine(t)
	ctx := context.Background()
	valid := dto.CreateWarehouseRequest{Name: "B", WarehouseType: entity.WarehouseTypeDry, OverallCapacity: num(10)}

	tests := []struct {
		name   string
		actor  access.Actor
		mutate func(r *dto.CreateWarehouseRequest)
		kind   error
	}{
		{"sin nombre", manager, func(r *dto.CreateWarehouseRequest) { r.Name = "  " }, domain.ErrValidation},
		{"tipo inválido", manager, func(r *dto.CreateWarehouseRequest) { r.WarehouseType = "wet" }, domain.ErrValidation},
		{"capacidad cero", manager, func(r *dto.CreateWarehouseRequest) { r.OverallCapacity = decimal.Zero }, domain.ErrValidation},
		{"admin sin empresa", admin, func(r *dto.CreateWarehouseRequest) {}, domain.ErrValidation},
		{"supervisor no crea bodegas", supervisor, func(r *dto.CreateWarehouseRequest) {}, domain.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			_, err := e.Warehouses.Create(ctx, tt.actor, in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "se obtuvo %v", err)
		})
	}
}

func TestCreateRack_SumaDeCapacidades(t *testing.T) {
	_, e := newEngine(t)
	ctx := context.Background()
	wh := newWarehouse(t, e, 50)

	rack, err := e.Warehouses.CreateRack(ctx, manager, wh.ID, dto.CreateRackRequest{Position: "C1", OverallCapacity: num(30)})
	require.NoError(t, err)
	assert.Equal(t, wh.ID, rack.WarehouseID)
	assert.True(t, rack.RemainingCapacity.Equal(num(30)))

	_, err = e.Warehouses.CreateRack(ctx, supervisor, wh.ID, dto.CreateRackRequest{Position: "C2", OverallCapacity: num(21)})
	assert.True(t, errors.Is(err, domain.ErrCapacityExceeded), "se obtuvo %v", err)

	_, err = e.Warehouses.CreateRack(ctx, supervisor, wh.ID, dto.CreateRackRequest{Position: "C2", OverallCapacity: num(20)})
	require.NoError(t, err)
}

func TestCreateRack_PosicionDuplicada(t *testing.T) {
	_, e := newEngine(t)
	ctx := context.Background()
	wh := newWarehouse(t, e, 50)
	_, err := e.Warehouses.CreateRack(ctx, manager, wh.ID, dto.CreateRackRequest{Position: "C1", OverallCapacity: num(10)})
	require.NoError(t, err)

	_, err = e.Warehouses.CreateRack(ctx, manager, wh.ID, dto.CreateRackRequest{Position: "C1", OverallCapacity: num(10)})
	assert.True(t, errors.Is(err, domain.ErrConflict), "se obtuvo %v", err)
}

func TestCreateRack_Errores(t *testing.T) {
	_, e := newEngine(t)
	ctx := context.Background()

	_, err := e.Warehouses.CreateRack(ctx, manager, "wh-1", dto.CreateRackRequest{Position: "", OverallCapacity: num(1)})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = e.Warehouses.CreateRack(ctx, manager, "wh-1", dto.CreateRackRequest{Position: "Z9", OverallCapacity: num(-1)})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	// Los racks de wh-1 ya suman su capacidad total.
	_, err = e.Warehouses.CreateRack(ctx, manager, "wh-1", dto.CreateRackRequest{Position: "Z9", OverallCapacity: num(1)})
	assert.True(t, errors.Is(err, domain.ErrCapacityExceeded))

	_, err = e.Warehouses.CreateRack(ctx, supervisor, "wh-2", dto.CreateRackRequest{Position: "Z9", OverallCapacity: num(1)})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = e.Warehouses.CreateRack(ctx, access.Actor{UserID: "u-vendor", Role: entity.RoleVendor}, "wh-1",
		dto.CreateRackRequest{Position: "Z9", OverallCapacity: num(1)})
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestThrownSummary_AgrupaBajas(t *testing.T) {
	_, e := newEngine(t)
	ctx := context.Background()
	for _, qty := range []int{2, 1} {
		_, err := e.Inventory.Remove(ctx, manager, dto.RemoveInventoryRequest{
			RackID: "r-1", ProductID: "p-x", Quantity: qty, WriteOff: true, Reason: "vencido",
		})
		require.NoError(t, err)
	}

	out, err := e.Warehouses.ThrownSummary(ctx, manager, dto.DateRangeRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "wh-1", out.Items[0].WarehouseID)
	assert.Equal(t, "Bodega Norte", out.Items[0].WarehouseName)
	assert.Equal(t, "p-x", out.Items[0].ProductID)
	assert.Equal(t, 3, out.Items[0].TotalQuantity)

	later, err := e.Warehouses.ThrownSummary(ctx, manager, dto.DateRangeRequest{From: "2026-04-01T00:00:00Z"})
	require.NoError(t, err)
	assert.Empty(t, later.Items)
}

func TestThrownSummary_Errores(t *testing.T) {
	_, e := newEngine(t)
	ctx := context.Background()

	_, err := e.Warehouses.ThrownSummary(ctx, supervisor, dto.DateRangeRequest{})
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	_, err = e.Warehouses.ThrownSummary(ctx, manager, dto.DateRangeRequest{From: "ayer"})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}
