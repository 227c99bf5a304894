package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodegas-api/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
// GetByID/GetForUpdate devuelven (nil, nil) si no existe.
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Warehouse, error)
	UpdateRemainingCapacity(ctx context.Context, id string, remaining decimal.Decimal) error
	ListIDsBySupervisor(ctx context.Context, supervisorID string) ([]string, error)
	ListIDsByCompany(ctx context.Context, companyID string) ([]string, error)
}

// RackRepository define el puerto de persistencia para Rack.
// Los listados se ordenan por position ascendente (y id para desempatar).
type RackRepository interface {
	Create(ctx context.Context, rack *entity.Rack) error
	GetByID(ctx context.Context, id string) (*entity.Rack, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Rack, error)
	UpdateRemainingCapacity(ctx context.Context, id string, remaining decimal.Decimal) error
	ListByWarehouse(ctx context.Context, warehouseID string) ([]*entity.Rack, error)
	SumOverallByWarehouse(ctx context.Context, warehouseID string) (decimal.Decimal, error)
	PositionExists(ctx context.Context, warehouseID, position string) (bool, error)
}
