package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Bodegas-api/internal/domain/entity"
)

// InventoryRepository define el puerto para el stock por rack+producto.
// Usado dentro de transacciones para garantizar consistencia con la capacidad.
type InventoryRepository interface {
	Get(ctx context.Context, rackID, productID string) (*entity.Inventory, error)
	GetForUpdate(ctx context.Context, rackID, productID string) (*entity.Inventory, error)
	Create(ctx context.Context, inv *entity.Inventory) error
	Update(ctx context.Context, inv *entity.Inventory) error
	Delete(ctx context.Context, id string) error
	ListByRack(ctx context.Context, rackID string) ([]*entity.Inventory, error)
	ListByWarehouse(ctx context.Context, warehouseID string) ([]*entity.Inventory, error)
	// SumQuantities suma la cantidad por producto en todos los racks de la bodega.
	SumQuantities(ctx context.Context, warehouseID string, productIDs []string) (map[string]int, error)
}

// ThrownItemRepository define el puerto para las bajas de inventario.
type ThrownItemRepository interface {
	Create(ctx context.Context, item *entity.ThrownItem) error
	SummaryByCompany(ctx context.Context, companyID string, from, to *time.Time) ([]entity.ThrownSummary, error)
}
