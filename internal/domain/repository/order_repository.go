package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodegas-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order y sus OrderItem.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	// Update persiste status, total_price, transport_id y updated_at.
	Update(ctx context.Context, order *entity.Order) error
	ListItems(ctx context.Context, orderID string) ([]entity.OrderItem, error)
	ReplaceItems(ctx context.Context, orderID string, items []entity.OrderItem) error
	UpdateItemQuantity(ctx context.Context, orderID, productID string, quantity int) error
	DeleteItem(ctx context.Context, orderID, productID string) error
	// ReservedVolume suma el volumen de órdenes to_warehouse hacia warehouseID en los estados dados,
	// excluyendo excludeOrderID (vacío = ninguna).
	ReservedVolume(ctx context.Context, warehouseID, excludeOrderID string, statuses []string) (decimal.Decimal, error)
}

// LostItemRepository define el puerto para faltantes reportados por orden.
type LostItemRepository interface {
	// Add acumula quantity sobre el registro (order, product), creándolo si no existe.
	Add(ctx context.Context, orderID, productID string, quantity int) error
	ListByOrder(ctx context.Context, orderID string) ([]entity.LostItem, error)
}

// TransportRepository define el puerto de lectura de Transport.
type TransportRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Transport, error)
}

// VendorRepository define el puerto de lectura de Vendor.
type VendorRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Vendor, error)
	ListIDsByOwner(ctx context.Context, ownerID string) ([]string, error)
}
