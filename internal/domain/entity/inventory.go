package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Inventory representa el stock de un producto en un rack (único por rack+producto).
// TotalVolume = Quantity * Product.Volume. La fila se elimina cuando Quantity llega a 0.
type Inventory struct {
	ID          string
	RackID      string
	ProductID   string
	Quantity    int
	TotalVolume decimal.Decimal
	ArrivalDate time.Time
	ExpiryDate  *time.Time
}

// ThrownItem registra una baja de inventario (daño, vencimiento) fuera de un envío.
type ThrownItem struct {
	ID          string
	WarehouseID string
	ProductID   string
	Quantity    int
	Reason      string
	ThrownAt    time.Time
	CreatedBy   string
}

// ThrownSummary agrega cantidades dadas de baja por bodega y producto.
type ThrownSummary struct {
	WarehouseID   string
	WarehouseName string
	ProductID     string
	ProductName   string
	TotalQuantity int
}
