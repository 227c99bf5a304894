package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlaceInventoryRequest body para POST /api/inventory.
type PlaceInventoryRequest struct {
	RackID    string `json:"rack_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// RemoveInventoryRequest body para POST /api/inventory/remove.
// WriteOff registra la salida como baja (ThrownItem) con Reason.
type RemoveInventoryRequest struct {
	RackID    string `json:"rack_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	WriteOff  bool   `json:"write_off"`
	Reason    string `json:"reason,omitempty"`
}

// InventoryResponse salida de una fila de inventario.
type InventoryResponse struct {
	ID          string          `json:"id"`
	RackID      string          `json:"rack_id"`
	ProductID   string          `json:"product_id"`
	Quantity    int             `json:"quantity"`
	TotalVolume decimal.Decimal `json:"total_volume"`
	ArrivalDate time.Time       `json:"arrival_date"`
	ExpiryDate  *time.Time      `json:"expiry_date,omitempty"`
}

// RemoveInventoryResponse resultado de una salida; RemainingQuantity 0 = fila eliminada.
type RemoveInventoryResponse struct {
	RackID            string `json:"rack_id"`
	ProductID         string `json:"product_id"`
	RemainingQuantity int    `json:"remaining_quantity"`
	ThrownItemID      string `json:"thrown_item_id,omitempty"`
}

// ThrownSummaryResponse bajas agrupadas por bodega y producto.
type ThrownSummaryResponse struct {
	Items []ThrownSummaryItem `json:"items"`
}

// ThrownSummaryItem una fila del resumen de bajas.
type ThrownSummaryItem struct {
	WarehouseID   string `json:"warehouse_id"`
	WarehouseName string `json:"warehouse_name"`
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	TotalQuantity int    `json:"total_quantity"`
}
