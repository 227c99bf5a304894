package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea de orden en requests.
type OrderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CreateOrderRequest body para POST /api/orders.
// from_warehouse: supplier = bodega, recipient = vendedor. to_warehouse: al revés.
type CreateOrderRequest struct {
	OrderType   string             `json:"order_type"`
	SupplierID  string             `json:"supplier_id"`
	RecipientID string             `json:"recipient_id"`
	Items       []OrderItemRequest `json:"items"`
}

// UpdateOrderRequest body para PUT /api/orders/:id (reemplaza las líneas).
type UpdateOrderRequest struct {
	Items []OrderItemRequest `json:"items"`
}

// ConfirmOrderRequest body para POST /api/orders/:id/confirm.
type ConfirmOrderRequest struct {
	TransportID string `json:"transport_id"`
}

// ReportLostRequest body para POST /api/orders/:id/lost-items.
// MarkAs opcional: "lost" o "damaged".
type ReportLostRequest struct {
	Items  []OrderItemRequest `json:"items"`
	MarkAs string             `json:"mark_as,omitempty"`
}

// OrderItemResponse línea de orden en respuestas.
type OrderItemResponse struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// PartyResponse contraparte de la orden.
type PartyResponse struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

// OrderResponse salida de una orden.
type OrderResponse struct {
	ID          string              `json:"id"`
	OrderType   string              `json:"order_type"`
	Supplier    PartyResponse       `json:"supplier"`
	Recipient   PartyResponse       `json:"recipient"`
	Status      string              `json:"order_status"`
	TotalPrice  decimal.Decimal     `json:"total_price"`
	TotalVolume decimal.Decimal     `json:"total_volume"`
	TransportID *string             `json:"transport_id,omitempty"`
	Items       []OrderItemResponse `json:"items"`
	LostItems   []OrderItemResponse `json:"lost_items,omitempty"`
	ShippedAt   *time.Time          `json:"shipped_at,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// AllocationResponse una entrada del plan de asignación.
type AllocationResponse struct {
	ProductID    string          `json:"product_id"`
	RackID       string          `json:"rack_id"`
	RackPosition string          `json:"rack_position"`
	Quantity     int             `json:"quantity"`
	Volume       decimal.Decimal `json:"volume"`
}

// PlanResponse plan de asignación (send o receive) de una orden.
type PlanResponse struct {
	OrderID     string               `json:"order_id"`
	Direction   string               `json:"direction"`
	Allocations []AllocationResponse `json:"allocations"`
}
