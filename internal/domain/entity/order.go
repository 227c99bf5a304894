package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de orden.
const (
	OrderTypeFromWarehouse = "from_warehouse" // bodega -> vendedor
	OrderTypeToWarehouse   = "to_warehouse"   // vendedor -> bodega
)

// Estados de orden.
const (
	OrderStatusNew        = "new"
	OrderStatusProcessing = "processing"
	OrderStatusSubmitted  = "submitted"
	OrderStatusDelivered  = "delivered"
	OrderStatusLost       = "lost"
	OrderStatusDamaged    = "damaged"
	OrderStatusFinished   = "finished"
	OrderStatusCancelled  = "cancelled"
)

// IsValidOrderType valida el tipo de orden.
func IsValidOrderType(t string) bool {
	return t == OrderTypeFromWarehouse || t == OrderTypeToWarehouse
}

// PartyKind distingue si una contraparte de la orden es una bodega o un vendedor.
type PartyKind string

const (
	PartyWarehouse PartyKind = "warehouse"
	PartyVendor    PartyKind = "vendor"
)

// Party es una contraparte de la orden (proveedor o destinatario).
type Party struct {
	Kind PartyKind
	ID   string
}

// WarehouseParty construye una contraparte bodega.
func WarehouseParty(id string) Party { return Party{Kind: PartyWarehouse, ID: id} }

// VendorParty construye una contraparte vendedor.
func VendorParty(id string) Party { return Party{Kind: PartyVendor, ID: id} }

// IsWarehouse indica si la contraparte es una bodega.
func (p Party) IsWarehouse() bool { return p.Kind == PartyWarehouse }

// PartiesFor resuelve proveedor y destinatario a partir del tipo de orden y los IDs persistidos.
func PartiesFor(orderType, supplierID, recipientID string) (supplier, recipient Party) {
	if orderType == OrderTypeFromWarehouse {
		return WarehouseParty(supplierID), VendorParty(recipientID)
	}
	return VendorParty(supplierID), WarehouseParty(recipientID)
}

// Order representa una orden entre una bodega y un vendedor.
type Order struct {
	ID          string
	OrderType   string
	Supplier    Party
	Recipient   Party
	Status      string
	TotalPrice  decimal.Decimal
	TransportID *string
	ShippedAt   *time.Time // primera salida de stock; nil mientras no se haya despachado
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// WarehouseSide devuelve la contraparte bodega de la orden.
func (o *Order) WarehouseSide() Party {
	if o.Supplier.IsWarehouse() {
		return o.Supplier
	}
	return o.Recipient
}

// VendorSide devuelve la contraparte vendedor de la orden.
func (o *Order) VendorSide() Party {
	if o.Supplier.IsWarehouse() {
		return o.Recipient
	}
	return o.Supplier
}

func (o *Order) IsNew() bool       { return o.Status == OrderStatusNew }
func (o *Order) IsCancelled() bool { return o.Status == OrderStatusCancelled }
func (o *Order) IsFinished() bool  { return o.Status == OrderStatusFinished }
func (o *Order) IsShipped() bool   { return o.ShippedAt != nil }

// OrderItem es una línea de la orden (única por orden+producto).
type OrderItem struct {
	OrderID   string
	ProductID string
	Quantity  int
}

// LostItem registra cantidades perdidas o dañadas de un producto en una orden (acumulativo).
type LostItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
}

// Transport representa un medio de transporte asignable a una orden confirmada.
type Transport struct {
	ID             string
	Capacity       decimal.Decimal
	TransportType  string
	Speed          decimal.Decimal
	PricePerWeight decimal.Decimal
}
