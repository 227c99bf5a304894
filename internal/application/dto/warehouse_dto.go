package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateWarehouseRequest entrada para crear una bodega.
// CompanyID solo lo usa admin; para manager se toma del token.
type CreateWarehouseRequest struct {
	Name            string          `json:"name"`
	Address         string          `json:"address"`
	WarehouseType   string          `json:"warehouse_type"`
	OverallCapacity decimal.Decimal `json:"overall_capacity"`
	SupervisorID    string          `json:"supervisor_id"`
	CompanyID       string          `json:"company_id,omitempty"`
}

// WarehouseResponse salida de una bodega.
type WarehouseResponse struct {
	ID                string          `json:"id"`
	CompanyID         string          `json:"company_id"`
	SupervisorID      string          `json:"supervisor_id"`
	Name              string          `json:"name"`
	Address           string          `json:"address"`
	WarehouseType     string          `json:"warehouse_type"`
	OverallCapacity   decimal.Decimal `json:"overall_capacity"`
	RemainingCapacity decimal.Decimal `json:"remaining_capacity"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// CreateRackRequest entrada para crear un rack en una bodega.
type CreateRackRequest struct {
	Position        string          `json:"position"`
	OverallCapacity decimal.Decimal `json:"overall_capacity"`
}

// RackResponse salida de un rack; Items solo se llena en GET /racks/:id.
type RackResponse struct {
	ID                string              `json:"id"`
	WarehouseID       string              `json:"warehouse_id"`
	Position          string              `json:"position"`
	OverallCapacity   decimal.Decimal     `json:"overall_capacity"`
	RemainingCapacity decimal.Decimal     `json:"remaining_capacity"`
	Items             []InventoryResponse `json:"items,omitempty"`
}
