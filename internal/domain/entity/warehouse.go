package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de bodega; un producto solo puede almacenarse en una bodega de su mismo tipo.
const (
	WarehouseTypeFreezer      = "freezer"
	WarehouseTypeRefrigerated = "refrigerated"
	WarehouseTypeDry          = "dry"
	WarehouseTypeHazardous    = "hazardous"
)

// IsValidWarehouseType valida el tipo de bodega/producto.
func IsValidWarehouseType(t string) bool {
	switch t {
	case WarehouseTypeFreezer, WarehouseTypeRefrigerated, WarehouseTypeDry, WarehouseTypeHazardous:
		return true
	}
	return false
}

// Warehouse representa una bodega de una empresa, con capacidad total y restante (volumen).
// RemainingCapacity es estado derivado: se actualiza en la misma transacción que el inventario.
type Warehouse struct {
	ID                string
	CompanyID         string
	SupervisorID      string
	Name              string
	Address           string
	WarehouseType     string
	OverallCapacity   decimal.Decimal
	RemainingCapacity decimal.Decimal
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Rack representa un rack dentro de una bodega. Position es única por bodega y define el orden de asignación.
type Rack struct {
	ID                string
	WarehouseID       string
	Position          string
	OverallCapacity   decimal.Decimal
	RemainingCapacity decimal.Decimal
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsEmpty indica si el rack no tiene volumen ocupado.
func (r *Rack) IsEmpty() bool {
	return r.RemainingCapacity.Equal(r.OverallCapacity)
}
