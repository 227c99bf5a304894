package inventory

import (
	"github.com/jhoicas/Bodegas-api/internal/domain"
	"github.com/jhoicas/Bodegas-api/internal/domain/entity"
)

// msgNotStackable se devuelve tanto si el ocupante como si el entrante no son apilables.
const msgNotStackable = "Non stackable product is already occupying this rack"

// CheckStackable valida que incoming pueda convivir con los productos que ya ocupan el rack.
// Filas del mismo producto no cuentan como ocupantes (se fusionan).
func CheckStackable(incoming *entity.Product, occupants []*entity.Product) error {
	for _, p := range occupants {
		if p == nil || p.ID == incoming.ID {
			continue
		}
		if !p.IsStackable || !incoming.IsStackable {
			return domain.NewError(domain.ErrValidation, msgNotStackable)
		}
	}
	return nil
}

// CheckType valida que el tipo de producto coincida con el tipo de bodega.
func CheckType(warehouse *entity.Warehouse, product *entity.Product) error {
	if warehouse.WarehouseType != product.ProductType {
		return domain.Errorf(domain.ErrValidation,
			"Product with type %s cannot be put to the warehouse for %s products",
			product.ProductType, warehouse.WarehouseType)
	}
	return nil
}
