package ordering

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodegas-api/internal/application/txn"
	"github.com/jhoicas/Bodegas-api/internal/domain"
	"github.com/jhoicas/Bodegas-api/internal/domain/capacity"
	"github.com/jhoicas/Bodegas-api/internal/domain/entity"
	"github.com/jhoicas/Bodegas-api/internal/domain/lifecycle"
)

// Validation resultado de validar un set de líneas de orden.
type Validation struct {
	TotalVolume decimal.Decimal
	TotalPrice  decimal.Decimal
	Products    map[string]*entity.Product
}

// ValidateNewOrder valida las líneas de una orden nueva y calcula volumen y precio totales.
func ValidateNewOrder(ctx context.Context, s txn.Store, orderType string, supplier, recipient entity.Party, items []entity.OrderItem) (Validation, error) {
	return validate(ctx, s, orderType, supplier, recipient, items, "")
}

// ValidateOrderUpdate re-ejecuta las validaciones contra el nuevo set de líneas. Solo en estado new.
func ValidateOrderUpdate(ctx context.Context, s txn.Store, order *entity.Order, items []entity.OrderItem) (Validation, error) {
	if !order.IsNew() {
		return Validation{}, domain.Errorf(domain.ErrInvalidTransition,
			"order in status %q cannot be edited", order.Status)
	}
	return validate(ctx, s, order.OrderType, order.Supplier, order.Recipient, items, order.ID)
}

func validate(ctx context.Context, s txn.Store, orderType string, supplier, recipient entity.Party, items []entity.OrderItem, excludeOrderID string) (Validation, error) {
	if !entity.IsValidOrderType(orderType) {
		return Validation{}, domain.Errorf(domain.ErrValidation, "invalid order type %q", orderType)
	}
	if len(items) == 0 {
		return Validation{}, domain.NewError(domain.ErrValidation, "Order should contain at least one item")
	}
	ids := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if it.Quantity <= 0 {
			return Validation{}, domain.Errorf(domain.ErrValidation, "quantity of product %s should be greater than 0", it.ProductID)
		}
		if seen[it.ProductID] {
			return Validation{}, domain.Errorf(domain.ErrValidation, "product %s is repeated in the order", it.ProductID)
		}
		seen[it.ProductID] = true
		ids = append(ids, it.ProductID)
	}

	whSide, vendorSide := supplier, recipient
	if !whSide.IsWarehouse() {
		whSide, vendorSide = recipient, supplier
	}
	vendor, err := s.Vendors.GetByID(ctx, vendorSide.ID)
	if err != nil {
		return Validation{}, err
	}
	if vendor == nil {
		return Validation{}, domain.NewError(domain.ErrNotFound, "Vendor Not Found")
	}
	// La bodega destino se bloquea para serializar las reservas de capacidad concurrentes.
	var warehouse *entity.Warehouse
	if orderType == entity.OrderTypeToWarehouse {
		warehouse, err = s.Warehouses.GetForUpdate(ctx, whSide.ID)
	} else {
		warehouse, err = s.Warehouses.GetByID(ctx, whSide.ID)
	}
	if err != nil {
		return Validation{}, err
	}
	if warehouse == nil {
		return Validation{}, domain.NewError(domain.ErrNotFound, "Warehouse Not Found")
	}

	products, err := s.Products.GetByIDs(ctx, ids)
	if err != nil {
		return Validation{}, err
	}
	productType := ""
	for _, id := range ids {
		p, ok := products[id]
		if !ok || p.CompanyID != warehouse.CompanyID {
			return Validation{}, domain.Errorf(domain.ErrNotFound, "Product Not Found: %s", id)
		}
		if productType == "" {
			productType = p.ProductType
		} else if p.ProductType != productType {
			return Validation{}, domain.NewError(domain.ErrValidation, "All products in the order should have the same type")
		}
	}
	if productType != warehouse.WarehouseType {
		return Validation{}, domain.Errorf(domain.ErrValidation,
			"Product with type %s cannot be put to the warehouse for %s products", productType, warehouse.WarehouseType)
	}

	out := Validation{TotalVolume: decimal.Zero, TotalPrice: decimal.Zero, Products: products}
	for _, it := range items {
		p := products[it.ProductID]
		out.TotalVolume = out.TotalVolume.Add(capacity.Volume(it.Quantity, p.Volume))
		out.TotalPrice = out.TotalPrice.Add(p.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	if vendor.IsGovernment {
		out.TotalPrice = decimal.Zero
	}

	switch orderType {
	case entity.OrderTypeToWarehouse:
		reserved, err := s.Orders.ReservedVolume(ctx, warehouse.ID, excludeOrderID, lifecycle.ReservingStatuses())
		if err != nil {
			return Validation{}, err
		}
		effective := warehouse.RemainingCapacity.Sub(reserved)
		if effective.LessThan(out.TotalVolume) {
			return Validation{}, domain.Errorf(domain.ErrCapacityExceeded,
				"Not enough capacity in warehouse: %s available, %s requested", effective.String(), out.TotalVolume.String())
		}
	case entity.OrderTypeFromWarehouse:
		held, err := s.Inventories.SumQuantities(ctx, warehouse.ID, ids)
		if err != nil {
			return Validation{}, err
		}
		for _, it := range items {
			if held[it.ProductID] < it.Quantity {
				return Validation{}, domain.Errorf(domain.ErrInsufficientStock,
					"Not enough %s in warehouse: %d available, %d requested",
					products[it.ProductID].Name, held[it.ProductID], it.Quantity)
			}
		}
	}
	return out, nil
}

// sortedItems copia las líneas ordenadas por producto para planes deterministas.
func sortedItems(items []entity.OrderItem) []entity.OrderItem {
	out := append([]entity.OrderItem(nil), items...)
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}
