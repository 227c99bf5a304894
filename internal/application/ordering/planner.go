package ordering

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodegas-api/internal/application/inventory"
	"github.com/jhoicas/Bodegas-api/internal/application/txn"
	"github.com/jhoicas/Bodegas-api/internal/domain"
	"github.com/jhoicas/Bodegas-api/internal/domain/capacity"
	"github.com/jhoicas/Bodegas-api/internal/domain/entity"
)

// Direction sentido de un plan de asignación.
type Direction string

const (
	DirectionSend    Direction = "send"    // salida desde racks de la bodega origen (Remove)
	DirectionReceive Direction = "receive" // ubicación en racks de la bodega destino (Place)
)

// Allocation una entrada del plan: quantity unidades de ProductID en RackID.
type Allocation struct {
	ProductID    string
	RackID       string
	RackPosition string
	Quantity     int
	Volume       decimal.Decimal
}

// Plan lista ordenada de asignaciones que cubre por completo las líneas de una orden.
type Plan struct {
	OrderID     string
	WarehouseID string
	Direction   Direction
	Allocations []Allocation
}

// Planner calcula planes (solo lectura) y los ejecuta a través del Inventory Store.
type Planner struct {
	inventory *inventory.UseCase
}

// NewPlanner construye el planner.
func NewPlanner(inv *inventory.UseCase) *Planner {
	return &Planner{inventory: inv}
}

// PlanSend asigna cada línea a los racks que tienen el producto, first-fit por position ascendente.
func (p *Planner) PlanSend(ctx context.Context, s txn.Store, order *entity.Order) (*Plan, error) {
	if order.Status != entity.OrderStatusSubmitted {
		return nil, domain.Errorf(domain.ErrInvalidTransition, "cannot plan send for an order in status %q", order.Status)
	}
	if !order.Supplier.IsWarehouse() {
		return nil, domain.NewError(domain.ErrValidation, "order has no source warehouse")
	}
	whID := order.Supplier.ID
	items, products, err := loadItems(ctx, s, order.ID)
	if err != nil {
		return nil, err
	}
	racks, err := s.Racks.ListByWarehouse(ctx, whID)
	if err != nil {
		return nil, err
	}
	rows, err := s.Inventories.ListByWarehouse(ctx, whID)
	if err != nil {
		return nil, err
	}
	held := make(map[string]map[string]int, len(racks))
	for _, r := range rows {
		if held[r.RackID] == nil {
			held[r.RackID] = map[string]int{}
		}
		held[r.RackID][r.ProductID] += r.Quantity
	}

	plan := &Plan{OrderID: order.ID, WarehouseID: whID, Direction: DirectionSend}
	for _, it := range items {
		product := products[it.ProductID]
		remaining := it.Quantity
		for _, rack := range racks {
			if remaining == 0 {
				break
			}
			take := min(remaining, held[rack.ID][it.ProductID])
			if take == 0 {
				continue
			}
			held[rack.ID][it.ProductID] -= take
			remaining -= take
			plan.Allocations = append(plan.Allocations, Allocation{
				ProductID:    it.ProductID,
				RackID:       rack.ID,
				RackPosition: rack.Position,
				Quantity:     take,
				Volume:       capacity.Volume(take, product.Volume),
			})
		}
		if remaining > 0 {
			return nil, domain.Errorf(domain.ErrAllocationImpossible,
				"cannot allocate %d units of %s from the racks of the warehouse", remaining, product.Name)
		}
	}
	return plan, nil
}

// PlanReceive asigna cada línea a racks compatibles de la bodega destino, first-fit por position.
// Simula la capacidad restante y los ocupantes de cada rack para no sobre-asignar ni violar apilamiento.
func (p *Planner) PlanReceive(ctx context.Context, s txn.Store, order *entity.Order) (*Plan, error) {
	switch order.Status {
	case entity.OrderStatusDelivered, entity.OrderStatusLost, entity.OrderStatusDamaged:
	default:
		return nil, domain.Errorf(domain.ErrInvalidTransition, "cannot plan receive for an order in status %q", order.Status)
	}
	if !order.Recipient.IsWarehouse() {
		return nil, domain.NewError(domain.ErrValidation, "order has no destination warehouse")
	}
	whID := order.Recipient.ID
	warehouse, err := s.Warehouses.GetByID(ctx, whID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.NewError(domain.ErrNotFound, "Warehouse Not Found")
	}
	items, products, err := loadItems(ctx, s, order.ID)
	if err != nil {
		return nil, err
	}
	racks, err := s.Racks.ListByWarehouse(ctx, whID)
	if err != nil {
		return nil, err
	}
	rows, err := s.Inventories.ListByWarehouse(ctx, whID)
	if err != nil {
		return nil, err
	}
	occupantIDs := make([]string, 0, len(rows))
	for _, r := range rows {
		occupantIDs = append(occupantIDs, r.ProductID)
	}
	occupantProducts, err := s.Products.GetByIDs(ctx, occupantIDs)
	if err != nil {
		return nil, err
	}
	occupants := make(map[string][]*entity.Product, len(racks))
	for _, r := range rows {
		if op, ok := occupantProducts[r.ProductID]; ok {
			occupants[r.RackID] = append(occupants[r.RackID], op)
		}
	}
	free := make(map[string]decimal.Decimal, len(racks))
	for _, rack := range racks {
		free[rack.ID] = rack.RemainingCapacity
	}

	plan := &Plan{OrderID: order.ID, WarehouseID: whID, Direction: DirectionReceive}
	for _, it := range items {
		product := products[it.ProductID]
		if err := inventory.CheckType(warehouse, product); err != nil {
			return nil, err
		}
		remaining := it.Quantity
		for _, rack := range racks {
			if remaining == 0 {
				break
			}
			if inventory.CheckStackable(product, occupants[rack.ID]) != nil {
				continue
			}
			take := min(remaining, capacity.UnitsThatFit(free[rack.ID], product.Volume))
			if take == 0 {
				continue
			}
			volume := capacity.Volume(take, product.Volume)
			free[rack.ID] = free[rack.ID].Sub(volume)
			occupants[rack.ID] = append(occupants[rack.ID], product)
			remaining -= take
			plan.Allocations = append(plan.Allocations, Allocation{
				ProductID:    it.ProductID,
				RackID:       rack.ID,
				RackPosition: rack.Position,
				Quantity:     take,
				Volume:       volume,
			})
		}
		if remaining > 0 {
			return nil, domain.Errorf(domain.ErrAllocationImpossible,
				"cannot place %d units of %s into the racks of the warehouse", remaining, product.Name)
		}
	}
	return plan, nil
}

// ExecutePlan aplica cada asignación (Remove en send, Place en receive) en la transacción del llamador.
// Un fallo en cualquier paso aborta la transacción completa.
func (p *Planner) ExecutePlan(ctx context.Context, s txn.Store, plan *Plan) error {
	ids := make([]string, 0, len(plan.Allocations))
	for _, a := range plan.Allocations {
		ids = append(ids, a.ProductID)
	}
	products, err := s.Products.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, a := range plan.Allocations {
		product, ok := products[a.ProductID]
		if !ok {
			return domain.Errorf(domain.ErrNotFound, "Product Not Found: %s", a.ProductID)
		}
		switch plan.Direction {
		case DirectionSend:
			_, err = p.inventory.RemoveInTx(ctx, s, a.RackID, product, a.Quantity)
		case DirectionReceive:
			_, err = p.inventory.PlaceInTx(ctx, s, a.RackID, product, a.Quantity)
		default:
			err = domain.Errorf(domain.ErrValidation, "unknown plan direction %q", plan.Direction)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// loadItems lee las líneas de la orden (ordenadas por producto) y sus productos.
func loadItems(ctx context.Context, s txn.Store, orderID string) ([]entity.OrderItem, map[string]*entity.Product, error) {
	items, err := s.Orders.ListItems(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	items = sortedItems(items)
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	products, err := s.Products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	for _, id := range ids {
		if _, ok := products[id]; !ok {
			return nil, nil, domain.Errorf(domain.ErrNotFound, "Product Not Found: %s", id)
		}
	}
	return items, products, nil
}
