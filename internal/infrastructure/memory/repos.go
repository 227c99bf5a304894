package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodegas-api/internal/domain"
	"github.com/jhoicas/Bodegas-api/internal/domain/capacity"
	"github.com/jhoicas/Bodegas-api/internal/domain/entity"
	"github.com/jhoicas/Bodegas-api/internal/domain/repository"
)

var (
	_ repository.WarehouseRepository  = warehouseRepo{}
	_ repository.RackRepository       = rackRepo{}
	_ repository.InventoryRepository  = inventoryRepo{}
	_ repository.ThrownItemRepository = thrownRepo{}
	_ repository.ProductRepository    = productRepo{}
	_ repository.OrderRepository      = orderRepo{}
	_ repository.LostItemRepository   = lostRepo{}
	_ repository.TransportRepository  = transportRepo{}
	_ repository.VendorRepository     = vendorRepo{}
)

func duplicate(what, id string) error {
	return domain.Errorf(domain.ErrConflict, "%s %s already exists", what, id)
}

// ─── Warehouse ────────────────────────────────────────────────────────────────

type warehouseRepo struct{ s *Store }

func (r warehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	if _, ok := r.s.data.warehouses[w.ID]; ok {
		return duplicate("warehouse", w.ID)
	}
	r.s.data.warehouses[w.ID] = *w
	return nil
}

func (r warehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	w, ok := r.s.data.warehouses[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

// GetForUpdate equivale a GetByID: la transacción completa ya tiene acceso exclusivo.
func (r warehouseRepo) GetForUpdate(ctx context.Context, id string) (*entity.Warehouse, error) {
	return r.GetByID(ctx, id)
}

func (r warehouseRepo) UpdateRemainingCapacity(_ context.Context, id string, remaining decimal.Decimal) error {
	w, ok := r.s.data.warehouses[id]
	if !ok {
		return domain.NewError(domain.ErrNotFound, "Warehouse Not Found")
	}
	if remaining.IsNegative() || remaining.GreaterThan(w.OverallCapacity) {
		return domain.NewError(domain.ErrCapacityInconsistent, "warehouse remaining capacity out of range")
	}
	w.RemainingCapacity = remaining
	w.UpdatedAt = time.Now()
	r.s.data.warehouses[id] = w
	return nil
}

func (r warehouseRepo) ListIDsBySupervisor(_ context.Context, supervisorID string) ([]string, error) {
	var out []string
	for _, w := range r.s.data.warehouses {
		if w.SupervisorID == supervisorID {
			out = append(out, w.ID)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r warehouseRepo) ListIDsByCompany(_ context.Context, companyID string) ([]string, error) {
	var out []string
	for _, w := range r.s.data.warehouses {
		if w.CompanyID == companyID {
			out = append(out, w.ID)
		}
	}
	sort.Strings(out)
	return out, nil
}

// ─── Rack ─────────────────────────────────────────────────────────────────────

type rackRepo struct{ s *Store }

func (r rackRepo) Create(_ context.Context, rack *entity.Rack) error {
	if _, ok := r.s.data.racks[rack.ID]; ok {
		return duplicate("rack", rack.ID)
	}
	for _, other := range r.s.data.racks {
		if other.WarehouseID == rack.WarehouseID && other.Position == rack.Position {
			return duplicate("rack position", rack.Position)
		}
	}
	r.s.data.racks[rack.ID] = *rack
	return nil
}

func (r rackRepo) GetByID(_ context.Context, id string) (*entity.Rack, error) {
	rack, ok := r.s.data.racks[id]
	if !ok {
		return nil, nil
	}
	return &rack, nil
}

func (r rackRepo) GetForUpdate(ctx context.Context, id string) (*entity.Rack, error) {
	return r.GetByID(ctx, id)
}

func (r rackRepo) UpdateRemainingCapacity(_ context.Context, id string, remaining decimal.Decimal) error {
	rack, ok := r.s.data.racks[id]
	if !ok {
		return domain.NewError(domain.ErrNotFound, "Rack Not Found")
	}
	if remaining.IsNegative() || remaining.GreaterThan(rack.OverallCapacity) {
		return domain.NewError(domain.ErrCapacityInconsistent, "rack remaining capacity out of range")
	}
	rack.RemainingCapacity = remaining
	rack.UpdatedAt = time.Now()
	r.s.data.racks[id] = rack
	return nil
}

func (r rackRepo) ListByWarehouse(_ context.Context, warehouseID string) ([]*entity.Rack, error) {
	return racksOf(r.s.data, warehouseID), nil
}

func (r rackRepo) SumOverallByWarehouse(_ context.Context, warehouseID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, rack := range racksOf(r.s.data, warehouseID) {
		total = total.Add(rack.OverallCapacity)
	}
	return total, nil
}

func (r rackRepo) PositionExists(_ context.Context, warehouseID, position string) (bool, error) {
	for _, rack := range r.s.data.racks {
		if rack.WarehouseID == warehouseID && rack.Position == position {
			return true, nil
		}
	}
	return false, nil
}

// racksOf devuelve los racks de la bodega por position (e id para desempatar).
func racksOf(d *data, warehouseID string) []*entity.Rack {
	var out []*entity.Rack
	for _, rack := range d.racks {
		if rack.WarehouseID == warehouseID {
			rack := rack
			out = append(out, &rack)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ─── Inventory ────────────────────────────────────────────────────────────────

type inventoryRepo struct{ s *Store }

func findInventory(d *data, rackID, productID string) (*entity.Inventory, bool) {
	for _, inv := range d.inventories {
		if inv.RackID == rackID && inv.ProductID == productID {
			inv := inv
			return &inv, true
		}
	}
	return nil, false
}

func (r inventoryRepo) Get(_ context.Context, rackID, productID string) (*entity.Inventory, error) {
	inv, _ := findInventory(r.s.data, rackID, productID)
	return inv, nil
}

func (r inventoryRepo) GetForUpdate(ctx context.Context, rackID, productID string) (*entity.Inventory, error) {
	return r.Get(ctx, rackID, productID)
}

func (r inventoryRepo) Create(_ context.Context, inv *entity.Inventory) error {
	if _, ok := findInventory(r.s.data, inv.RackID, inv.ProductID); ok {
		return duplicate("inventory", inv.RackID+"/"+inv.ProductID)
	}
	if inv.Quantity < 0 {
		return domain.NewError(domain.ErrCapacityInconsistent, "inventory quantity should not be negative")
	}
	r.s.data.inventories[inv.ID] = *inv
	return nil
}

func (r inventoryRepo) Update(_ context.Context, inv *entity.Inventory) error {
	if _, ok := r.s.data.inventories[inv.ID]; !ok {
		return domain.NewError(domain.ErrNotFound, "Inventory Not Found")
	}
	if inv.Quantity < 0 {
		return domain.NewError(domain.ErrCapacityInconsistent, "inventory quantity should not be negative")
	}
	r.s.data.inventories[inv.ID] = *inv
	return nil
}

func (r inventoryRepo) Delete(_ context.Context, id string) error {
	delete(r.s.data.inventories, id)
	return nil
}

func (r inventoryRepo) ListByRack(_ context.Context, rackID string) ([]*entity.Inventory, error) {
	var out []*entity.Inventory
	for _, inv := range r.s.data.inventories {
		if inv.RackID == rackID {
			inv := inv
			out = append(out, &inv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

func (r inventoryRepo) ListByWarehouse(_ context.Context, warehouseID string) ([]*entity.Inventory, error) {
	var out []*entity.Inventory
	for _, inv := range r.s.data.inventories {
		rack, ok := r.s.data.racks[inv.RackID]
		if ok && rack.WarehouseID == warehouseID {
			inv := inv
			out = append(out, &inv)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RackID != out[j].RackID {
			return out[i].RackID < out[j].RackID
		}
		return out[i].ProductID < out[j].ProductID
	})
	return out, nil
}

func (r inventoryRepo) SumQuantities(ctx context.Context, warehouseID string, productIDs []string) (map[string]int, error) {
	wanted := make(map[string]bool, len(productIDs))
	for _, id := range productIDs {
		wanted[id] = true
	}
	rows, _ := r.ListByWarehouse(ctx, warehouseID)
	out := make(map[string]int, len(productIDs))
	for _, inv := range rows {
		if wanted[inv.ProductID] {
			out[inv.ProductID] += inv.Quantity
		}
	}
	return out, nil
}

// ─── ThrownItem ───────────────────────────────────────────────────────────────

type thrownRepo struct{ s *Store }

func (r thrownRepo) Create(_ context.Context, item *entity.ThrownItem) error {
	r.s.data.thrown = append(r.s.data.thrown, *item)
	return nil
}

func (r thrownRepo) SummaryByCompany(_ context.Context, companyID string, from, to *time.Time) ([]entity.ThrownSummary, error) {
	type key struct{ warehouse, product string }
	totals := map[key]*entity.ThrownSummary{}
	for _, t := range r.s.data.thrown {
		w, ok := r.s.data.warehouses[t.WarehouseID]
		if !ok || w.CompanyID != companyID {
			continue
		}
		if (from != nil && t.ThrownAt.Before(*from)) || (to != nil && t.ThrownAt.After(*to)) {
			continue
		}
		k := key{t.WarehouseID, t.ProductID}
		row, ok := totals[k]
		if !ok {
			row = &entity.ThrownSummary{
				WarehouseID:   w.ID,
				WarehouseName: w.Name,
				ProductID:     t.ProductID,
				ProductName:   r.s.data.products[t.ProductID].Name,
			}
			totals[k] = row
		}
		row.TotalQuantity += t.Quantity
	}
	out := make([]entity.ThrownSummary, 0, len(totals))
	for _, row := range totals {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WarehouseName != out[j].WarehouseName {
			return out[i].WarehouseName < out[j].WarehouseName
		}
		return out[i].ProductName < out[j].ProductName
	})
	return out, nil
}

// ─── Product ──────────────────────────────────────────────────────────────────

type productRepo struct{ s *Store }

func (r productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.s.data.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r productRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		if p, ok := r.s.data.products[id]; ok {
			out[id] = &p
		}
	}
	return out, nil
}

// ─── Order ────────────────────────────────────────────────────────────────────

type orderRepo struct{ s *Store }

func (r orderRepo) Create(_ context.Context, o *entity.Order) error {
	if _, ok := r.s.data.orders[o.ID]; ok {
		return duplicate("order", o.ID)
	}
	r.s.data.orders[o.ID] = *o
	return nil
}

func (r orderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	o, ok := r.s.data.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r orderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r orderRepo) Update(_ context.Context, o *entity.Order) error {
	cur, ok := r.s.data.orders[o.ID]
	if !ok {
		return domain.NewError(domain.ErrNotFound, "Order Not Found")
	}
	cur.Status = o.Status
	cur.TotalPrice = o.TotalPrice
	cur.TransportID = o.TransportID
	cur.ShippedAt = o.ShippedAt
	cur.UpdatedAt = o.UpdatedAt
	r.s.data.orders[o.ID] = cur
	return nil
}

func (r orderRepo) ListItems(_ context.Context, orderID string) ([]entity.OrderItem, error) {
	out := append([]entity.OrderItem(nil), r.s.data.items[orderID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

func (r orderRepo) ReplaceItems(_ context.Context, orderID string, items []entity.OrderItem) error {
	r.s.data.items[orderID] = append([]entity.OrderItem(nil), items...)
	return nil
}

func (r orderRepo) UpdateItemQuantity(_ context.Context, orderID, productID string, quantity int) error {
	items := r.s.data.items[orderID]
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = quantity
			return nil
		}
	}
	return domain.NewError(domain.ErrNotFound, "Order item Not Found")
}

func (r orderRepo) DeleteItem(_ context.Context, orderID, productID string) error {
	items := r.s.data.items[orderID]
	for i := range items {
		if items[i].ProductID == productID {
			r.s.data.items[orderID] = append(items[:i:i], items[i+1:]...)
			return nil
		}
	}
	return domain.NewError(domain.ErrNotFound, "Order item Not Found")
}

func (r orderRepo) ReservedVolume(_ context.Context, warehouseID, excludeOrderID string, statuses []string) (decimal.Decimal, error) {
	wanted := make(map[string]bool, len(statuses))
	for _, st := range statuses {
		wanted[st] = true
	}
	total := decimal.Zero
	for _, o := range r.s.data.orders {
		if o.ID == excludeOrderID || o.OrderType != entity.OrderTypeToWarehouse ||
			o.Recipient.ID != warehouseID || !wanted[o.Status] {
			continue
		}
		for _, it := range r.s.data.items[o.ID] {
			total = total.Add(capacity.Volume(it.Quantity, r.s.data.products[it.ProductID].Volume))
		}
	}
	return total, nil
}

// ─── LostItem ─────────────────────────────────────────────────────────────────

type lostRepo struct{ s *Store }

func (r lostRepo) Add(_ context.Context, orderID, productID string, quantity int) error {
	byProduct := r.s.data.lost[orderID]
	if byProduct == nil {
		byProduct = map[string]entity.LostItem{}
		r.s.data.lost[orderID] = byProduct
	}
	item, ok := byProduct[productID]
	if !ok {
		item = entity.LostItem{ID: uuid.New().String(), OrderID: orderID, ProductID: productID}
	}
	item.Quantity += quantity
	byProduct[productID] = item
	return nil
}

func (r lostRepo) ListByOrder(_ context.Context, orderID string) ([]entity.LostItem, error) {
	out := make([]entity.LostItem, 0, len(r.s.data.lost[orderID]))
	for _, item := range r.s.data.lost[orderID] {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

// ─── Transport / Vendor ───────────────────────────────────────────────────────

type transportRepo struct{ s *Store }

func (r transportRepo) GetByID(_ context.Context, id string) (*entity.Transport, error) {
	t, ok := r.s.data.transports[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

type vendorRepo struct{ s *Store }

func (r vendorRepo) GetByID(_ context.Context, id string) (*entity.Vendor, error) {
	v, ok := r.s.data.vendors[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r vendorRepo) ListIDsByOwner(_ context.Context, ownerID string) ([]string, error) {
	var out []string
	for _, v := range r.s.data.vendors {
		if v.OwnerID == ownerID {
			out = append(out, v.ID)
		}
	}
	sort.Strings(out)
	return out, nil
}
