// Package ledger implementa la cascada de capacidad inventario -> rack -> bodega.
//
// No tiene persistencia propia: es la disciplina que aplica todo llamador que modifica Inventory,
// dentro de la misma transacción (txn.Store) y con las filas de bodega y rack bloqueadas.
package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodegas-api/internal/application/txn"
	"github.com/jhoicas/Bodegas-api/internal/domain"
	"github.com/jhoicas/Bodegas-api/internal/domain/capacity"
	"github.com/jhoicas/Bodegas-api/internal/domain/entity"
)

// Ledger aplica cambios de cantidad y propaga el delta de volumen.
type Ledger struct {
	now func() time.Time
}

// New construye el ledger. clock nil = time.Now.
func New(clock func() time.Time) *Ledger {
	if clock == nil {
		clock = time.Now
	}
	return &Ledger{now: clock}
}

// Now devuelve la hora del reloj del ledger.
func (l *Ledger) Now() time.Time { return l.now() }

// AdjustInventory suma quantityDelta (con signo) a la fila (rack, producto) bloqueándola:
// recalcula total_volume, elimina la fila al llegar a 0 y la crea si no existe
// (arrival_date = ahora, expiry_date = ahora + expiry_duration).
// Devuelve la nueva cantidad y el delta de volumen a propagar con ApplyVolumeDelta.
func (l *Ledger) AdjustInventory(ctx context.Context, s txn.Store, rackID, productID string, quantityDelta int) (int, decimal.Decimal, error) {
	if quantityDelta == 0 {
		return 0, decimal.Zero, domain.NewError(domain.ErrValidation, "Quantity should not be 0")
	}
	product, err := s.Products.GetByID(ctx, productID)
	if err != nil {
		return 0, decimal.Zero, err
	}
	if product == nil {
		return 0, decimal.Zero, domain.NewError(domain.ErrNotFound, "Product Not Found")
	}

	inv, err := s.Inventories.GetForUpdate(ctx, rackID, productID)
	if err != nil {
		return 0, decimal.Zero, err
	}
	current := 0
	if inv != nil {
		current = inv.Quantity
	}
	newQty := current + quantityDelta
	if newQty < 0 {
		return current, decimal.Zero, domain.NewError(domain.ErrInsufficientStock,
			"This rack does not have the specified amount of goods")
	}
	volumeDelta := capacity.Volume(quantityDelta, product.Volume)

	switch {
	case inv == nil:
		now := l.now()
		inv = &entity.Inventory{
			ID:          uuid.New().String(),
			RackID:      rackID,
			ProductID:   productID,
			Quantity:    newQty,
			TotalVolume: capacity.Volume(newQty, product.Volume),
			ArrivalDate: now,
			ExpiryDate:  product.ExpiryFrom(now),
		}
		err = s.Inventories.Create(ctx, inv)
	case newQty == 0:
		err = s.Inventories.Delete(ctx, inv.ID)
	default:
		inv.Quantity = newQty
		inv.TotalVolume = capacity.Volume(newQty, product.Volume)
		err = s.Inventories.Update(ctx, inv)
	}
	if err != nil {
		return current, decimal.Zero, err
	}
	return newQty, volumeDelta, nil
}

// ApplyVolumeDelta resta volumeDelta de la capacidad restante del rack y de su bodega.
// Bloquea primero la bodega y luego el rack (orden fijo para todos los llamadores).
func (l *Ledger) ApplyVolumeDelta(ctx context.Context, s txn.Store, rackID string, volumeDelta decimal.Decimal) error {
	rack, err := s.Racks.GetByID(ctx, rackID)
	if err != nil {
		return err
	}
	if rack == nil {
		return domain.NewError(domain.ErrNotFound, "Rack Not Found")
	}
	warehouse, err := s.Warehouses.GetForUpdate(ctx, rack.WarehouseID)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return domain.NewError(domain.ErrNotFound, "Warehouse Not Found")
	}
	rack, err = s.Racks.GetForUpdate(ctx, rackID)
	if err != nil {
		return err
	}

	rackRemaining, err := capacity.Apply(rack.RemainingCapacity, rack.OverallCapacity, volumeDelta)
	if err != nil {
		return scoped(err, "rack "+rack.Position)
	}
	whRemaining, err := capacity.Apply(warehouse.RemainingCapacity, warehouse.OverallCapacity, volumeDelta)
	if err != nil {
		return scoped(err, "warehouse "+warehouse.Name)
	}
	if err := s.Racks.UpdateRemainingCapacity(ctx, rack.ID, rackRemaining); err != nil {
		return err
	}
	return s.Warehouses.UpdateRemainingCapacity(ctx, warehouse.ID, whRemaining)
}

// scoped antepone el recurso al mensaje de un error de capacidad.
func scoped(err error, where string) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return domain.Errorf(de.Kind, "%s: %s", de.Message, where)
	}
	return err
}
