// Package inventory implementa el stock por (rack, producto): ubicación y salida con
// compatibilidad de apilamiento, tipo de bodega y cascada de capacidad en la misma transacción.
package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Bodegas-api/internal/application/access"
	"github.com/jhoicas/Bodegas-api/internal/application/dto"
	"github.com/jhoicas/Bodegas-api/internal/application/ledger"
	"github.com/jhoicas/Bodegas-api/internal/application/txn"
	"github.com/jhoicas/Bodegas-api/internal/domain"
	"github.com/jhoicas/Bodegas-api/internal/domain/capacity"
	"github.com/jhoicas/Bodegas-api/internal/domain/entity"
)

// UseCase operaciones del Inventory Store. Cada llamada pública es una transacción.
type UseCase struct {
	runner txn.Runner
	ledger *ledger.Ledger
	log    zerolog.Logger
	now    func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(runner txn.Runner, l *ledger.Ledger, log zerolog.Logger) *UseCase {
	return &UseCase{runner: runner, ledger: l, log: log, now: l.Now}
}

// Place ubica quantity unidades del producto en el rack.
// Orden de validación: cantidad, rack en alcance, producto de la empresa, capacidad, apilamiento, tipo.
func (uc *UseCase) Place(ctx context.Context, actor access.Actor, in dto.PlaceInventoryRequest) (*dto.InventoryResponse, error) {
	if err := access.Require(actor, access.ActionPlaceInventory); err != nil {
		return nil, err
	}
	if in.Quantity <= 0 {
		return nil, domain.NewError(domain.ErrValidation, "Quantity should be greater than 0")
	}
	var out *entity.Inventory
	err := uc.runner.Run(ctx, func(s txn.Store) error {
		rack, product, err := uc.resolve(ctx, s, actor, in.RackID, in.ProductID)
		if err != nil {
			return err
		}
		out, err = uc.PlaceInTx(ctx, s, rack.ID, product, in.Quantity)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ToInventoryResponse(out), nil
}

// Remove retira quantity unidades del rack. Con WriteOff registra un ThrownItem.
func (uc *UseCase) Remove(ctx context.Context, actor access.Actor, in dto.RemoveInventoryRequest) (*dto.RemoveInventoryResponse, error) {
	if err := access.Require(actor, access.ActionRemoveInventory); err != nil {
		return nil, err
	}
	if in.Quantity <= 0 {
		return nil, domain.NewError(domain.ErrValidation, "Quantity should be greater than 0")
	}
	out := &dto.RemoveInventoryResponse{RackID: in.RackID, ProductID: in.ProductID}
	err := uc.runner.Run(ctx, func(s txn.Store) error {
		rack, product, err := uc.resolve(ctx, s, actor, in.RackID, in.ProductID)
		if err != nil {
			return err
		}
		remaining, err := uc.RemoveInTx(ctx, s, rack.ID, product, in.Quantity)
		if err != nil {
			return err
		}
		out.RemainingQuantity = remaining
		if !in.WriteOff {
			return nil
		}
		thrown := &entity.ThrownItem{
			ID:          uuid.New().String(),
			WarehouseID: rack.WarehouseID,
			ProductID:   product.ID,
			Quantity:    in.Quantity,
			Reason:      in.Reason,
			ThrownAt:    uc.now(),
			CreatedBy:   actor.UserID,
		}
		if err := s.ThrownItems.Create(ctx, thrown); err != nil {
			return err
		}
		out.ThrownItemID = thrown.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out.ThrownItemID != "" {
		uc.log.Info().
			Str("rack_id", in.RackID).
			Str("product_id", in.ProductID).
			Int("quantity", in.Quantity).
			Str("actor", actor.UserID).
			Msg("baja de inventario registrada")
	}
	return out, nil
}

// ListRack devuelve el rack con sus filas de inventario.
func (uc *UseCase) ListRack(ctx context.Context, actor access.Actor, rackID string) (*dto.RackResponse, error) {
	if err := access.Require(actor, access.ActionViewRack); err != nil {
		return nil, err
	}
	var out *dto.RackResponse
	err := uc.runner.Run(ctx, func(s txn.Store) error {
		rack, err := uc.rackInScope(ctx, s, actor, rackID)
		if err != nil {
			return err
		}
		rows, err := s.Inventories.ListByRack(ctx, rack.ID)
		if err != nil {
			return err
		}
		out = ToRackResponse(rack)
		for _, inv := range rows {
			out.Items = append(out.Items, *ToInventoryResponse(inv))
		}
		return nil
	})
	return out, err
}

// PlaceInTx aplica Place sin filtro de alcance sobre la transacción del llamador (receive de órdenes).
// Bloquea bodega y luego rack.
func (uc *UseCase) PlaceInTx(ctx context.Context, s txn.Store, rackID string, product *entity.Product, quantity int) (*entity.Inventory, error) {
	if quantity <= 0 {
		return nil, domain.NewError(domain.ErrValidation, "Quantity should be greater than 0")
	}
	warehouse, rack, err := lockRack(ctx, s, rackID)
	if err != nil {
		return nil, err
	}
	if !capacity.Fits(rack.RemainingCapacity, capacity.Volume(quantity, product.Volume)) {
		return nil, domain.NewError(domain.ErrCapacityExceeded, "Not enough capacity")
	}
	occupants, err := occupantsOf(ctx, s, rack.ID)
	if err != nil {
		return nil, err
	}
	if err := CheckStackable(product, occupants); err != nil {
		return nil, err
	}
	if err := CheckType(warehouse, product); err != nil {
		return nil, err
	}

	_, volumeDelta, err := uc.ledger.AdjustInventory(ctx, s, rack.ID, product.ID, quantity)
	if err != nil {
		return nil, err
	}
	if err := uc.ledger.ApplyVolumeDelta(ctx, s, rack.ID, volumeDelta); err != nil {
		return nil, err
	}
	return s.Inventories.Get(ctx, rack.ID, product.ID)
}

// RemoveInTx aplica Remove sin filtro de alcance sobre la transacción del llamador (send de órdenes).
// Devuelve la cantidad que queda en el rack.
func (uc *UseCase) RemoveInTx(ctx context.Context, s txn.Store, rackID string, product *entity.Product, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, domain.NewError(domain.ErrValidation, "Quantity should be greater than 0")
	}
	_, rack, err := lockRack(ctx, s, rackID)
	if err != nil {
		return 0, err
	}
	inv, err := s.Inventories.GetForUpdate(ctx, rack.ID, product.ID)
	if err != nil {
		return 0, err
	}
	if inv == nil {
		return 0, domain.NewError(domain.ErrNotFound, "Inventory Not Found")
	}
	if quantity > inv.Quantity {
		return inv.Quantity, domain.NewError(domain.ErrInsufficientStock,
			"This rack does not have the specified amount of goods")
	}
	remaining, volumeDelta, err := uc.ledger.AdjustInventory(ctx, s, rack.ID, product.ID, -quantity)
	if err != nil {
		return 0, err
	}
	if err := uc.ledger.ApplyVolumeDelta(ctx, s, rack.ID, volumeDelta); err != nil {
		return 0, err
	}
	return remaining, nil
}

func (uc *UseCase) resolve(ctx context.Context, s txn.Store, actor access.Actor, rackID, productID string) (*entity.Rack, *entity.Product, error) {
	rack, err := uc.rackInScope(ctx, s, actor, rackID)
	if err != nil {
		return nil, nil, err
	}
	product, err := s.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	if product == nil || (!actor.IsAdmin() && product.CompanyID != actor.CompanyID) {
		return nil, nil, domain.NewError(domain.ErrNotFound, "Product Not Found")
	}
	return rack, product, nil
}

func (uc *UseCase) rackInScope(ctx context.Context, s txn.Store, actor access.Actor, rackID string) (*entity.Rack, error) {
	scope, err := access.NewResolver(s.Warehouses, s.Vendors).Resolve(ctx, actor)
	if err != nil {
		return nil, err
	}
	rack, err := s.Racks.GetByID(ctx, rackID)
	if err != nil {
		return nil, err
	}
	if rack == nil || !scope.HasWarehouse(rack.WarehouseID) {
		return nil, domain.NewError(domain.ErrNotFound, "Rack Not Found")
	}
	return rack, nil
}

// lockRack bloquea la bodega dueña del rack y luego el rack.
func lockRack(ctx context.Context, s txn.Store, rackID string) (*entity.Warehouse, *entity.Rack, error) {
	rack, err := s.Racks.GetByID(ctx, rackID)
	if err != nil {
		return nil, nil, err
	}
	if rack == nil {
		return nil, nil, domain.NewError(domain.ErrNotFound, "Rack Not Found")
	}
	warehouse, err := s.Warehouses.GetForUpdate(ctx, rack.WarehouseID)
	if err != nil {
		return nil, nil, err
	}
	if warehouse == nil {
		return nil, nil, domain.NewError(domain.ErrNotFound, "Warehouse Not Found")
	}
	rack, err = s.Racks.GetForUpdate(ctx, rackID)
	if err != nil {
		return nil, nil, err
	}
	return warehouse, rack, nil
}

func occupantsOf(ctx context.Context, s txn.Store, rackID string) ([]*entity.Product, error) {
	rows, err := s.Inventories.ListByRack(ctx, rackID)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ProductID)
	}
	byID, err := s.Products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Product, 0, len(byID))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// ToInventoryResponse mapea una fila de inventario.
func ToInventoryResponse(inv *entity.Inventory) *dto.InventoryResponse {
	if inv == nil {
		return nil
	}
	return &dto.InventoryResponse{
		ID:          inv.ID,
		RackID:      inv.RackID,
		ProductID:   inv.ProductID,
		Quantity:    inv.Quantity,
		TotalVolume: inv.TotalVolume,
		ArrivalDate: inv.ArrivalDate,
		ExpiryDate:  inv.ExpiryDate,
	}
}

// ToRackResponse mapea un rack sin sus filas.
func ToRackResponse(r *entity.Rack) *dto.RackResponse {
	return &dto.RackResponse{
		ID:                r.ID,
		WarehouseID:       r.WarehouseID,
		Position:          r.Position,
		OverallCapacity:   r.OverallCapacity,
		RemainingCapacity: r.RemainingCapacity,
	}
}
