// Package ordering implementa las órdenes entre bodegas y vendedores: validación previa,
// planes de asignación a racks y la máquina de estados con conciliación de faltantes.
package ordering

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodegas-api/internal/application/access"
	"github.com/jhoicas/Bodegas-api/internal/application/dto"
	"github.com/jhoicas/Bodegas-api/internal/application/txn"
	"github.com/jhoicas/Bodegas-api/internal/domain"
	"github.com/jhoicas/Bodegas-api/internal/domain/capacity"
	"github.com/jhoicas/Bodegas-api/internal/domain/entity"
)

// UseCase casos de uso de órdenes. Cada operación pública corre en una transacción del runner.
type UseCase struct {
	runner  txn.Runner
	planner *Planner
	log     zerolog.Logger
	now     func() time.Time
}

// NewUseCase construye el caso de uso. clock fija created_at, updated_at y shipped_at; nil usa time.Now.
func NewUseCase(runner txn.Runner, planner *Planner, clock func() time.Time, log zerolog.Logger) *UseCase {
	if clock == nil {
		clock = time.Now
	}
	return &UseCase{runner: runner, planner: planner, log: log, now: clock}
}

// Create valida y persiste una orden nueva (status new).
func (uc *UseCase) Create(ctx context.Context, actor access.Actor, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if err := access.Require(actor, access.ActionCreateOrder); err != nil {
		return nil, err
	}
	if !entity.IsValidOrderType(in.OrderType) {
		return nil, domain.Errorf(domain.ErrValidation, "invalid order type %q", in.OrderType)
	}
	supplier, recipient := entity.PartiesFor(in.OrderType, in.SupplierID, in.RecipientID)
	items := toItems(in.Items)
	var out *dto.OrderResponse
	err := uc.runner.Run(ctx, func(s txn.Store) error {
		scope, err := access.NewResolver(s.Warehouses, s.Vendors).Resolve(ctx, actor)
		if err != nil {
			return err
		}
		if !scope.HasParty(supplier) && !scope.HasParty(recipient) {
			return domain.NewError(domain.ErrNotFound, "Order party Not Found")
		}
		v, err := ValidateNewOrder(ctx, s, in.OrderType, supplier, recipient, items)
		if err != nil {
			return err
		}
		now := uc.now()
		order := &entity.Order{
			ID:         uuid.New().String(),
			OrderType:  in.OrderType,
			Supplier:   supplier,
			Recipient:  recipient,
			Status:     entity.OrderStatusNew,
			TotalPrice: v.TotalPrice,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := s.Orders.Create(ctx, order); err != nil {
			return err
		}
		if err := s.Orders.ReplaceItems(ctx, order.ID, items); err != nil {
			return err
		}
		out = toOrderResponse(order, items, nil, v.TotalVolume)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", out.ID).Str("order_type", out.OrderType).Str("actor", actor.UserID).Msg("orden creada")
	return out, nil
}

// Update reemplaza las líneas de una orden en estado new y recalcula el precio.
func (uc *UseCase) Update(ctx context.Context, actor access.Actor, orderID string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	if err := access.Require(actor, access.ActionUpdateOrder); err != nil {
		return nil, err
	}
	items := toItems(in.Items)
	var out *dto.OrderResponse
	err := uc.runner.Run(ctx, func(s txn.Store) error {
		order, err := loadOrder(ctx, s, actor, access.ActionUpdateOrder, orderID, true)
		if err != nil {
			return err
		}
		v, err := ValidateOrderUpdate(ctx, s, order, items)
		if err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := s.Orders.ReplaceItems(ctx, order.ID, items); err != nil {
			return err
		}
		order.TotalPrice = v.TotalPrice
		order.UpdatedAt = uc.now()
		if err := s.Orders.Update(ctx, order); err != nil {
			return err
		}
		out = toOrderResponse(order, items, nil, v.TotalVolume)
		return nil
	})
	return out, err
}

// Get devuelve la orden con sus líneas, faltantes y volumen total.
func (uc *UseCase) Get(ctx context.Context, actor access.Actor, orderID string) (*dto.OrderResponse, error) {
	if err := access.Require(actor, access.ActionViewOrder); err != nil {
		return nil, err
	}
	var out *dto.OrderResponse
	err := uc.runner.Run(ctx, func(s txn.Store) error {
		order, err := loadOrder(ctx, s, actor, access.ActionViewOrder, orderID, false)
		if err != nil {
			return err
		}
		items, err := s.Orders.ListItems(ctx, order.ID)
		if err != nil {
			return err
		}
		lost, err := s.LostItems.ListByOrder(ctx, order.ID)
		if err != nil {
			return err
		}
		volume, err := orderVolume(ctx, s, items)
		if err != nil {
			return err
		}
		out = toOrderResponse(order, sortedItems(items), lost, volume)
		return nil
	})
	return out, err
}

// PreviewSend calcula, sin aplicar, el plan de salida de una orden submitted.
func (uc *UseCase) PreviewSend(ctx context.Context, actor access.Actor, orderID string) (*Plan, error) {
	return uc.preview(ctx, actor, orderID, uc.planner.PlanSend)
}

// PreviewReceive calcula, sin aplicar, el plan de ubicación de una orden entregada.
func (uc *UseCase) PreviewReceive(ctx context.Context, actor access.Actor, orderID string) (*Plan, error) {
	return uc.preview(ctx, actor, orderID, uc.planner.PlanReceive)
}

type planFunc func(ctx context.Context, s txn.Store, order *entity.Order) (*Plan, error)

func (uc *UseCase) preview(ctx context.Context, actor access.Actor, orderID string, plan planFunc) (*Plan, error) {
	if err := access.Require(actor, access.ActionViewOrder); err != nil {
		return nil, err
	}
	var out *Plan
	err := uc.runner.Run(ctx, func(s txn.Store) error {
		order, err := loadOrder(ctx, s, actor, access.ActionViewOrder, orderID, false)
		if err != nil {
			return err
		}
		out, err = plan(ctx, s, order)
		return err
	})
	return out, err
}

// loadOrder lee la orden (bloqueada si forUpdate) y verifica que la contraparte que exige action
// esté en el alcance. Fuera de alcance se reporta como inexistente.
func loadOrder(ctx context.Context, s txn.Store, actor access.Actor, action access.Action, orderID string, forUpdate bool) (*entity.Order, error) {
	scope, err := access.NewResolver(s.Warehouses, s.Vendors).Resolve(ctx, actor)
	if err != nil {
		return nil, err
	}
	var order *entity.Order
	if forUpdate {
		order, err = s.Orders.GetForUpdate(ctx, orderID)
	} else {
		order, err = s.Orders.GetByID(ctx, orderID)
	}
	if err != nil {
		return nil, err
	}
	if order == nil || !scope.CanActOn(action, order.Supplier, order.Recipient) {
		return nil, domain.NewError(domain.ErrNotFound, "Order Not Found")
	}
	return order, nil
}

func orderVolume(ctx context.Context, s txn.Store, items []entity.OrderItem) (decimal.Decimal, error) {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	products, err := s.Products.GetByIDs(ctx, ids)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, it := range items {
		p, ok := products[it.ProductID]
		if !ok {
			return decimal.Zero, domain.Errorf(domain.ErrNotFound, "Product Not Found: %s", it.ProductID)
		}
		total = total.Add(capacity.Volume(it.Quantity, p.Volume))
	}
	return total, nil
}

func toItems(in []dto.OrderItemRequest) []entity.OrderItem {
	out := make([]entity.OrderItem, 0, len(in))
	for _, it := range in {
		out = append(out, entity.OrderItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return out
}

func toOrderResponse(o *entity.Order, items []entity.OrderItem, lost []entity.LostItem, volume decimal.Decimal) *dto.OrderResponse {
	out := &dto.OrderResponse{
		ID:          o.ID,
		OrderType:   o.OrderType,
		Supplier:    dto.PartyResponse{Kind: string(o.Supplier.Kind), ID: o.Supplier.ID},
		Recipient:   dto.PartyResponse{Kind: string(o.Recipient.Kind), ID: o.Recipient.ID},
		Status:      o.Status,
		TotalPrice:  o.TotalPrice,
		TotalVolume: volume,
		TransportID: o.TransportID,
		ShippedAt:   o.ShippedAt,
		Items:       make([]dto.OrderItemResponse, 0, len(items)),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
	for _, it := range items {
		out.Items = append(out.Items, dto.OrderItemResponse{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	for _, l := range lost {
		out.LostItems = append(out.LostItems, dto.OrderItemResponse{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return out
}

// ToPlanResponse mapea un plan a su DTO.
func ToPlanResponse(p *Plan) *dto.PlanResponse {
	out := &dto.PlanResponse{
		OrderID:     p.OrderID,
		Direction:   string(p.Direction),
		Allocations: make([]dto.AllocationResponse, 0, len(p.Allocations)),
	}
	for _, a := range p.Allocations {
		out.Allocations = append(out.Allocations, dto.AllocationResponse{
			ProductID:    a.ProductID,
			RackID:       a.RackID,
			RackPosition: a.RackPosition,
			Quantity:     a.Quantity,
			Volume:       a.Volume,
		})
	}
	return out
}
