package ordering

import (
	"context"

	"github.com/jhoicas/Bodegas-api/internal/application/access"
	"github.com/jhoicas/Bodegas-api/internal/application/dto"
	"github.com/jhoicas/Bodegas-api/internal/application/txn"
	"github.com/jhoicas/Bodegas-api/internal/domain"
	"github.com/jhoicas/Bodegas-api/internal/domain/entity"
	"github.com/jhoicas/Bodegas-api/internal/domain/lifecycle"
)

// stepFunc aplica el efecto de una transición sobre la orden bloqueada y devuelve el estado destino.
type stepFunc func(s txn.Store, order *entity.Order) (string, error)

// transition ejecuta una transición completa en una transacción: rol, alcance, estado, efecto, persistencia.
// El rol se evalúa antes que la existencia y el estado de la orden.
func (uc *UseCase) transition(ctx context.Context, actor access.Actor, action access.Action, orderID string, step stepFunc) (*dto.OrderResponse, error) {
	if err := access.Require(actor, action); err != nil {
		return nil, err
	}
	var (
		out  *dto.OrderResponse
		from string
	)
	err := uc.runner.Run(ctx, func(s txn.Store) error {
		order, err := loadOrder(ctx, s, actor, action, orderID, true)
		if err != nil {
			return err
		}
		from = order.Status
		to, err := step(s, order)
		if err != nil {
			return err
		}
		order.Status = to
		order.UpdatedAt = uc.now()
		if err := s.Orders.Update(ctx, order); err != nil {
			return err
		}
		items, err := s.Orders.ListItems(ctx, order.ID)
		if err != nil {
			return err
		}
		volume, err := orderVolume(ctx, s, items)
		if err != nil {
			return err
		}
		out = toOrderResponse(order, sortedItems(items), nil, volume)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("order_id", orderID).
		Str("action", string(action)).
		Str("from", from).
		Str("to", out.Status).
		Str("actor", actor.UserID).
		Msg("transición de orden")
	return out, nil
}

// Cancel new -> cancelled.
func (uc *UseCase) Cancel(ctx context.Context, actor access.Actor, orderID string) (*dto.OrderResponse, error) {
	return uc.transition(ctx, actor, access.ActionCancelOrder, orderID, func(_ txn.Store, order *entity.Order) (string, error) {
		return lifecycle.Next(order.Status, lifecycle.ActionCancel)
	})
}

// Confirm new|processing -> submitted. El transporte debe soportar el volumen total de la orden.
func (uc *UseCase) Confirm(ctx context.Context, actor access.Actor, orderID string, in dto.ConfirmOrderRequest) (*dto.OrderResponse, error) {
	return uc.transition(ctx, actor, access.ActionConfirmOrder, orderID, func(s txn.Store, order *entity.Order) (string, error) {
		to, err := lifecycle.Next(order.Status, lifecycle.ActionConfirm)
		if err != nil {
			return "", err
		}
		transport, err := s.Transports.GetByID(ctx, in.TransportID)
		if err != nil {
			return "", err
		}
		if transport == nil {
			return "", domain.NewError(domain.ErrNotFound, "Transport Not Found")
		}
		items, err := s.Orders.ListItems(ctx, order.ID)
		if err != nil {
			return "", err
		}
		volume, err := orderVolume(ctx, s, items)
		if err != nil {
			return "", err
		}
		if transport.Capacity.LessThan(volume) {
			return "", domain.NewError(domain.ErrCapacityExceeded, "Transport capacity is not enough")
		}
		id := transport.ID
		order.TransportID = &id
		return to, nil
	})
}

// Send submitted -> processing. Para órdenes desde bodega calcula y aplica el plan de salida antes del cambio.
// Una orden reconfirmada (processing -> submitted) ya despachó su stock: el reenvío solo cambia el estado.
func (uc *UseCase) Send(ctx context.Context, actor access.Actor, orderID string) (*dto.OrderResponse, error) {
	return uc.transition(ctx, actor, access.ActionSendOrder, orderID, func(s txn.Store, order *entity.Order) (string, error) {
		to, err := lifecycle.Next(order.Status, lifecycle.ActionSend)
		if err != nil {
			return "", err
		}
		if order.IsShipped() {
			return to, nil
		}
		shippedAt := uc.now()
		order.ShippedAt = &shippedAt
		if order.OrderType != entity.OrderTypeFromWarehouse {
			return to, nil
		}
		plan, err := uc.planner.PlanSend(ctx, s, order)
		if err != nil {
			return "", err
		}
		if err := uc.planner.ExecutePlan(ctx, s, plan); err != nil {
			return "", err
		}
		uc.log.Debug().Str("order_id", order.ID).Int("allocations", len(plan.Allocations)).Msg("plan de salida aplicado")
		return to, nil
	})
}

// Deliver processing -> delivered (confirmación del transportista).
func (uc *UseCase) Deliver(ctx context.Context, actor access.Actor, orderID string) (*dto.OrderResponse, error) {
	return uc.transition(ctx, actor, access.ActionDeliverOrder, orderID, func(_ txn.Store, order *entity.Order) (string, error) {
		return lifecycle.Next(order.Status, lifecycle.ActionDeliver)
	})
}

// ReportLost registra faltantes de una orden entregada: descuenta cada línea (la elimina en 0) y acumula LostItem.
// Sin líneas restantes la orden pasa a finished; si no, queda delivered o en MarkAs (lost/damaged).
func (uc *UseCase) ReportLost(ctx context.Context, actor access.Actor, orderID string, in dto.ReportLostRequest) (*dto.OrderResponse, error) {
	return uc.transition(ctx, actor, access.ActionReportLost, orderID, func(s txn.Store, order *entity.Order) (string, error) {
		if _, err := lifecycle.Next(order.Status, lifecycle.ActionReport); err != nil {
			return "", err
		}
		if in.MarkAs != "" && !lifecycle.CanReportAs(in.MarkAs) {
			return "", domain.Errorf(domain.ErrValidation, "orders cannot be marked as %q", in.MarkAs)
		}
		if len(in.Items) == 0 {
			return "", domain.NewError(domain.ErrValidation, "Lost items should not be empty")
		}
		items, err := s.Orders.ListItems(ctx, order.ID)
		if err != nil {
			return "", err
		}
		ordered := make(map[string]int, len(items))
		for _, it := range items {
			ordered[it.ProductID] = it.Quantity
		}
		seen := make(map[string]bool, len(in.Items))
		for _, l := range in.Items {
			if seen[l.ProductID] {
				return "", domain.Errorf(domain.ErrValidation, "product %s is repeated in the report", l.ProductID)
			}
			seen[l.ProductID] = true
			qty, ok := ordered[l.ProductID]
			if !ok {
				return "", domain.Errorf(domain.ErrNotFound, "Order item Not Found: %s", l.ProductID)
			}
			if l.Quantity <= 0 || l.Quantity > qty {
				return "", domain.Errorf(domain.ErrValidation,
					"lost quantity of %s should be between 1 and %d", l.ProductID, qty)
			}
		}

		left := len(items)
		for _, l := range in.Items {
			rest := ordered[l.ProductID] - l.Quantity
			if rest == 0 {
				err = s.Orders.DeleteItem(ctx, order.ID, l.ProductID)
				left--
			} else {
				err = s.Orders.UpdateItemQuantity(ctx, order.ID, l.ProductID, rest)
			}
			if err != nil {
				return "", err
			}
			if err := s.LostItems.Add(ctx, order.ID, l.ProductID, l.Quantity); err != nil {
				return "", err
			}
		}
		switch {
		case left == 0:
			return entity.OrderStatusFinished, nil
		case in.MarkAs != "":
			return in.MarkAs, nil
		default:
			return order.Status, nil
		}
	})
}

// Receive delivered|lost|damaged -> finished. Para órdenes hacia bodega ubica lo recibido según el plan.
func (uc *UseCase) Receive(ctx context.Context, actor access.Actor, orderID string) (*dto.OrderResponse, error) {
	return uc.transition(ctx, actor, access.ActionReceiveOrder, orderID, func(s txn.Store, order *entity.Order) (string, error) {
		to, err := lifecycle.Next(order.Status, lifecycle.ActionReceive)
		if err != nil {
			return "", err
		}
		if order.OrderType != entity.OrderTypeToWarehouse {
			return to, nil
		}
		plan, err := uc.planner.PlanReceive(ctx, s, order)
		if err != nil {
			return "", err
		}
		if err := uc.planner.ExecutePlan(ctx, s, plan); err != nil {
			return "", err
		}
		uc.log.Debug().Str("order_id", order.ID).Int("allocations", len(plan.Allocations)).Msg("plan de ubicación aplicado")
		return to, nil
	})
}
