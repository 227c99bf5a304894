// Package lifecycle define la máquina de estados de una orden.
//
//	new ──confirm──▶ submitted ──send──▶ processing ──deliver──▶ delivered ──▶ finished
//	 │                   ▲                    │                      │
//	 │                   └──────confirm───────┘                      ├──▶ lost ────▶ finished
//	 └──cancel──▶ cancelled                                          └──▶ damaged ─▶ finished
package lifecycle

import (
	"github.com/jhoicas/Bodegas-api/internal/domain"
	"github.com/jhoicas/Bodegas-api/internal/domain/entity"
)

// Action es un disparador de transición.
type Action string

const (
	ActionCancel  Action = "cancel"
	ActionConfirm Action = "confirm"
	ActionSend    Action = "send"
	ActionDeliver Action = "deliver"
	ActionReport  Action = "report"  // reporte de perdidos/dañados
	ActionReceive Action = "receive" // ubicación en racks / cierre
)

// transitions: acción -> estado origen -> estado destino.
var transitions = map[Action]map[string]string{
	ActionCancel: {
		entity.OrderStatusNew: entity.OrderStatusCancelled,
	},
	ActionConfirm: {
		entity.OrderStatusNew:        entity.OrderStatusSubmitted,
		entity.OrderStatusProcessing: entity.OrderStatusSubmitted,
	},
	ActionSend: {
		entity.OrderStatusSubmitted: entity.OrderStatusProcessing,
	},
	ActionDeliver: {
		entity.OrderStatusProcessing: entity.OrderStatusDelivered,
	},
	// El destino real del reporte depende del resultado de la conciliación (ver ReportTargets).
	ActionReport: {
		entity.OrderStatusDelivered: entity.OrderStatusDelivered,
	},
	ActionReceive: {
		entity.OrderStatusDelivered: entity.OrderStatusFinished,
		entity.OrderStatusLost:      entity.OrderStatusFinished,
		entity.OrderStatusDamaged:   entity.OrderStatusFinished,
	},
}

// reportTargets estados que puede fijar explícitamente el receptor al reportar faltantes.
var reportTargets = map[string]bool{
	entity.OrderStatusLost:    true,
	entity.OrderStatusDamaged: true,
}

// Next devuelve el estado destino de aplicar action desde current, o ErrInvalidTransition.
func Next(current string, action Action) (string, error) {
	if to, ok := transitions[action][current]; ok {
		return to, nil
	}
	return current, domain.Errorf(domain.ErrInvalidTransition,
		"cannot %s an order in status %q", action, current)
}

// CanReportAs indica si status es un destino válido de un reporte de faltantes.
func CanReportAs(status string) bool {
	return reportTargets[status]
}

// IsTerminal indica si el estado no admite más transiciones.
func IsTerminal(status string) bool {
	return status == entity.OrderStatusCancelled || status == entity.OrderStatusFinished
}

// reserving estados en que una orden hacia bodega reserva capacidad de destino.
var reserving = []string{entity.OrderStatusProcessing, entity.OrderStatusSubmitted, entity.OrderStatusDelivered}

// ReservingStatuses devuelve los estados que reservan capacidad (copia).
func ReservingStatuses() []string {
	return append([]string(nil), reserving...)
}

// ReservesCapacity indica si una orden hacia bodega en este estado reserva capacidad de destino.
func ReservesCapacity(status string) bool {
	for _, s := range reserving {
		if s == status {
			return true
		}
	}
	return false
}
