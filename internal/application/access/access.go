// Package access resuelve qué puede hacer un solicitante ya autenticado:
// una tabla (rol, acción) -> permitido y un filtro de alcance (bodegas y vendedores propios).
package access

import (
	"context"

	"github.com/jhoicas/Bodegas-api/internal/domain"
	"github.com/jhoicas/Bodegas-api/internal/domain/entity"
	"github.com/jhoicas/Bodegas-api/internal/domain/repository"
)

// Actor es la identidad del solicitante (viene del token, pre-autenticada).
type Actor struct {
	UserID    string
	CompanyID string
	Role      string
}

// IsAdmin indica si el actor no tiene restricción de alcance.
func (a Actor) IsAdmin() bool { return a.Role == entity.RoleAdmin }

// Action es una operación protegida del motor.
type Action string

const (
	ActionPlaceInventory  Action = "inventory.place"
	ActionRemoveInventory Action = "inventory.remove"
	ActionViewRack        Action = "rack.view"
	ActionCreateWarehouse Action = "warehouse.create"
	ActionCreateRack      Action = "rack.create"
	ActionCreateOrder     Action = "order.create"
	ActionUpdateOrder     Action = "order.update"
	ActionViewOrder       Action = "order.view"
	ActionCancelOrder     Action = "order.cancel"
	ActionConfirmOrder    Action = "order.confirm"
	ActionSendOrder       Action = "order.send"
	ActionDeliverOrder    Action = "order.deliver"
	ActionReportLost      Action = "order.report_lost"
	ActionReceiveOrder    Action = "order.receive"
	ActionThrownReport    Action = "thrown.report"
)

var (
	manager    = entity.RoleManager
	supervisor = entity.RoleSupervisor
	vendor     = entity.RoleVendor
	admin      = entity.RoleAdmin
)

// policy tabla (acción -> roles permitidos).
var policy = map[Action]map[string]bool{
	ActionPlaceInventory:  roles(manager, supervisor),
	ActionRemoveInventory: roles(manager, supervisor),
	ActionViewRack:        roles(manager, supervisor, admin),
	ActionCreateWarehouse: roles(manager, admin),
	ActionCreateRack:      roles(manager, supervisor, admin),
	ActionCreateOrder:     roles(manager, vendor, admin),
	ActionUpdateOrder:     roles(manager, vendor, admin),
	ActionViewOrder:       roles(manager, supervisor, vendor, admin),
	ActionCancelOrder:     roles(manager, supervisor, vendor, admin),
	ActionConfirmOrder:    roles(manager),
	ActionSendOrder:       roles(manager, supervisor, vendor, admin),
	ActionDeliverOrder:    roles(manager, supervisor, vendor, admin),
	ActionReportLost:      roles(manager, supervisor, vendor, admin),
	ActionReceiveOrder:    roles(manager, supervisor, vendor, admin),
	ActionThrownReport:    roles(manager),
}

// Side contraparte de la orden que debe estar en el alcance del actor.
type Side int

const (
	EitherParty    Side = iota // proveedor o destinatario
	RecipientParty             // solo el destinatario
)

// sides acciones restringidas a un lado de la orden; el resto admite cualquiera.
var sides = map[Action]Side{
	ActionReportLost:   RecipientParty,
	ActionReceiveOrder: RecipientParty,
}

// SideOf devuelve la contraparte exigida por la acción.
func SideOf(action Action) Side {
	return sides[action]
}

func roles(rs ...string) map[string]bool {
	m := make(map[string]bool, len(rs))
	for _, r := range rs {
		m[r] = true
	}
	return m
}

// Allowed indica si el rol del actor puede ejecutar la acción.
func Allowed(actor Actor, action Action) bool {
	return policy[action][actor.Role]
}

// Require devuelve ErrForbidden si el rol no puede ejecutar la acción.
func Require(actor Actor, action Action) error {
	if !Allowed(actor, action) {
		return domain.Errorf(domain.ErrForbidden, "role %q cannot perform %s", actor.Role, action)
	}
	return nil
}

// Scope conjunto de bodegas y vendedores sobre los que actúa un actor. Unrestricted para admin.
type Scope struct {
	Unrestricted bool
	Warehouses   map[string]bool
	Vendors      map[string]bool
}

// HasWarehouse indica si la bodega está en el alcance.
func (s Scope) HasWarehouse(id string) bool { return s.Unrestricted || s.Warehouses[id] }

// HasVendor indica si el vendedor está en el alcance.
func (s Scope) HasVendor(id string) bool { return s.Unrestricted || s.Vendors[id] }

// HasParty indica si la contraparte está en el alcance.
func (s Scope) HasParty(p entity.Party) bool {
	if p.IsWarehouse() {
		return s.HasWarehouse(p.ID)
	}
	return s.HasVendor(p.ID)
}

// CanActOn indica si el alcance cubre la contraparte que exige action sobre una orden.
func (s Scope) CanActOn(action Action, supplier, recipient entity.Party) bool {
	if SideOf(action) == RecipientParty {
		return s.HasParty(recipient)
	}
	return s.HasParty(supplier) || s.HasParty(recipient)
}

// Resolver calcula el alcance de un actor a partir de los registros de propiedad.
type Resolver struct {
	warehouses repository.WarehouseRepository
	vendors    repository.VendorRepository
}

// NewResolver construye el resolver. Pasar repos atados a la transacción en curso.
func NewResolver(warehouses repository.WarehouseRepository, vendors repository.VendorRepository) *Resolver {
	return &Resolver{warehouses: warehouses, vendors: vendors}
}

// Resolve devuelve el alcance: supervisor -> bodegas supervisadas; manager -> bodegas de la empresa;
// vendor -> vendedores propios; admin -> sin restricción.
func (r *Resolver) Resolve(ctx context.Context, actor Actor) (Scope, error) {
	if actor.IsAdmin() {
		return Scope{Unrestricted: true}, nil
	}
	scope := Scope{Warehouses: map[string]bool{}, Vendors: map[string]bool{}}
	var ids []string
	var err error
	switch actor.Role {
	case entity.RoleSupervisor:
		ids, err = r.warehouses.ListIDsBySupervisor(ctx, actor.UserID)
	case entity.RoleManager:
		ids, err = r.warehouses.ListIDsByCompany(ctx, actor.CompanyID)
	case entity.RoleVendor:
		var vendorIDs []string
		vendorIDs, err = r.vendors.ListIDsByOwner(ctx, actor.UserID)
		for _, id := range vendorIDs {
			scope.Vendors[id] = true
		}
	}
	if err != nil {
		return Scope{}, err
	}
	for _, id := range ids {
		scope.Warehouses[id] = true
	}
	return scope, nil
}
