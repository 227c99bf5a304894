package access_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodegas-api/internal/application/access"
	"github.com/jhoicas/Bodegas-api/internal/application/txn"
	"github.com/jhoicas/Bodegas-api/internal/domain"
	"github.com/jhoicas/Bodegas-api/internal/domain/entity"
	"github.com/jhoicas/Bodegas-api/internal/infrastructure/memory"
)

func TestRequire_Politica(t *testing.T) {
	tests := []struct {
		role    string
		action  access.Action
		allowed bool
	}{
		{entity.RoleManager, access.ActionPlaceInventory, true},
		{entity.RoleSupervisor, access.ActionPlaceInventory, true},
		{entity.RoleVendor, access.ActionPlaceInventory, false},
		{entity.RoleAdmin, access.ActionPlaceInventory, false},
		{entity.RoleManager, access.ActionConfirmOrder, true},
		{entity.RoleSupervisor, access.ActionConfirmOrder, false},
		{entity.RoleVendor, access.ActionCreateOrder, true},
		{entity.RoleSupervisor, access.ActionCreateOrder, false},
		{entity.RoleManager, access.ActionThrownReport, true},
		{entity.RoleAdmin, access.ActionThrownReport, false},
		{"", access.ActionViewOrder, false},
	}
	for _, tt := range tests {
		t.Run(tt.role+"/"+string(tt.action), func(t *testing.T) {
			err := access.Require(access.Actor{UserID: "u", Role: tt.role}, tt.action)
			if tt.allowed {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, domain.ErrForbidden))
		})
	}
}

func resolve(t *testing.T, actor access.Actor) access.Scope {
	t.Helper()
	store, err := memory.LoadDemo()
	require.NoError(t, err)
	var scope access.Scope
	require.NoError(t, store.Run(context.Background(), func(s txn.Store) error {
		var err error
		scope, err = access.NewResolver(s.Warehouses, s.Vendors).Resolve(context.Background(), actor)
		return err
	}))
	return scope
}

func TestResolver_Alcances(t *testing.T) {
	sup := resolve(t, access.Actor{UserID: "u-supervisor", CompanyID: "c-1", Role: entity.RoleSupervisor})
	assert.True(t, sup.HasWarehouse("wh-1"))
	assert.False(t, sup.HasWarehouse("wh-2"))
	assert.False(t, sup.HasVendor("v-1"))

	mgr := resolve(t, access.Actor{UserID: "u-manager", CompanyID: "c-1", Role: entity.RoleManager})
	assert.True(t, mgr.HasWarehouse("wh-1"))
	assert.True(t, mgr.HasWarehouse("wh-2"))
	assert.True(t, mgr.HasParty(entity.WarehouseParty("wh-2")))

	ven := resolve(t, access.Actor{UserID: "u-vendor", Role: entity.RoleVendor})
	assert.True(t, ven.HasVendor("v-1"))
	assert.True(t, ven.HasParty(entity.VendorParty("v-gov")))
	assert.False(t, ven.HasWarehouse("wh-1"))

	adm := resolve(t, access.Actor{UserID: "root", Role: entity.RoleAdmin})
	assert.True(t, adm.Unrestricted)
	assert.True(t, adm.HasWarehouse("cualquiera"))

	other := resolve(t, access.Actor{UserID: "u-otro", CompanyID: "c-2", Role: entity.RoleManager})
	assert.False(t, other.HasWarehouse("wh-1"))
}

func TestScope_CanActOn_LadoDeLaOrden(t *testing.T) {
	scope := access.Scope{Warehouses: map[string]bool{"wh-1": true}, Vendors: map[string]bool{}}
	supplier, recipient := entity.WarehouseParty("wh-1"), entity.VendorParty("v-1")

	assert.True(t, scope.CanActOn(access.ActionViewOrder, supplier, recipient))
	assert.True(t, scope.CanActOn(access.ActionSendOrder, supplier, recipient))
	assert.False(t, scope.CanActOn(access.ActionReportLost, supplier, recipient))
	assert.False(t, scope.CanActOn(access.ActionReceiveOrder, supplier, recipient))
	assert.True(t, scope.CanActOn(access.ActionReceiveOrder, recipient, supplier))

	admin := access.Scope{Unrestricted: true}
	assert.True(t, admin.CanActOn(access.ActionReportLost, supplier, recipient))
}
