package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Bodegas-api/internal/application/access"
	"github.com/jhoicas/Bodegas-api/internal/application/dto"
	"github.com/jhoicas/Bodegas-api/internal/application/inventory"
	"github.com/jhoicas/Bodegas-api/internal/application/txn"
	"github.com/jhoicas/Bodegas-api/internal/domain"
	"github.com/jhoicas/Bodegas-api/internal/domain/entity"
)

// WarehouseUseCase registro de bodegas y racks, y reporte de bajas.
type WarehouseUseCase struct {
	runner txn.Runner
	now    func() time.Time
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(runner txn.Runner) *WarehouseUseCase {
	return &WarehouseUseCase{runner: runner, now: time.Now}
}

// Create crea una nueva bodega con remaining_capacity = overall_capacity.
func (uc *WarehouseUseCase) Create(ctx context.Context, actor access.Actor, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if err := access.Require(actor, access.ActionCreateWarehouse); err != nil {
		return nil, err
	}
	companyID := actor.CompanyID
	if actor.IsAdmin() && in.CompanyID != "" {
		companyID = in.CompanyID
	}
	switch {
	case strings.TrimSpace(in.Name) == "":
		return nil, domain.NewError(domain.ErrValidation, "name is required")
	case companyID == "":
		return nil, domain.NewError(domain.ErrValidation, "company_id is required")
	case !entity.IsValidWarehouseType(in.WarehouseType):
		return nil, domain.Errorf(domain.ErrValidation, "invalid warehouse type %q", in.WarehouseType)
	case !in.OverallCapacity.IsPositive():
		return nil, domain.NewError(domain.ErrValidation, "overall_capacity should be greater than 0")
	}
	now := uc.now()
	warehouse := &entity.Warehouse{
		ID:                uuid.New().String(),
		CompanyID:         companyID,
		SupervisorID:      in.SupervisorID,
		Name:              in.Name,
		Address:           in.Address,
		WarehouseType:     in.WarehouseType,
		OverallCapacity:   in.OverallCapacity,
		RemainingCapacity: in.OverallCapacity,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	err := uc.runner.Run(ctx, func(s txn.Store) error {
		return s.Warehouses.Create(ctx, warehouse)
	})
	if err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// CreateRack crea un rack: position única en la bodega y suma de capacidades de racks <= capacidad de la bodega.
func (uc *WarehouseUseCase) CreateRack(ctx context.Context, actor access.Actor, warehouseID string, in dto.CreateRackRequest) (*dto.RackResponse, error) {
	if err := access.Require(actor, access.ActionCreateRack); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Position) == "" {
		return nil, domain.NewError(domain.ErrValidation, "position is required")
	}
	if !in.OverallCapacity.IsPositive() {
		return nil, domain.NewError(domain.ErrValidation, "overall_capacity should be greater than 0")
	}
	var rack *entity.Rack
	err := uc.runner.Run(ctx, func(s txn.Store) error {
		scope, err := access.NewResolver(s.Warehouses, s.Vendors).Resolve(ctx, actor)
		if err != nil {
			return err
		}
		if !scope.HasWarehouse(warehouseID) {
			return domain.NewError(domain.ErrNotFound, "Warehouse Not Found")
		}
		// Bloquea la bodega para serializar altas de racks concurrentes.
		warehouse, err := s.Warehouses.GetForUpdate(ctx, warehouseID)
		if err != nil {
			return err
		}
		if warehouse == nil {
			return domain.NewError(domain.ErrNotFound, "Warehouse Not Found")
		}
		exists, err := s.Racks.PositionExists(ctx, warehouseID, in.Position)
		if err != nil {
			return err
		}
		if exists {
			return domain.Errorf(domain.ErrConflict, "rack position %q already exists in this warehouse", in.Position)
		}
		used, err := s.Racks.SumOverallByWarehouse(ctx, warehouseID)
		if err != nil {
			return err
		}
		if used.Add(in.OverallCapacity).GreaterThan(warehouse.OverallCapacity) {
			return domain.Errorf(domain.ErrCapacityExceeded,
				"racks capacity would exceed warehouse capacity: %s of %s already assigned",
				used.String(), warehouse.OverallCapacity.String())
		}
		now := uc.now()
		rack = &entity.Rack{
			ID:                uuid.New().String(),
			WarehouseID:       warehouseID,
			Position:          in.Position,
			OverallCapacity:   in.OverallCapacity,
			RemainingCapacity: in.OverallCapacity,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		return s.Racks.Create(ctx, rack)
	})
	if err != nil {
		return nil, err
	}
	return inventory.ToRackResponse(rack), nil
}

// ThrownSummary agrupa las bajas de la empresa del actor por bodega y producto.
func (uc *WarehouseUseCase) ThrownSummary(ctx context.Context, actor access.Actor, in dto.DateRangeRequest) (*dto.ThrownSummaryResponse, error) {
	if err := access.Require(actor, access.ActionThrownReport); err != nil {
		return nil, err
	}
	from, to, err := in.Parse()
	if err != nil {
		return nil, domain.Errorf(domain.ErrValidation, "invalid date range: %v", err)
	}
	out := &dto.ThrownSummaryResponse{Items: []dto.ThrownSummaryItem{}}
	err = uc.runner.Run(ctx, func(s txn.Store) error {
		rows, err := s.ThrownItems.SummaryByCompany(ctx, actor.CompanyID, from, to)
		if err != nil {
			return err
		}
		for _, r := range rows {
			out.Items = append(out.Items, dto.ThrownSummaryItem{
				WarehouseID:   r.WarehouseID,
				WarehouseName: r.WarehouseName,
				ProductID:     r.ProductID,
				ProductName:   r.ProductName,
				TotalQuantity: r.TotalQuantity,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	if w == nil {
		return nil
	}
	return &dto.WarehouseResponse{
		ID:                w.ID,
		CompanyID:         w.CompanyID,
		SupervisorID:      w.SupervisorID,
		Name:              w.Name,
		Address:           w.Address,
		WarehouseType:     w.WarehouseType,
		OverallCapacity:   w.OverallCapacity,
		RemainingCapacity: w.RemainingCapacity,
		CreatedAt:         w.CreatedAt,
		UpdatedAt:         w.UpdatedAt,
	}
}
