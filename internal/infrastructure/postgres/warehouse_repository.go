package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodegas-api/internal/domain"
	"github.com/jhoicas/Bodegas-api/internal/domain/entity"
	"github.com/jhoicas/Bodegas-api/internal/domain/repository"
)

var (
	_ repository.WarehouseRepository = (*WarehouseRepo)(nil)
	_ repository.RackRepository      = (*RackRepo)(nil)
)

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL (pool o tx).
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de persistencia para bodegas.
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

const warehouseColumns = `id, company_id, supervisor_id, name, address, warehouse_type,
	overall_capacity, remaining_capacity, created_at, updated_at`

func scanWarehouse(row pgx.Row) (*entity.Warehouse, error) {
	var w entity.Warehouse
	err := row.Scan(&w.ID, &w.CompanyID, &w.SupervisorID, &w.Name, &w.Address, &w.WarehouseType,
		&w.OverallCapacity, &w.RemainingCapacity, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// Create persiste una nueva bodega.
func (r *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	query := `
		INSERT INTO warehouses (` + warehouseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		w.ID, w.CompanyID, w.SupervisorID, w.Name, w.Address, w.WarehouseType,
		w.OverallCapacity, w.RemainingCapacity, w.CreatedAt, w.UpdatedAt,
	)
	return classify("insert warehouse", err)
}

// GetByID obtiene una bodega por ID.
func (r *WarehouseRepo) GetByID(ctx context.Context, id string) (*entity.Warehouse, error) {
	return r.get(ctx, `SELECT `+warehouseColumns+` FROM warehouses WHERE id = $1`, id)
}

// GetForUpdate obtiene la bodega y bloquea la fila (SELECT FOR UPDATE).
func (r *WarehouseRepo) GetForUpdate(ctx context.Context, id string) (*entity.Warehouse, error) {
	return r.get(ctx, `SELECT `+warehouseColumns+` FROM warehouses WHERE id = $1 FOR UPDATE`, id)
}

func (r *WarehouseRepo) get(ctx context.Context, query, id string) (*entity.Warehouse, error) {
	w, err := scanWarehouse(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get warehouse", err)
	}
	return w, nil
}

// UpdateRemainingCapacity persiste la capacidad restante (el CHECK de la tabla acota 0..overall).
func (r *WarehouseRepo) UpdateRemainingCapacity(ctx context.Context, id string, remaining decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE warehouses SET remaining_capacity = $2, updated_at = now() WHERE id = $1`, id, remaining)
	if err != nil {
		return classify("update warehouse capacity", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewError(domain.ErrNotFound, "Warehouse Not Found")
	}
	return nil
}

// ListIDsBySupervisor IDs de bodegas supervisadas por el usuario.
func (r *WarehouseRepo) ListIDsBySupervisor(ctx context.Context, supervisorID string) ([]string, error) {
	return listIDs(ctx, r.q, "list warehouses by supervisor",
		`SELECT id FROM warehouses WHERE supervisor_id = $1 ORDER BY id`, supervisorID)
}

// ListIDsByCompany IDs de bodegas de la empresa.
func (r *WarehouseRepo) ListIDsByCompany(ctx context.Context, companyID string) ([]string, error) {
	return listIDs(ctx, r.q, "list warehouses by company",
		`SELECT id FROM warehouses WHERE company_id = $1 ORDER BY id`, companyID)
}

func listIDs(ctx context.Context, q Querier, op, query string, args ...any) ([]string, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, classify(op, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, classify(op, err)
	}
	return ids, nil
}

// RackRepo implementación del puerto RackRepository sobre PostgreSQL (pool o tx).
type RackRepo struct {
	q Querier
}

// NewRackRepository construye el adaptador de persistencia para racks.
func NewRackRepository(q Querier) *RackRepo {
	return &RackRepo{q: q}
}

const rackColumns = `id, warehouse_id, position, overall_capacity, remaining_capacity, created_at, updated_at`

func scanRack(row pgx.Row) (*entity.Rack, error) {
	var rk entity.Rack
	err := row.Scan(&rk.ID, &rk.WarehouseID, &rk.Position, &rk.OverallCapacity, &rk.RemainingCapacity,
		&rk.CreatedAt, &rk.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rk, nil
}

// Create persiste un nuevo rack; position duplicada en la bodega -> ErrConflict.
func (r *RackRepo) Create(ctx context.Context, rk *entity.Rack) error {
	query := `
		INSERT INTO racks (` + rackColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		rk.ID, rk.WarehouseID, rk.Position, rk.OverallCapacity, rk.RemainingCapacity, rk.CreatedAt, rk.UpdatedAt)
	return classify("insert rack", err)
}

// GetByID obtiene un rack por ID.
func (r *RackRepo) GetByID(ctx context.Context, id string) (*entity.Rack, error) {
	return r.get(ctx, `SELECT `+rackColumns+` FROM racks WHERE id = $1`, id)
}

// GetForUpdate obtiene el rack y bloquea la fila.
func (r *RackRepo) GetForUpdate(ctx context.Context, id string) (*entity.Rack, error) {
	return r.get(ctx, `SELECT `+rackColumns+` FROM racks WHERE id = $1 FOR UPDATE`, id)
}

func (r *RackRepo) get(ctx context.Context, query, id string) (*entity.Rack, error) {
	rk, err := scanRack(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get rack", err)
	}
	return rk, nil
}

// UpdateRemainingCapacity persiste la capacidad restante del rack.
func (r *RackRepo) UpdateRemainingCapacity(ctx context.Context, id string, remaining decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE racks SET remaining_capacity = $2, updated_at = now() WHERE id = $1`, id, remaining)
	if err != nil {
		return classify("update rack capacity", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewError(domain.ErrNotFound, "Rack Not Found")
	}
	return nil
}

// ListByWarehouse racks de la bodega ordenados por position (e id).
func (r *RackRepo) ListByWarehouse(ctx context.Context, warehouseID string) ([]*entity.Rack, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+rackColumns+` FROM racks WHERE warehouse_id = $1 ORDER BY position COLLATE "C", id`, warehouseID)
	if err != nil {
		return nil, classify("list racks", err)
	}
	defer rows.Close()
	var out []*entity.Rack
	for rows.Next() {
		rk, err := scanRack(rows)
		if err != nil {
			return nil, classify("scan rack", err)
		}
		out = append(out, rk)
	}
	return out, classify("list racks", rows.Err())
}

// SumOverallByWarehouse suma overall_capacity de los racks de la bodega.
func (r *RackRepo) SumOverallByWarehouse(ctx context.Context, warehouseID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(overall_capacity), 0) FROM racks WHERE warehouse_id = $1`, warehouseID).Scan(&total)
	if err != nil {
		return decimal.Zero, classify("sum rack capacity", err)
	}
	return total, nil
}

// PositionExists indica si la bodega ya tiene un rack en position.
func (r *RackRepo) PositionExists(ctx context.Context, warehouseID, position string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM racks WHERE warehouse_id = $1 AND position = $2)`, warehouseID, position).Scan(&exists)
	if err != nil {
		return false, classify("rack position exists", err)
	}
	return exists, nil
}
