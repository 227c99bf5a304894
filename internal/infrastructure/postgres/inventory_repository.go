package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Bodegas-api/internal/domain"
	"github.com/jhoicas/Bodegas-api/internal/domain/entity"
	"github.com/jhoicas/Bodegas-api/internal/domain/repository"
)

var (
	_ repository.InventoryRepository  = (*InventoryRepo)(nil)
	_ repository.ThrownItemRepository = (*ThrownItemRepo)(nil)
)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL (pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de inventario.
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const inventoryColumns = `i.id, i.rack_id, i.product_id, i.quantity, i.total_volume, i.arrival_date, i.expiry_date`

func scanInventory(row pgx.Row) (*entity.Inventory, error) {
	var inv entity.Inventory
	err := row.Scan(&inv.ID, &inv.RackID, &inv.ProductID, &inv.Quantity, &inv.TotalVolume,
		&inv.ArrivalDate, &inv.ExpiryDate)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Get obtiene la fila (rack, producto); nil si no existe.
func (r *InventoryRepo) Get(ctx context.Context, rackID, productID string) (*entity.Inventory, error) {
	return r.get(ctx, `SELECT `+inventoryColumns+` FROM inventories i
		WHERE i.rack_id = $1 AND i.product_id = $2`, rackID, productID)
}

// GetForUpdate obtiene la fila y la bloquea (SELECT FOR UPDATE).
func (r *InventoryRepo) GetForUpdate(ctx context.Context, rackID, productID string) (*entity.Inventory, error) {
	return r.get(ctx, `SELECT `+inventoryColumns+` FROM inventories i
		WHERE i.rack_id = $1 AND i.product_id = $2 FOR UPDATE`, rackID, productID)
}

func (r *InventoryRepo) get(ctx context.Context, query, rackID, productID string) (*entity.Inventory, error) {
	inv, err := scanInventory(r.q.QueryRow(ctx, query, rackID, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get inventory", err)
	}
	return inv, nil
}

// Create inserta una fila nueva; (rack, producto) duplicado -> ErrConflict.
func (r *InventoryRepo) Create(ctx context.Context, inv *entity.Inventory) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventories (id, rack_id, product_id, quantity, total_volume, arrival_date, expiry_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		inv.ID, inv.RackID, inv.ProductID, inv.Quantity, inv.TotalVolume, inv.ArrivalDate, inv.ExpiryDate)
	return classify("insert inventory", err)
}

// Update persiste cantidad y volumen total; las fechas de llegada y vencimiento no cambian.
func (r *InventoryRepo) Update(ctx context.Context, inv *entity.Inventory) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE inventories SET quantity = $2, total_volume = $3 WHERE id = $1`,
		inv.ID, inv.Quantity, inv.TotalVolume)
	if err != nil {
		return classify("update inventory", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewError(domain.ErrNotFound, "Inventory Not Found")
	}
	return nil
}

// Delete elimina la fila.
func (r *InventoryRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM inventories WHERE id = $1`, id)
	return classify("delete inventory", err)
}

// ListByRack filas del rack ordenadas por producto.
func (r *InventoryRepo) ListByRack(ctx context.Context, rackID string) ([]*entity.Inventory, error) {
	return r.list(ctx, `SELECT `+inventoryColumns+` FROM inventories i
		WHERE i.rack_id = $1 ORDER BY i.product_id`, rackID)
}

// ListByWarehouse filas de todos los racks de la bodega.
func (r *InventoryRepo) ListByWarehouse(ctx context.Context, warehouseID string) ([]*entity.Inventory, error) {
	return r.list(ctx, `SELECT `+inventoryColumns+` FROM inventories i
		JOIN racks r ON r.id = i.rack_id
		WHERE r.warehouse_id = $1 ORDER BY i.rack_id, i.product_id`, warehouseID)
}

func (r *InventoryRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Inventory, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, classify("list inventory", err)
	}
	defer rows.Close()
	var out []*entity.Inventory
	for rows.Next() {
		inv, err := scanInventory(rows)
		if err != nil {
			return nil, classify("scan inventory", err)
		}
		out = append(out, inv)
	}
	return out, classify("list inventory", rows.Err())
}

// SumQuantities suma cantidades por producto en los racks de la bodega.
func (r *InventoryRepo) SumQuantities(ctx context.Context, warehouseID string, productIDs []string) (map[string]int, error) {
	rows, err := r.q.Query(ctx, `
		SELECT i.product_id, SUM(i.quantity)
		FROM inventories i JOIN racks r ON r.id = i.rack_id
		WHERE r.warehouse_id = $1 AND i.product_id = ANY($2)
		GROUP BY i.product_id`, warehouseID, productIDs)
	if err != nil {
		return nil, classify("sum inventory", err)
	}
	defer rows.Close()
	out := make(map[string]int, len(productIDs))
	for rows.Next() {
		var id string
		var total int64
		if err := rows.Scan(&id, &total); err != nil {
			return nil, classify("scan inventory sum", err)
		}
		out[id] = int(total)
	}
	return out, classify("sum inventory", rows.Err())
}

// ThrownItemRepo implementación de ThrownItemRepository sobre PostgreSQL.
type ThrownItemRepo struct {
	q Querier
}

// NewThrownItemRepository construye el adaptador de bajas.
func NewThrownItemRepository(q Querier) *ThrownItemRepo {
	return &ThrownItemRepo{q: q}
}

// Create registra una baja.
func (r *ThrownItemRepo) Create(ctx context.Context, t *entity.ThrownItem) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO thrown_items (id, warehouse_id, product_id, quantity, reason, thrown_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.WarehouseID, t.ProductID, t.Quantity, t.Reason, t.ThrownAt, t.CreatedBy)
	return classify("insert thrown item", err)
}

// SummaryByCompany agrupa las bajas de la empresa por bodega y producto, opcionalmente acotadas por fecha.
func (r *ThrownItemRepo) SummaryByCompany(ctx context.Context, companyID string, from, to *time.Time) ([]entity.ThrownSummary, error) {
	rows, err := r.q.Query(ctx, `
		SELECT t.warehouse_id, w.name, t.product_id, p.name, SUM(t.quantity)
		FROM thrown_items t
		JOIN warehouses w ON w.id = t.warehouse_id
		JOIN products p ON p.id = t.product_id
		WHERE w.company_id = $1
		  AND ($2::timestamptz IS NULL OR t.thrown_at >= $2)
		  AND ($3::timestamptz IS NULL OR t.thrown_at <= $3)
		GROUP BY t.warehouse_id, w.name, t.product_id, p.name
		ORDER BY w.name, p.name`, companyID, from, to)
	if err != nil {
		return nil, classify("thrown summary", err)
	}
	defer rows.Close()
	var out []entity.ThrownSummary
	for rows.Next() {
		var s entity.ThrownSummary
		var total int64
		if err := rows.Scan(&s.WarehouseID, &s.WarehouseName, &s.ProductID, &s.ProductName, &total); err != nil {
			return nil, classify("scan thrown summary", err)
		}
		s.TotalQuantity = int(total)
		out = append(out, s)
	}
	return out, classify("thrown summary", rows.Err())
}
