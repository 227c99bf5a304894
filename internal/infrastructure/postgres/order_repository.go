package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodegas-api/internal/domain"
	"github.com/jhoicas/Bodegas-api/internal/domain/entity"
	"github.com/jhoicas/Bodegas-api/internal/domain/repository"
)

var (
	_ repository.OrderRepository     = (*OrderRepo)(nil)
	_ repository.LostItemRepository  = (*LostItemRepo)(nil)
	_ repository.TransportRepository = (*TransportRepo)(nil)
	_ repository.VendorRepository    = (*VendorRepo)(nil)
)

// OrderRepo implementación de OrderRepository sobre PostgreSQL.
// supplier_id/recipient_id se interpretan según order_type (ver entity.PartiesFor).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de órdenes.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, order_type, supplier_id, recipient_id, order_status, total_price,
	transport_id, shipped_at, created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var supplierID, recipientID string
	err := row.Scan(&o.ID, &o.OrderType, &supplierID, &recipientID, &o.Status, &o.TotalPrice,
		&o.TransportID, &o.ShippedAt, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.Supplier, o.Recipient = entity.PartiesFor(o.OrderType, supplierID, recipientID)
	return &o, nil
}

// Create persiste la cabecera de la orden.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		o.ID, o.OrderType, o.Supplier.ID, o.Recipient.ID, o.Status, o.TotalPrice,
		o.TransportID, o.ShippedAt, o.CreatedAt, o.UpdatedAt)
	return classify("insert order", err)
}

// GetByID obtiene una orden por ID.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

// GetForUpdate obtiene la orden y bloquea la fila.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *OrderRepo) get(ctx context.Context, query, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get order", err)
	}
	return o, nil
}

// Update persiste estado, precio, transporte, shipped_at y updated_at.
func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE orders SET order_status = $2, total_price = $3, transport_id = $4, shipped_at = $5, updated_at = $6
		WHERE id = $1`, o.ID, o.Status, o.TotalPrice, o.TransportID, o.ShippedAt, o.UpdatedAt)
	if err != nil {
		return classify("update order", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewError(domain.ErrNotFound, "Order Not Found")
	}
	return nil
}

// ListItems líneas de la orden ordenadas por producto.
func (r *OrderRepo) ListItems(ctx context.Context, orderID string) ([]entity.OrderItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT order_id, product_id, quantity FROM order_items
		WHERE order_id = $1 ORDER BY product_id`, orderID)
	if err != nil {
		return nil, classify("list order items", err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.OrderItem, error) {
		var it entity.OrderItem
		err := row.Scan(&it.OrderID, &it.ProductID, &it.Quantity)
		return it, err
	})
	if err != nil {
		return nil, classify("list order items", err)
	}
	return items, nil
}

// ReplaceItems reemplaza todas las líneas de la orden en un solo batch.
func (r *OrderRepo) ReplaceItems(ctx context.Context, orderID string, items []entity.OrderItem) error {
	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM order_items WHERE order_id = $1`, orderID)
	for _, it := range items {
		batch.Queue(`INSERT INTO order_items (order_id, product_id, quantity) VALUES ($1, $2, $3)`,
			orderID, it.ProductID, it.Quantity)
	}
	br := r.q.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return classify("replace order items", err)
		}
	}
	return classify("replace order items", br.Close())
}

// UpdateItemQuantity fija la cantidad de una línea.
func (r *OrderRepo) UpdateItemQuantity(ctx context.Context, orderID, productID string, quantity int) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE order_items SET quantity = $3 WHERE order_id = $1 AND product_id = $2`, orderID, productID, quantity)
	if err != nil {
		return classify("update order item", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewError(domain.ErrNotFound, "Order item Not Found")
	}
	return nil
}

// DeleteItem elimina una línea.
func (r *OrderRepo) DeleteItem(ctx context.Context, orderID, productID string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1 AND product_id = $2`, orderID, productID)
	if err != nil {
		return classify("delete order item", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewError(domain.ErrNotFound, "Order item Not Found")
	}
	return nil
}

// ReservedVolume volumen de órdenes to_warehouse hacia la bodega en los estados dados.
func (r *OrderRepo) ReservedVolume(ctx context.Context, warehouseID, excludeOrderID string, statuses []string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(oi.quantity * p.volume), 0)
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		JOIN products p ON p.id = oi.product_id
		WHERE o.order_type = $1 AND o.recipient_id = $2 AND o.id <> $3 AND o.order_status = ANY($4)`,
		entity.OrderTypeToWarehouse, warehouseID, excludeOrderID, statuses).Scan(&total)
	if err != nil {
		return decimal.Zero, classify("reserved volume", err)
	}
	return total, nil
}

// LostItemRepo implementación de LostItemRepository sobre PostgreSQL.
type LostItemRepo struct {
	q Querier
}

// NewLostItemRepository construye el adaptador de faltantes.
func NewLostItemRepository(q Querier) *LostItemRepo {
	return &LostItemRepo{q: q}
}

// Add acumula quantity sobre (orden, producto).
func (r *LostItemRepo) Add(ctx context.Context, orderID, productID string, quantity int) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO lost_items (id, order_id, product_id, quantity) VALUES ($1, $2, $3, $4)
		ON CONFLICT (order_id, product_id) DO UPDATE SET quantity = lost_items.quantity + EXCLUDED.quantity`,
		uuid.New().String(), orderID, productID, quantity)
	return classify("add lost item", err)
}

// ListByOrder faltantes de la orden.
func (r *LostItemRepo) ListByOrder(ctx context.Context, orderID string) ([]entity.LostItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, product_id, quantity FROM lost_items
		WHERE order_id = $1 ORDER BY product_id`, orderID)
	if err != nil {
		return nil, classify("list lost items", err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.LostItem, error) {
		var l entity.LostItem
		err := row.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.Quantity)
		return l, err
	})
	if err != nil {
		return nil, classify("list lost items", err)
	}
	return items, nil
}

// TransportRepo lectura de transportes.
type TransportRepo struct {
	q Querier
}

// NewTransportRepository construye el adaptador de transportes.
func NewTransportRepository(q Querier) *TransportRepo {
	return &TransportRepo{q: q}
}

// GetByID obtiene un transporte por ID.
func (r *TransportRepo) GetByID(ctx context.Context, id string) (*entity.Transport, error) {
	var t entity.Transport
	err := r.q.QueryRow(ctx, `
		SELECT id, capacity, transport_type, speed, price_per_weight FROM transports WHERE id = $1`, id).
		Scan(&t.ID, &t.Capacity, &t.TransportType, &t.Speed, &t.PricePerWeight)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get transport", err)
	}
	return &t, nil
}

// VendorRepo lectura de vendedores.
type VendorRepo struct {
	q Querier
}

// NewVendorRepository construye el adaptador de vendedores.
func NewVendorRepository(q Querier) *VendorRepo {
	return &VendorRepo{q: q}
}

// GetByID obtiene un vendedor por ID.
func (r *VendorRepo) GetByID(ctx context.Context, id string) (*entity.Vendor, error) {
	var v entity.Vendor
	err := r.q.QueryRow(ctx, `
		SELECT id, owner_id, name, address, is_government FROM vendors WHERE id = $1`, id).
		Scan(&v.ID, &v.OwnerID, &v.Name, &v.Address, &v.IsGovernment)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get vendor", err)
	}
	return &v, nil
}

// ListIDsByOwner IDs de los vendedores del usuario.
func (r *VendorRepo) ListIDsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	return listIDs(ctx, r.q, "list vendors by owner",
		`SELECT id FROM vendors WHERE owner_id = $1 ORDER BY id`, ownerID)
}
