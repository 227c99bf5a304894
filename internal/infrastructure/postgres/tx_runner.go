package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Bodegas-api/internal/application/txn"
)

var _ txn.Runner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool        *pgxpool.Pool
	lockTimeout time.Duration
}

// NewTxRunner construye el runner. lockTimeout > 0 acota la espera por filas bloqueadas (SET LOCAL lock_timeout).
func NewTxRunner(pool *pgxpool.Pool, lockTimeout time.Duration) *TxRunner {
	return &TxRunner{pool: pool, lockTimeout: lockTimeout}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Si ctx se cancela, pgx aborta la consulta en curso y la transacción se revierte.
func (r *TxRunner) Run(ctx context.Context, fn func(s txn.Store) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return classify("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if r.lockTimeout > 0 {
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return classify("set lock_timeout", err)
		}
	}
	if err := fn(StoreFor(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return classify("commit transaction", err)
	}
	return nil
}

// StoreFor arma el txn.Store con todos los repositorios sobre q (pool o tx).
func StoreFor(q Querier) txn.Store {
	return txn.Store{
		Warehouses:  NewWarehouseRepository(q),
		Racks:       NewRackRepository(q),
		Inventories: NewInventoryRepository(q),
		ThrownItems: NewThrownItemRepository(q),
		Products:    NewProductRepository(q),
		Orders:      NewOrderRepository(q),
		LostItems:   NewLostItemRepository(q),
		Transports:  NewTransportRepository(q),
		Vendors:     NewVendorRepository(q),
	}
}

var _ Querier = (pgx.Tx)(nil)
