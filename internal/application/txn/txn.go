// Package txn define el alcance transaccional del motor: cada operación pública recibe un Store
// con repositorios atados a una única transacción, que el Runner confirma o revierte completa.
package txn

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Bodegas-api/internal/domain"
	"github.com/jhoicas/Bodegas-api/internal/domain/repository"
)

// Store agrupa los repositorios atados a una transacción.
type Store struct {
	Warehouses  repository.WarehouseRepository
	Racks       repository.RackRepository
	Inventories repository.InventoryRepository
	ThrownItems repository.ThrownItemRepository
	Products    repository.ProductRepository
	Orders      repository.OrderRepository
	LostItems   repository.LostItemRepository
	Transports  repository.TransportRepository
	Vendors     repository.VendorRepository
}

// Runner ejecuta fn dentro de una transacción: Commit si fn retorna nil, Rollback en cualquier otro caso
// (incluida la cancelación de ctx).
type Runner interface {
	Run(ctx context.Context, fn func(s Store) error) error
}

// RetryPolicy limita los reintentos automáticos ante ErrBusy/ErrConflict.
type RetryPolicy struct {
	MaxRetries int
	Backoff    time.Duration
}

// Retrying decora un Runner reintentando la unidad completa (lectura + plan + escritura)
// cuando falla por bloqueo o modificación concurrente. Cualquier otro error se devuelve tal cual.
type Retrying struct {
	inner  Runner
	policy RetryPolicy
	log    zerolog.Logger
}

var _ Runner = (*Retrying)(nil)

// NewRetrying construye el decorador.
func NewRetrying(inner Runner, policy RetryPolicy, log zerolog.Logger) *Retrying {
	if policy.MaxRetries < 0 {
		policy.MaxRetries = 0
	}
	return &Retrying{inner: inner, policy: policy, log: log}
}

// Run ejecuta fn con hasta MaxRetries reintentos y backoff lineal.
func (r *Retrying) Run(ctx context.Context, fn func(s Store) error) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = r.inner.Run(ctx, fn)
		if err == nil || !domain.IsRetryable(err) || attempt >= r.policy.MaxRetries {
			return err
		}
		wait := r.policy.Backoff * time.Duration(attempt+1)
		r.log.Warn().Err(err).Int("attempt", attempt+1).Dur("backoff", wait).Msg("transacción reintentada")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}
