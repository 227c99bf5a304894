// Package engine arma los casos de uso del motor sobre un único txn.Runner.
package engine

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Bodegas-api/internal/application/inventory"
	"github.com/jhoicas/Bodegas-api/internal/application/ledger"
	"github.com/jhoicas/Bodegas-api/internal/application/ordering"
	"github.com/jhoicas/Bodegas-api/internal/application/txn"
	"github.com/jhoicas/Bodegas-api/internal/application/usecase"
)

// Engine agrupa los casos de uso que comparten runner y ledger.
type Engine struct {
	Warehouses *usecase.WarehouseUseCase
	Inventory  *inventory.UseCase
	Orders     *ordering.UseCase
	Planner    *ordering.Planner
}

// New construye el motor. clock nil usa time.Now.
func New(runner txn.Runner, clock func() time.Time, log zerolog.Logger) *Engine {
	l := ledger.New(clock)
	inv := inventory.NewUseCase(runner, l, log.With().Str("component", "inventory").Logger())
	planner := ordering.NewPlanner(inv)
	return &Engine{
		Warehouses: usecase.NewWarehouseUseCase(runner),
		Inventory:  inv,
		Orders:     ordering.NewUseCase(runner, planner, l.Now, log.With().Str("component", "ordering").Logger()),
		Planner:    planner,
	}
}
