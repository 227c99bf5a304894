// Package memory implementa los repositorios del motor en memoria de proceso.
//
// Es un driver completo (STORE_DRIVER=memory) y el doble de pruebas de los casos de uso:
// las transacciones se serializan con un único cerrojo y se revierten restaurando una copia del estado.
package memory

import (
	"context"
	"time"

	"github.com/jhoicas/Bodegas-api/internal/application/txn"
	"github.com/jhoicas/Bodegas-api/internal/domain"
	"github.com/jhoicas/Bodegas-api/internal/domain/entity"
)

type data struct {
	warehouses  map[string]entity.Warehouse
	racks       map[string]entity.Rack
	inventories map[string]entity.Inventory
	thrown      []entity.ThrownItem
	products    map[string]entity.Product
	orders      map[string]entity.Order
	items       map[string][]entity.OrderItem
	lost        map[string]map[string]entity.LostItem
	transports  map[string]entity.Transport
	vendors     map[string]entity.Vendor
}

func newData() *data {
	return &data{
		warehouses:  map[string]entity.Warehouse{},
		racks:       map[string]entity.Rack{},
		inventories: map[string]entity.Inventory{},
		products:    map[string]entity.Product{},
		orders:      map[string]entity.Order{},
		items:       map[string][]entity.OrderItem{},
		lost:        map[string]map[string]entity.LostItem{},
		transports:  map[string]entity.Transport{},
		vendors:     map[string]entity.Vendor{},
	}
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (d *data) clone() *data {
	c := &data{
		warehouses:  copyMap(d.warehouses),
		racks:       copyMap(d.racks),
		inventories: copyMap(d.inventories),
		thrown:      append([]entity.ThrownItem(nil), d.thrown...),
		products:    copyMap(d.products),
		orders:      copyMap(d.orders),
		items:       make(map[string][]entity.OrderItem, len(d.items)),
		lost:        make(map[string]map[string]entity.LostItem, len(d.lost)),
		transports:  copyMap(d.transports),
		vendors:     copyMap(d.vendors),
	}
	for k, v := range d.items {
		c.items[k] = append([]entity.OrderItem(nil), v...)
	}
	for k, v := range d.lost {
		c.lost[k] = copyMap(v)
	}
	return c
}

// Store estado en memoria + runner transaccional.
type Store struct {
	sem         chan struct{}
	data        *data
	lockTimeout time.Duration
}

var _ txn.Runner = (*Store)(nil)

// Option configura el Store.
type Option func(*Store)

// WithLockTimeout fija la espera máxima por el cerrojo; vencida, Run devuelve ErrBusy. 0 = sin límite.
func WithLockTimeout(d time.Duration) Option {
	return func(s *Store) { s.lockTimeout = d }
}

// New construye un Store vacío.
func New(opts ...Option) *Store {
	s := &Store{sem: make(chan struct{}, 1), data: newData()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Run ejecuta fn con acceso exclusivo al estado. Si fn falla, entra en pánico o ctx se cancela,
// el estado vuelve al previo.
func (s *Store) Run(ctx context.Context, fn func(st txn.Store) error) error {
	if err := s.acquire(ctx); err != nil {
		return err
	}
	defer s.release()

	snapshot := s.data.clone()
	defer func() {
		if p := recover(); p != nil {
			s.data = snapshot
			panic(p)
		}
	}()
	err := fn(s.bind())
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

func (s *Store) acquire(ctx context.Context) error {
	var timeout <-chan time.Time
	if s.lockTimeout > 0 {
		t := time.NewTimer(s.lockTimeout)
		defer t.Stop()
		timeout = t.C
	}
	select {
	case s.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timeout:
		return domain.NewError(domain.ErrBusy, "lock timeout")
	}
}

func (s *Store) release() { <-s.sem }

func (s *Store) bind() txn.Store {
	return txn.Store{
		Warehouses:  warehouseRepo{s},
		Racks:       rackRepo{s},
		Inventories: inventoryRepo{s},
		ThrownItems: thrownRepo{s},
		Products:    productRepo{s},
		Orders:      orderRepo{s},
		LostItems:   lostRepo{s},
		Transports:  transportRepo{s},
		Vendors:     vendorRepo{s},
	}
}

// with ejecuta fn con el cerrojo tomado (altas y lecturas directas de pruebas y fixtures).
func (s *Store) with(fn func(d *data)) {
	s.sem <- struct{}{}
	defer s.release()
	fn(s.data)
}

// ─── Altas directas ───────────────────────────────────────────────────────────

func (s *Store) AddWarehouse(w entity.Warehouse) { s.with(func(d *data) { d.warehouses[w.ID] = w }) }
func (s *Store) AddRack(r entity.Rack)           { s.with(func(d *data) { d.racks[r.ID] = r }) }
func (s *Store) AddProduct(p entity.Product)     { s.with(func(d *data) { d.products[p.ID] = p }) }
func (s *Store) AddVendor(v entity.Vendor)       { s.with(func(d *data) { d.vendors[v.ID] = v }) }
func (s *Store) AddTransport(t entity.Transport) { s.with(func(d *data) { d.transports[t.ID] = t }) }
func (s *Store) AddInventory(i entity.Inventory) { s.with(func(d *data) { d.inventories[i.ID] = i }) }

// AddOrder registra una orden con sus líneas.
func (s *Store) AddOrder(o entity.Order, items []entity.OrderItem) {
	s.with(func(d *data) {
		d.orders[o.ID] = o
		d.items[o.ID] = append([]entity.OrderItem(nil), items...)
	})
}

// ─── Lecturas directas ────────────────────────────────────────────────────────

// Warehouse devuelve una copia de la bodega.
func (s *Store) Warehouse(id string) (w entity.Warehouse, ok bool) {
	s.with(func(d *data) { w, ok = d.warehouses[id] })
	return
}

// Rack devuelve una copia del rack.
func (s *Store) Rack(id string) (r entity.Rack, ok bool) {
	s.with(func(d *data) { r, ok = d.racks[id] })
	return
}

// Inventory devuelve la fila (rack, producto).
func (s *Store) Inventory(rackID, productID string) (inv entity.Inventory, ok bool) {
	s.with(func(d *data) {
		var p *entity.Inventory
		if p, ok = findInventory(d, rackID, productID); ok {
			inv = *p
		}
	})
	return
}

// Order devuelve la orden y sus líneas.
func (s *Store) Order(id string) (o entity.Order, items []entity.OrderItem, ok bool) {
	s.with(func(d *data) {
		o, ok = d.orders[id]
		items = append([]entity.OrderItem(nil), d.items[id]...)
	})
	return
}

// ThrownItems devuelve las bajas registradas.
func (s *Store) ThrownItems() (out []entity.ThrownItem) {
	s.with(func(d *data) { out = append(out, d.thrown...) })
	return
}
