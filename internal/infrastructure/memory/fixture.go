package memory

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/Bodegas-api/internal/domain/capacity"
	"github.com/jhoicas/Bodegas-api/internal/domain/entity"
)

// Fixture datos iniciales en YAML. Los decimales van como string ("12.5").
// La capacidad restante de racks y bodegas se deriva del inventario cargado.
type Fixture struct {
	Warehouses []struct {
		ID              string `yaml:"id"`
		CompanyID       string `yaml:"company_id"`
		SupervisorID    string `yaml:"supervisor_id"`
		Name            string `yaml:"name"`
		Address         string `yaml:"address"`
		WarehouseType   string `yaml:"warehouse_type"`
		OverallCapacity string `yaml:"overall_capacity"`
	} `yaml:"warehouses"`
	Racks []struct {
		ID              string `yaml:"id"`
		WarehouseID     string `yaml:"warehouse_id"`
		Position        string `yaml:"position"`
		OverallCapacity string `yaml:"overall_capacity"`
	} `yaml:"racks"`
	Products []struct {
		ID             string `yaml:"id"`
		CompanyID      string `yaml:"company_id"`
		Name           string `yaml:"name"`
		Weight         string `yaml:"weight"`
		Volume         string `yaml:"volume"`
		Price          string `yaml:"price"`
		ExpiryDuration *int   `yaml:"expiry_duration"`
		IsStackable    bool   `yaml:"is_stackable"`
		ProductType    string `yaml:"product_type"`
	} `yaml:"products"`
	Vendors []struct {
		ID           string `yaml:"id"`
		OwnerID      string `yaml:"owner_id"`
		Name         string `yaml:"name"`
		Address      string `yaml:"address"`
		IsGovernment bool   `yaml:"is_government"`
	} `yaml:"vendors"`
	Transports []struct {
		ID             string `yaml:"id"`
		Capacity       string `yaml:"capacity"`
		TransportType  string `yaml:"transport_type"`
		Speed          string `yaml:"speed"`
		PricePerWeight string `yaml:"price_per_weight"`
	} `yaml:"transports"`
	Inventories []struct {
		RackID    string `yaml:"rack_id"`
		ProductID string `yaml:"product_id"`
		Quantity  int    `yaml:"quantity"`
	} `yaml:"inventories"`
}

// LoadFixtureFile lee un archivo YAML y construye el Store.
func LoadFixtureFile(path string, opts ...Option) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("leer fixture: %w", err)
	}
	return LoadFixture(raw, opts...)
}

// LoadFixture construye un Store a partir de YAML.
func LoadFixture(raw []byte, opts ...Option) (*Store, error) {
	var f Fixture
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsear fixture: %w", err)
	}
	s := New(opts...)
	if err := f.apply(s.data, time.Now()); err != nil {
		return nil, err
	}
	return s, nil
}

func dec(field, v string) (decimal.Decimal, error) {
	if v == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("fixture: %s=%q: %w", field, v, err)
	}
	return d, nil
}

func (f *Fixture) apply(d *data, now time.Time) error {
	for _, w := range f.Warehouses {
		overall, err := dec("overall_capacity", w.OverallCapacity)
		if err != nil {
			return err
		}
		d.warehouses[w.ID] = entity.Warehouse{
			ID: w.ID, CompanyID: w.CompanyID, SupervisorID: w.SupervisorID, Name: w.Name, Address: w.Address,
			WarehouseType: w.WarehouseType, OverallCapacity: overall, RemainingCapacity: overall,
			CreatedAt: now, UpdatedAt: now,
		}
	}
	for _, r := range f.Racks {
		if _, ok := d.warehouses[r.WarehouseID]; !ok {
			return fmt.Errorf("fixture: rack %s: warehouse %s no existe", r.ID, r.WarehouseID)
		}
		overall, err := dec("overall_capacity", r.OverallCapacity)
		if err != nil {
			return err
		}
		d.racks[r.ID] = entity.Rack{
			ID: r.ID, WarehouseID: r.WarehouseID, Position: r.Position,
			OverallCapacity: overall, RemainingCapacity: overall, CreatedAt: now, UpdatedAt: now,
		}
	}
	for _, p := range f.Products {
		weight, err := dec("weight", p.Weight)
		if err != nil {
			return err
		}
		volume, err := dec("volume", p.Volume)
		if err != nil {
			return err
		}
		price, err := dec("price", p.Price)
		if err != nil {
			return err
		}
		d.products[p.ID] = entity.Product{
			ID: p.ID, CompanyID: p.CompanyID, Name: p.Name, Weight: weight, Volume: volume, Price: price,
			ExpiryDuration: p.ExpiryDuration, IsStackable: p.IsStackable, ProductType: p.ProductType,
			CreatedAt: now, UpdatedAt: now,
		}
	}
	for _, v := range f.Vendors {
		d.vendors[v.ID] = entity.Vendor{ID: v.ID, OwnerID: v.OwnerID, Name: v.Name, Address: v.Address, IsGovernment: v.IsGovernment}
	}
	for _, t := range f.Transports {
		capacityValue, err := dec("capacity", t.Capacity)
		if err != nil {
			return err
		}
		speed, err := dec("speed", t.Speed)
		if err != nil {
			return err
		}
		ppw, err := dec("price_per_weight", t.PricePerWeight)
		if err != nil {
			return err
		}
		d.transports[t.ID] = entity.Transport{ID: t.ID, Capacity: capacityValue, TransportType: t.TransportType, Speed: speed, PricePerWeight: ppw}
	}
	for _, inv := range f.Inventories {
		rack, ok := d.racks[inv.RackID]
		if !ok {
			return fmt.Errorf("fixture: inventario: rack %s no existe", inv.RackID)
		}
		product, ok := d.products[inv.ProductID]
		if !ok {
			return fmt.Errorf("fixture: inventario: producto %s no existe", inv.ProductID)
		}
		volume := capacity.Volume(inv.Quantity, product.Volume)
		warehouse := d.warehouses[rack.WarehouseID]
		if rack.RemainingCapacity, ok = sub(rack.RemainingCapacity, volume); !ok {
			return fmt.Errorf("fixture: rack %s sin capacidad para %s", rack.ID, product.ID)
		}
		if warehouse.RemainingCapacity, ok = sub(warehouse.RemainingCapacity, volume); !ok {
			return fmt.Errorf("fixture: bodega %s sin capacidad para %s", warehouse.ID, product.ID)
		}
		d.racks[rack.ID] = rack
		d.warehouses[warehouse.ID] = warehouse
		row := entity.Inventory{
			ID: uuid.New().String(), RackID: rack.ID, ProductID: product.ID, Quantity: inv.Quantity,
			TotalVolume: volume, ArrivalDate: now, ExpiryDate: product.ExpiryFrom(now),
		}
		d.inventories[row.ID] = row
	}
	return nil
}

func sub(remaining, volume decimal.Decimal) (decimal.Decimal, bool) {
	next := remaining.Sub(volume)
	return next, !next.IsNegative()
}
