package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto de una empresa.
// Volume es el volumen unitario que consume en racks y bodegas; ProductType debe coincidir
// con el WarehouseType de la bodega que lo almacena.
type Product struct {
	ID             string
	CompanyID      string
	Name           string
	Description    string
	Weight         decimal.Decimal
	Volume         decimal.Decimal
	Price          decimal.Decimal
	ExpiryDuration *int // días; nil = no vence
	IsStackable    bool
	ProductType    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ExpiryFrom calcula la fecha de vencimiento a partir de la fecha de llegada (nil si no vence).
func (p *Product) ExpiryFrom(arrival time.Time) *time.Time {
	if p.ExpiryDuration == nil {
		return nil
	}
	t := arrival.AddDate(0, 0, *p.ExpiryDuration)
	return &t
}
