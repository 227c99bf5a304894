// Package capacity implementa la aritmética de capacidad de racks y bodegas (servicio de dominio).
//
// Convención de signo: volumeDelta > 0 consume capacidad (entra volumen), volumeDelta < 0 la libera.
// RemainingNuevo = Remaining - volumeDelta, con 0 <= RemainingNuevo <= Overall.
package capacity

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodegas-api/internal/domain"
)

// Volume devuelve quantity * unitVolume.
func Volume(quantity int, unitVolume decimal.Decimal) decimal.Decimal {
	return unitVolume.Mul(decimal.NewFromInt(int64(quantity)))
}

// Apply calcula la nueva capacidad restante tras aplicar volumeDelta.
// Falla con ErrCapacityExceeded si quedaría negativa y con ErrCapacityInconsistent si superaría la total.
func Apply(remaining, overall, volumeDelta decimal.Decimal) (decimal.Decimal, error) {
	next := remaining.Sub(volumeDelta)
	if next.IsNegative() {
		return remaining, domain.NewError(domain.ErrCapacityExceeded, "Not enough capacity")
	}
	if next.GreaterThan(overall) {
		return remaining, domain.Errorf(domain.ErrCapacityInconsistent,
			"remaining capacity %s would exceed overall capacity %s", next.String(), overall.String())
	}
	return next, nil
}

// Fits indica si volume cabe en remaining.
func Fits(remaining, volume decimal.Decimal) bool {
	return remaining.GreaterThanOrEqual(volume)
}

// UnitsThatFit devuelve cuántas unidades de unitVolume caben en remaining (piso).
func UnitsThatFit(remaining, unitVolume decimal.Decimal) int {
	if !unitVolume.IsPositive() || !remaining.IsPositive() {
		return 0
	}
	return int(remaining.Div(unitVolume).Floor().IntPart())
}
