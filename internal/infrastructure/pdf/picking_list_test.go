package pdf

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodegas-api/internal/application/ordering"
)

func TestTotals(t *testing.T) {
	units, volume := totals([]ordering.Allocation{
		{Quantity: 3, Volume: decimal.RequireFromString("1.5")},
		{Quantity: 2, Volume: decimal.RequireFromString("1")},
	})
	assert.Equal(t, 5, units)
	assert.True(t, volume.Equal(decimal.RequireFromString("2.5")))
}

func TestGenerate(t *testing.T) {
	g := NewPickingListGenerator()
	out, err := g.Generate(context.Background(), &ordering.Plan{
		OrderID:     "o-1",
		WarehouseID: "wh-1",
		Direction:   ordering.DirectionSend,
		Allocations: []ordering.Allocation{
			{ProductID: "p-1", RackID: "r-1", RackPosition: "A-01", Quantity: 4, Volume: decimal.NewFromInt(4)},
		},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerate_NilPlan(t *testing.T) {
	_, err := NewPickingListGenerator().Generate(context.Background(), nil)
	assert.Error(t, err)
}
