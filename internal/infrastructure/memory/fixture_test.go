package memory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDemo_DerivaCapacidades(t *testing.T) {
	s, err := LoadDemo()
	require.NoError(t, err)

	r1, ok := s.Rack("r-1")
	require.True(t, ok)
	assert.True(t, r1.RemainingCapacity.Equal(decimal.NewFromInt(10)), "60 - 10*5")

	r2, _ := s.Rack("r-2")
	assert.True(t, r2.RemainingCapacity.Equal(decimal.NewFromInt(30)), "40 - 5*2")

	wh, ok := s.Warehouse("wh-1")
	require.True(t, ok)
	assert.True(t, wh.RemainingCapacity.Equal(decimal.NewFromInt(40)))

	inv, ok := s.Inventory("r-2", "p-z")
	require.True(t, ok)
	assert.Equal(t, 5, inv.Quantity)
	require.NotNil(t, inv.ExpiryDate, "p-z vence")
	assert.True(t, inv.ExpiryDate.Equal(inv.ArrivalDate.AddDate(0, 0, 180)))
}

func TestLoadFixture_Errores(t *testing.T) {
	_, err := LoadFixture([]byte("warehouses: ["))
	assert.Error(t, err)

	_, err = LoadFixture([]byte(`
racks:
  - {id: r, warehouse_id: nope, position: A1, overall_capacity: "1"}
`))
	assert.ErrorContains(t, err, "nope")

	_, err = LoadFixture([]byte(`
warehouses:
  - {id: w, overall_capacity: "abc"}
`))
	assert.ErrorContains(t, err, "overall_capacity")

	_, err = LoadFixture([]byte(`
warehouses:
  - {id: w, overall_capacity: "10"}
racks:
  - {id: r, warehouse_id: w, position: A1, overall_capacity: "1"}
products:
  - {id: p, volume: "2"}
inventories:
  - {rack_id: r, product_id: p, quantity: 1}
`))
	assert.ErrorContains(t, err, "sin capacidad")
}

func TestLoadFixtureFile_NoExiste(t *testing.T) {
	_, err := LoadFixtureFile("testdata/no-existe.yaml")
	assert.Error(t, err)
}
