package capacity

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodegas-api/internal/domain"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestVolume(t *testing.T) {
	assert.True(t, Volume(10, d("5")).Equal(d("50")))
	assert.True(t, Volume(3, d("0.5")).Equal(d("1.5")))
	assert.True(t, Volume(0, d("7")).IsZero())
}

func TestApply(t *testing.T) {
	tests := []struct {
		name      string
		remaining string
		overall   string
		delta     string
		want      string
		kind      error
	}{
		{name: "consume", remaining: "60", overall: "60", delta: "50", want: "10"},
		{name: "libera", remaining: "10", overall: "60", delta: "-50", want: "60"},
		{name: "justo a cero", remaining: "10", overall: "60", delta: "10", want: "0"},
		{name: "negativa", remaining: "10", overall: "60", delta: "10.5", kind: domain.ErrCapacityExceeded},
		{name: "supera total", remaining: "50", overall: "60", delta: "-11", kind: domain.ErrCapacityInconsistent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(d(tt.remaining), d(tt.overall), d(tt.delta))
			if tt.kind != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.kind))
				assert.True(t, got.Equal(d(tt.remaining)), "en error se devuelve el valor previo")
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(d(tt.want)), "got %s", got)
		})
	}
}

func TestFitsYUnitsThatFit(t *testing.T) {
	assert.True(t, Fits(d("10"), d("10")))
	assert.False(t, Fits(d("9.99"), d("10")))

	assert.Equal(t, 2, UnitsThatFit(d("10"), d("4")))
	assert.Equal(t, 0, UnitsThatFit(d("3"), d("4")))
	assert.Equal(t, 0, UnitsThatFit(d("10"), decimal.Zero))
	assert.Equal(t, 0, UnitsThatFit(decimal.Zero, d("1")))
}
