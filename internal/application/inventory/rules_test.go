package inventory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Bodegas-api/internal/domain"
	"github.com/jhoicas/Bodegas-api/internal/domain/entity"
)

func TestCheckStackable(t *testing.T) {
	stack := &entity.Product{ID: "s", IsStackable: true}
	other := &entity.Product{ID: "o", IsStackable: true}
	solo := &entity.Product{ID: "n", IsStackable: false}

	assert.NoError(t, CheckStackable(solo, nil), "rack vacío admite cualquier producto")
	assert.NoError(t, CheckStackable(stack, []*entity.Product{other}))
	assert.NoError(t, CheckStackable(solo, []*entity.Product{solo}), "mismo producto se fusiona")

	err := CheckStackable(stack, []*entity.Product{solo})
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Equal(t, "Non stackable product is already occupying this rack", err.Error())

	err = CheckStackable(solo, []*entity.Product{stack})
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Equal(t, "Non stackable product is already occupying this rack", err.Error())
}

func TestCheckType(t *testing.T) {
	w := &entity.Warehouse{WarehouseType: entity.WarehouseTypeDry}
	assert.NoError(t, CheckType(w, &entity.Product{ProductType: entity.WarehouseTypeDry}))
	err := CheckType(w, &entity.Product{ProductType: entity.WarehouseTypeFreezer})
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Equal(t, "Product with type freezer cannot be put to the warehouse for dry products", err.Error())
}
