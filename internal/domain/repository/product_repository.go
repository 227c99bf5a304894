package repository

import (
	"context"

	"github.com/jhoicas/Bodegas-api/internal/domain/entity"
)

// ProductRepository define el puerto de lectura de Product (el CRUD vive fuera del motor).
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetByIDs devuelve los productos encontrados indexados por ID; los faltantes no aparecen.
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error)
}
