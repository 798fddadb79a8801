package repository

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id int64) error
	// LockForUpdate bloquea las filas de los productos indicados hasta el fin de la transacción
	// y devuelve los que existen. Fuera de una transacción equivale a una lectura.
	LockForUpdate(ctx context.Context, ids []int64) ([]*entity.Product, error)
}
