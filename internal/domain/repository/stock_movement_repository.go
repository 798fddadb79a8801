package repository

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para movimientos y sus ítems.
// GetByID y List devuelven los movimientos con Items cargados.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	AddItem(ctx context.Context, item *entity.StockMovementItem) error
	GetByID(ctx context.Context, id int64) (*entity.StockMovement, error)
	List(ctx context.Context) ([]*entity.StockMovement, error)
	UpdateHeader(ctx context.Context, movement *entity.StockMovement) error
	DeleteItems(ctx context.Context, movementID int64) (int64, error)
	Delete(ctx context.Context, id int64) error
	CountItemsByProduct(ctx context.Context, productID int64) (int64, error)
}
