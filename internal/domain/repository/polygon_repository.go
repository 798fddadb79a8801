package repository

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// PolygonRepository persistencia de geometrías con nombre.
type PolygonRepository interface {
	Create(ctx context.Context, polygon *entity.Polygon) error
	GetByID(ctx context.Context, id int64) (*entity.Polygon, error)
	List(ctx context.Context, offset, limit int) ([]*entity.Polygon, error)
}
