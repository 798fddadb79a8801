package memory

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.PolygonRepository = (*PolygonRepo)(nil)

// PolygonRepo geometrías en memoria; geom.T se guarda tal cual (no se muta después de crearla).
type PolygonRepo struct {
	h handle
}

func (r *PolygonRepo) Create(_ context.Context, polygon *entity.Polygon) error {
	return r.h.do(func(st *state) error {
		st.nextPolygon++
		polygon.ID = st.nextPolygon
		st.polygons[polygon.ID] = *polygon
		return nil
	})
}

func (r *PolygonRepo) GetByID(_ context.Context, id int64) (*entity.Polygon, error) {
	var out *entity.Polygon
	err := r.h.do(func(st *state) error {
		if p, ok := st.polygons[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *PolygonRepo) List(_ context.Context, offset, limit int) ([]*entity.Polygon, error) {
	var out []*entity.Polygon
	err := r.h.do(func(st *state) error {
		keys := sortedKeys(st.polygons)
		if offset < 0 {
			offset = 0
		}
		if offset >= len(keys) {
			return nil
		}
		keys = keys[offset:]
		if limit >= 0 && limit < len(keys) {
			keys = keys[:limit]
		}
		for _, id := range keys {
			p := st.polygons[id]
			out = append(out, &p)
		}
		return nil
	})
	return out, err
}
