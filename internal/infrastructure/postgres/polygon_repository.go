package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/jhoicas/estoque-api/internal/infrastructure/geo"
)

var _ repository.PolygonRepository = (*PolygonRepo)(nil)

// PolygonRepo geometrías sobre PostGIS. La conversión WKB ⇄ geom.T se hace aquí, en el borde.
type PolygonRepo struct {
	q Querier
}

// NewPolygonRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPolygonRepository(q Querier) *PolygonRepo {
	return &PolygonRepo{q: q}
}

// Create persiste el polígono con SRID 4326.
func (r *PolygonRepo) Create(ctx context.Context, polygon *entity.Polygon) error {
	b, err := geo.ToWKB(polygon.Geometry)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO polygons (name, description, geom)
		VALUES ($1, $2, ST_SetSRID(ST_GeomFromWKB($3), $4))
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, polygon.Name, polygon.Description, b, geo.SRID).Scan(&polygon.ID); err != nil {
		return fmt.Errorf("insert polygon: %w", err)
	}
	return nil
}

// GetByID obtiene un polígono por ID.
func (r *PolygonRepo) GetByID(ctx context.Context, id int64) (*entity.Polygon, error) {
	row := r.q.QueryRow(ctx, `SELECT id, name, description, ST_AsBinary(geom) FROM polygons WHERE id = $1`, id)
	p, err := scanPolygon(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get polygon: %w", err)
	}
	return p, nil
}

// List lista polígonos con paginación offset/limit.
func (r *PolygonRepo) List(ctx context.Context, offset, limit int) ([]*entity.Polygon, error) {
	query := `
		SELECT id, name, description, ST_AsBinary(geom)
		FROM polygons ORDER BY id OFFSET $1 LIMIT $2`
	rows, err := r.q.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list polygons: %w", err)
	}
	defer rows.Close()

	var list []*entity.Polygon
	for rows.Next() {
		p, err := scanPolygon(rows)
		if err != nil {
			return nil, fmt.Errorf("scan polygon: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanPolygon(row pgx.Row) (*entity.Polygon, error) {
	var p entity.Polygon
	var b []byte
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &b); err != nil {
		return nil, err
	}
	g, err := geo.FromWKB(b)
	if err != nil {
		return nil, err
	}
	p.Geometry = g
	return &p, nil
}
