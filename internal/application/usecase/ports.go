package usecase

import (
	"encoding/json"

	geom "github.com/twpayne/go-geom"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// GeometryCodec conversión GeoJSON ⇄ geom.T y exportación KML (implementado en infrastructure/geo).
type GeometryCodec interface {
	Decode(typ string, coordinates json.RawMessage) (geom.T, error)
	Encode(g geom.T) (string, json.RawMessage, error)
	KML(p *entity.Polygon) ([]byte, error)
}
