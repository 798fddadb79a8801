// Package geo convierte geometrías entre GeoJSON (formato de intercambio de la API)
// y WKB (formato que se envía a PostGIS), y las exporta a KML.
package geo

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	geom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"

	"github.com/jhoicas/estoque-api/internal/domain"
)

// SRID sistema de referencia con el que se guardan todas las geometrías (WGS 84).
const SRID = 4326

// FromGeoJSON decodifica {type, coordinates} y valida la geometría resultante.
func FromGeoJSON(typ string, coordinates json.RawMessage) (geom.T, error) {
	raw := coordinates
	g, err := (&geojson.Geometry{Type: typ, Coordinates: &raw}).Decode()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidGeometry, err)
	}
	if err := Validate(g); err != nil {
		return nil, err
	}
	return g, nil
}

// ToGeoJSON codifica g y devuelve su tipo y coordenadas GeoJSON.
func ToGeoJSON(g geom.T) (string, json.RawMessage, error) {
	enc, err := geojson.Encode(g)
	if err != nil {
		return "", nil, fmt.Errorf("geojson: %w", err)
	}
	if enc.Coordinates == nil {
		return enc.Type, json.RawMessage("[]"), nil
	}
	return enc.Type, *enc.Coordinates, nil
}

// ToWKB serializa g en WKB little-endian (sin SRID; PostGIS lo asigna con ST_SetSRID).
func ToWKB(g geom.T) ([]byte, error) {
	b, err := wkb.Marshal(g, binary.LittleEndian)
	if err != nil {
		return nil, fmt.Errorf("wkb marshal: %w", err)
	}
	return b, nil
}

// FromWKB deserializa lo devuelto por ST_AsBinary.
func FromWKB(b []byte) (geom.T, error) {
	g, err := wkb.Unmarshal(b)
	if err != nil {
		return nil, fmt.Errorf("wkb unmarshal: %w", err)
	}
	return g, nil
}

// Codec agrupa las conversiones para inyectarlas en los casos de uso.
type Codec struct{}

func (Codec) Decode(typ string, coordinates json.RawMessage) (geom.T, error) {
	return FromGeoJSON(typ, coordinates)
}

func (Codec) Encode(g geom.T) (string, json.RawMessage, error) { return ToGeoJSON(g) }
