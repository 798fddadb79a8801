package geo

import (
	"fmt"

	geom "github.com/twpayne/go-geom"

	"github.com/jhoicas/estoque-api/internal/domain"
)

// Validate acepta Point, LineString, Polygon y sus variantes Multi.
// Los anillos de un polígono deben tener al menos 4 posiciones y estar cerrados.
func Validate(g geom.T) error {
	switch t := g.(type) {
	case *geom.Point:
		if len(t.FlatCoords()) == 0 {
			return invalid("punto sin coordenadas")
		}
	case *geom.LineString:
		return validateLineString(t)
	case *geom.Polygon:
		return validatePolygon(t)
	case *geom.MultiPoint:
		if t.NumPoints() == 0 {
			return invalid("multipunto vacío")
		}
	case *geom.MultiLineString:
		if t.NumLineStrings() == 0 {
			return invalid("multilínea vacía")
		}
		for i := 0; i < t.NumLineStrings(); i++ {
			if err := validateLineString(t.LineString(i)); err != nil {
				return err
			}
		}
	case *geom.MultiPolygon:
		if t.NumPolygons() == 0 {
			return invalid("multipolígono vacío")
		}
		for i := 0; i < t.NumPolygons(); i++ {
			if err := validatePolygon(t.Polygon(i)); err != nil {
				return err
			}
		}
	default:
		return invalid(fmt.Sprintf("tipo no soportado %T", g))
	}
	return nil
}

func validateLineString(ls *geom.LineString) error {
	if ls.NumCoords() < 2 {
		return invalid("una línea necesita al menos 2 posiciones")
	}
	return nil
}

func validatePolygon(p *geom.Polygon) error {
	if p.NumLinearRings() == 0 {
		return invalid("polígono sin anillos")
	}
	for i := 0; i < p.NumLinearRings(); i++ {
		ring := p.LinearRing(i)
		n := ring.NumCoords()
		if n < 4 {
			return invalid(fmt.Sprintf("anillo %d: se necesitan al menos 4 posiciones", i))
		}
		if !sameCoord(ring.Coord(0), ring.Coord(n-1)) {
			return invalid(fmt.Sprintf("anillo %d no está cerrado", i))
		}
	}
	return nil
}

func sameCoord(a, b geom.Coord) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidGeometry, msg)
}
