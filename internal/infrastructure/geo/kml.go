package geo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	geom "github.com/twpayne/go-geom"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

const nsKML = "http://www.opengis.net/kml/2.2"

// KML genera un documento KML 2.2 con un Placemark para el polígono.
func KML(p *entity.Polygon) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("kml")
	root.CreateAttr("xmlns", nsKML)
	placemark := root.CreateElement("Document").CreateElement("Placemark")
	placemark.CreateAttr("id", "polygon-"+strconv.FormatInt(p.ID, 10))
	placemark.CreateElement("name").SetText(p.Name)
	if p.Description != nil {
		placemark.CreateElement("description").SetText(*p.Description)
	}
	if err := writeGeometry(placemark, p.Geometry); err != nil {
		return nil, err
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}

func writeGeometry(parent *etree.Element, g geom.T) error {
	switch t := g.(type) {
	case *geom.Point:
		parent.CreateElement("Point").CreateElement("coordinates").SetText(coordsText(t.Layout(), [][]float64{t.Coords()}))
	case *geom.LineString:
		parent.CreateElement("LineString").CreateElement("coordinates").SetText(lineText(t.Layout(), t.Coords()))
	case *geom.Polygon:
		writePolygon(parent, t)
	case *geom.MultiPoint:
		multi := parent.CreateElement("MultiGeometry")
		for i := 0; i < t.NumPoints(); i++ {
			if err := writeGeometry(multi, t.Point(i)); err != nil {
				return err
			}
		}
	case *geom.MultiLineString:
		multi := parent.CreateElement("MultiGeometry")
		for i := 0; i < t.NumLineStrings(); i++ {
			if err := writeGeometry(multi, t.LineString(i)); err != nil {
				return err
			}
		}
	case *geom.MultiPolygon:
		multi := parent.CreateElement("MultiGeometry")
		for i := 0; i < t.NumPolygons(); i++ {
			writePolygon(multi, t.Polygon(i))
		}
	default:
		return fmt.Errorf("kml: geometría no soportada %T", g)
	}
	return nil
}

// writePolygon: el primer anillo es el exterior, el resto son huecos.
func writePolygon(parent *etree.Element, p *geom.Polygon) {
	el := parent.CreateElement("Polygon")
	for i := 0; i < p.NumLinearRings(); i++ {
		boundary := "innerBoundaryIs"
		if i == 0 {
			boundary = "outerBoundaryIs"
		}
		ring := p.LinearRing(i)
		el.CreateElement(boundary).CreateElement("LinearRing").CreateElement("coordinates").
			SetText(lineText(ring.Layout(), ring.Coords()))
	}
}

func lineText(layout geom.Layout, coords []geom.Coord) string {
	pts := make([][]float64, len(coords))
	for i, c := range coords {
		pts[i] = c
	}
	return coordsText(layout, pts)
}

// coordsText formato KML: "lon,lat[,alt]" separados por espacio.
func coordsText(layout geom.Layout, pts [][]float64) string {
	stride := 2
	if layout == geom.XYZ || layout == geom.XYZM {
		stride = 3
	}
	parts := make([]string, 0, len(pts))
	for _, p := range pts {
		vals := make([]string, 0, stride)
		for i := 0; i < stride && i < len(p); i++ {
			vals = append(vals, strconv.FormatFloat(p[i], 'f', -1, 64))
		}
		parts = append(parts, strings.Join(vals, ","))
	}
	return strings.Join(parts, " ")
}

func (Codec) KML(p *entity.Polygon) ([]byte, error) { return KML(p) }
