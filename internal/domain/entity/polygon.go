package entity

import geom "github.com/twpayne/go-geom"

// Polygon geometría con nombre. Aunque la tabla se llama "polygons", Geometry
// puede ser cualquier geometría simple soportada (punto, línea, polígono o multi).
type Polygon struct {
	ID          int64
	Name        string
	Description *string
	Geometry    geom.T
}
