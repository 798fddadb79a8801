package dto

import "encoding/json"

// GeoJSON geometría en formato de intercambio: {type, coordinates}.
type GeoJSON struct {
	Type        string          `json:"type" validate:"required"`
	Coordinates json.RawMessage `json:"coordinates" validate:"required"`
}

// CreatePolygonRequest body para POST /geodata/.
type CreatePolygonRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=200"`
	Description *string  `json:"description"`
	Geometry    *GeoJSON `json:"geometry" validate:"required"`
}

// PolygonResponse polígono con la geometría devuelta en GeoJSON.
type PolygonResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Geometry    GeoJSON `json:"geometry"`
}
