package dto

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
)

// PageRequest paginación skip/limit para listados (GET /geodata/).
type PageRequest struct {
	Skip  int `query:"skip" validate:"min=0"`
	Limit int `query:"limit" validate:"min=0,max=1000"`
}

// DefaultPage aplica valores por defecto si Limit es cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 100
	}
	if p.Skip < 0 {
		p.Skip = 0
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// StockErrorResponse cuerpo de un movimiento rechazado por validación de stock.
type StockErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details"`
}

// FlexTime fecha/hora que acepta RFC 3339, ISO sin zona o una fecha simple ("2025-02-04").
// Sin zona explícita se asume UTC.
type FlexTime struct {
	time.Time
}

// UnmarshalJSON interpreta el string con dateparse.
func (t *FlexTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("fecha: se esperaba un string: %w", err)
	}
	parsed, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return fmt.Errorf("fecha %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}

// MarshalJSON serializa en RFC 3339.
func (t FlexTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}
