package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrProductNotFound   = errors.New("producto no encontrado")
	ErrMovementNotFound  = errors.New("movimiento no encontrado")
	ErrPolygonNotFound   = errors.New("polígono no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidGeometry   = errors.New("geometría inválida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrProductInUse      = fmt.Errorf("%w: el producto tiene movimientos asociados", ErrConflict)
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrStockOverflow     = fmt.Errorf("%w: el stock excede el rango representable", ErrConflict)
)

// StockFailure describe por qué un ítem de una salida fue rechazado.
type StockFailure struct {
	ProductID int64
	Available int64
	Requested int64
	NotFound  bool
	Overflow  bool // la entrada dejaría el stock fuera de rango
}

// Message texto legible que se devuelve al cliente en "details".
func (f StockFailure) Message() string {
	if f.NotFound {
		return fmt.Sprintf("producto %d: no encontrado", f.ProductID)
	}
	if f.Overflow {
		return fmt.Sprintf("producto %d: la entrada excede el stock máximo (actual: %d, entrada: %d)",
			f.ProductID, f.Available, f.Requested)
	}
	return fmt.Sprintf("producto %d: stock insuficiente (disponible: %d, solicitado: %d)",
		f.ProductID, f.Available, f.Requested)
}

// StockValidationError agrega todas las fallas de un movimiento rechazado.
// errors.Is(err, ErrInsufficientStock) es verdadero para este tipo.
type StockValidationError struct {
	Failures []StockFailure
}

func (e *StockValidationError) Error() string {
	return ErrInsufficientStock.Error() + ": " + strings.Join(e.Messages(), "; ")
}

func (e *StockValidationError) Unwrap() error { return ErrInsufficientStock }

// Messages devuelve un mensaje por falla, en el orden de los ítems.
func (e *StockValidationError) Messages() []string {
	out := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		out = append(out, f.Message())
	}
	return out
}
