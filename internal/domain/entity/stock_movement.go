package entity

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MovementType tipo de movimiento de inventario. Los valores son los literales
// que usa el dashboard y que se persisten tal cual.
type MovementType string

// MaxItemQuantity cantidad máxima aceptada en un ítem de movimiento.
const MaxItemQuantity int64 = 1_000_000_000

const (
	MovementTypeInbound  MovementType = "entrada"
	MovementTypeOutbound MovementType = "saída"
)

// IsOutbound indica si el movimiento descuenta stock.
func (t MovementType) IsOutbound() bool { return t == MovementTypeOutbound }

// Valid indica si t es uno de los tipos canónicos.
func (t MovementType) Valid() bool {
	return t == MovementTypeInbound || t == MovementTypeOutbound
}

// ParseMovementType normaliza el token recibido (mayúsculas, espacios, NFC/NFD)
// y acepta los alias "saida", "inbound" y "outbound".
func ParseMovementType(s string) (MovementType, bool) {
	token := norm.NFC.String(strings.ToLower(strings.TrimSpace(s)))
	switch token {
	case string(MovementTypeInbound), "inbound":
		return MovementTypeInbound, true
	case string(MovementTypeOutbound), "outbound":
		return MovementTypeOutbound, true
	}
	if stripAccents(token) == "saida" {
		return MovementTypeOutbound, true
	}
	return "", false
}

func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// StockMovement cabecera de un movimiento (entrada o salida) con sus ítems.
// Los ítems solo se crean junto con el movimiento y nunca se actualizan.
type StockMovement struct {
	ID           int64
	Type         MovementType
	MovementDate time.Time
	Items        []StockMovementItem
}

// StockMovementItem línea (producto, cantidad) de un movimiento.
type StockMovementItem struct {
	ID         int64
	MovementID int64
	ProductID  int64
	Quantity   int64 // siempre > 0
}
