package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Límites de la columna NUMERIC(14, 2).
const (
	PriceScale         = 2
	PriceIntegerDigits = 12
)

var maxPrice = decimal.New(1, PriceIntegerDigits)

// Product representa un producto del inventario. El stock no se guarda aquí:
// se deriva de los ítems de movimiento (ver ProductStock).
type Product struct {
	ID          int64
	Name        string
	Description *string
	Price       decimal.Decimal // siempre > 0
	CreatedAt   time.Time       // asignado por el servidor, inmutable
}

// ValidPrice indica si p es positivo, tiene a lo sumo dos decimales y entra en NUMERIC(14, 2).
func ValidPrice(p decimal.Decimal) bool {
	return p.IsPositive() && p.LessThan(maxPrice) && p.Equal(p.Truncate(PriceScale))
}
