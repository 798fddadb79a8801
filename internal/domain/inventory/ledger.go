package inventory

import (
	"fmt"
	"math"
	"slices"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// CheckMode define cómo se validan varias salidas del mismo producto dentro de un lote.
type CheckMode string

const (
	// CheckPerItem compara cada ítem contra el stock previo al lote, de forma independiente.
	// Dos salidas del mismo producto pueden pasar aunque su suma exceda el stock.
	CheckPerItem CheckMode = "per_item"
	// CheckRunningTotal descuenta cada ítem aceptado antes de validar el siguiente.
	CheckRunningTotal CheckMode = "running_total"
)

// ParseCheckMode interpreta STOCK_CHECK_MODE; vacío equivale a CheckPerItem.
func ParseCheckMode(s string) (CheckMode, error) {
	switch CheckMode(s) {
	case "", CheckPerItem:
		return CheckPerItem, nil
	case CheckRunningTotal:
		return CheckRunningTotal, nil
	}
	return "", fmt.Errorf("modo de validación de stock desconocido: %q", s)
}

// CurrentStock stock = Σ entradas − Σ salidas (servicio de dominio).
// Devuelve domain.ErrStockOverflow si alguna suma sale del rango de int64.
func CurrentStock(entries []entity.LedgerEntry) (int64, error) {
	var totalIn, totalOut int64
	var ok bool
	for _, e := range entries {
		switch e.Type {
		case entity.MovementTypeInbound:
			totalIn, ok = addChecked(totalIn, e.Quantity)
		case entity.MovementTypeOutbound:
			totalOut, ok = addChecked(totalOut, e.Quantity)
		default:
			continue
		}
		if !ok {
			return 0, domain.ErrStockOverflow
		}
	}
	stock, ok := addChecked(totalIn, -totalOut)
	if !ok {
		return 0, domain.ErrStockOverflow
	}
	return stock, nil
}

// addChecked suma a + b; ok es false si el resultado desborda int64.
func addChecked(a, b int64) (int64, bool) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, false
	}
	return a + b, true
}

// Line ítem solicitado en un movimiento.
type Line struct {
	ProductID int64
	Quantity  int64
}

// Validate revisa los ítems de un movimiento contra el snapshot de stock tomado antes del lote.
// Un producto ausente del snapshot no existe. Para entradas solo se verifica existencia
// y que el stock resultante no desborde int64.
// Devuelve los índices aceptados (en orden de entrada) y todas las fallas encontradas.
func Validate(t entity.MovementType, snapshot map[int64]int64, lines []Line, mode CheckMode) ([]int, []domain.StockFailure) {
	accepted := make([]int, 0, len(lines))
	var failures []domain.StockFailure

	remaining := make(map[int64]int64, len(snapshot))
	for id, qty := range snapshot {
		remaining[id] = qty
	}

	for i, l := range lines {
		available, ok := snapshot[l.ProductID]
		if !ok {
			failures = append(failures, domain.StockFailure{ProductID: l.ProductID, Requested: l.Quantity, NotFound: true})
			continue
		}
		if !t.IsOutbound() {
			// remaining acumula las entradas del lote para detectar desbordes.
			next, ok := addChecked(remaining[l.ProductID], l.Quantity)
			if !ok {
				failures = append(failures, domain.StockFailure{
					ProductID: l.ProductID, Available: remaining[l.ProductID], Requested: l.Quantity, Overflow: true,
				})
				continue
			}
			remaining[l.ProductID] = next
			accepted = append(accepted, i)
			continue
		}
		if mode == CheckRunningTotal {
			available = remaining[l.ProductID]
		}
		if l.Quantity > available {
			failures = append(failures, domain.StockFailure{ProductID: l.ProductID, Available: available, Requested: l.Quantity})
			continue
		}
		remaining[l.ProductID] = available - l.Quantity
		accepted = append(accepted, i)
	}
	return accepted, failures
}

// DistinctProducts ids únicos de los ítems, en orden ascendente (orden de bloqueo estable).
func DistinctProducts(lines []Line) []int64 {
	seen := make(map[int64]struct{}, len(lines))
	ids := make([]int64, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.ProductID]; ok {
			continue
		}
		seen[l.ProductID] = struct{}{}
		ids = append(ids, l.ProductID)
	}
	slices.Sort(ids)
	return ids
}
