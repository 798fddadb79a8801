package memory

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo devuelve un LedgerEntry por ítem del producto.
type StockRepo struct {
	h handle
}

func (r *StockRepo) LedgerByProduct(_ context.Context, productID int64) ([]entity.LedgerEntry, error) {
	var out []entity.LedgerEntry
	err := r.h.do(func(st *state) error {
		for _, id := range sortedKeys(st.items) {
			it := st.items[id]
			if it.ProductID != productID {
				continue
			}
			m, ok := st.movements[it.MovementID]
			if !ok {
				continue
			}
			out = append(out, entity.LedgerEntry{Type: m.Type, Quantity: it.Quantity})
		}
		return nil
	})
	return out, err
}
