package memory

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo movimientos e ítems en memoria. Replica las claves foráneas de PostgreSQL.
type StockMovementRepo struct {
	h handle
}

func (r *StockMovementRepo) Create(_ context.Context, movement *entity.StockMovement) error {
	return r.h.do(func(st *state) error {
		st.nextMovement++
		movement.ID = st.nextMovement
		st.movements[movement.ID] = entity.StockMovement{
			ID:           movement.ID,
			Type:         movement.Type,
			MovementDate: movement.MovementDate,
		}
		return nil
	})
}

func (r *StockMovementRepo) AddItem(_ context.Context, item *entity.StockMovementItem) error {
	return r.h.do(func(st *state) error {
		if _, ok := st.movements[item.MovementID]; !ok {
			return domain.ErrMovementNotFound
		}
		if _, ok := st.products[item.ProductID]; !ok {
			return domain.ErrProductNotFound
		}
		st.nextItem++
		item.ID = st.nextItem
		st.items[item.ID] = *item
		return nil
	})
}

func (r *StockMovementRepo) GetByID(_ context.Context, id int64) (*entity.StockMovement, error) {
	var out *entity.StockMovement
	err := r.h.do(func(st *state) error {
		m, ok := st.movements[id]
		if !ok {
			return nil
		}
		m.Items = itemsOf(st, id)
		out = &m
		return nil
	})
	return out, err
}

func (r *StockMovementRepo) List(_ context.Context) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.h.do(func(st *state) error {
		for _, id := range sortedKeys(st.movements) {
			m := st.movements[id]
			m.Items = itemsOf(st, id)
			out = append(out, &m)
		}
		return nil
	})
	return out, err
}

func (r *StockMovementRepo) UpdateHeader(_ context.Context, movement *entity.StockMovement) error {
	return r.h.do(func(st *state) error {
		cur, ok := st.movements[movement.ID]
		if !ok {
			return domain.ErrMovementNotFound
		}
		cur.Type = movement.Type
		cur.MovementDate = movement.MovementDate
		st.movements[movement.ID] = cur
		return nil
	})
}

func (r *StockMovementRepo) DeleteItems(_ context.Context, movementID int64) (int64, error) {
	var n int64
	err := r.h.do(func(st *state) error {
		for id, it := range st.items {
			if it.MovementID == movementID {
				delete(st.items, id)
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *StockMovementRepo) Delete(_ context.Context, id int64) error {
	return r.h.do(func(st *state) error {
		if _, ok := st.movements[id]; !ok {
			return domain.ErrMovementNotFound
		}
		for _, it := range st.items {
			if it.MovementID == id {
				return domain.ErrConflict
			}
		}
		delete(st.movements, id)
		return nil
	})
}

func (r *StockMovementRepo) CountItemsByProduct(_ context.Context, productID int64) (int64, error) {
	var n int64
	err := r.h.do(func(st *state) error {
		for _, it := range st.items {
			if it.ProductID == productID {
				n++
			}
		}
		return nil
	})
	return n, err
}

func itemsOf(st *state, movementID int64) []entity.StockMovementItem {
	var out []entity.StockMovementItem
	for _, id := range sortedKeys(st.items) {
		if it := st.items[id]; it.MovementID == movementID {
			out = append(out, it)
		}
	}
	return out
}
