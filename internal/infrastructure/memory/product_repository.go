package memory

import (
	"context"
	"slices"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria.
type ProductRepo struct {
	h handle
}

func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	return r.h.do(func(st *state) error {
		st.nextProduct++
		product.ID = st.nextProduct
		product.CreatedAt = r.h.now().UTC()
		st.products[product.ID] = *product
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	var out *entity.Product
	err := r.h.do(func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.h.do(func(st *state) error {
		for _, id := range sortedKeys(st.products) {
			p := st.products[id]
			out = append(out, &p)
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	return r.h.do(func(st *state) error {
		cur, ok := st.products[product.ID]
		if !ok {
			return domain.ErrProductNotFound
		}
		cur.Name = product.Name
		cur.Description = product.Description
		cur.Price = product.Price
		st.products[product.ID] = cur
		return nil
	})
}

// Delete falla con ErrProductInUse si algún ítem referencia el producto.
func (r *ProductRepo) Delete(_ context.Context, id int64) error {
	return r.h.do(func(st *state) error {
		if _, ok := st.products[id]; !ok {
			return domain.ErrProductNotFound
		}
		for _, it := range st.items {
			if it.ProductID == id {
				return domain.ErrProductInUse
			}
		}
		delete(st.products, id)
		return nil
	})
}

// LockForUpdate en memoria es una lectura: Run ya serializa las transacciones.
func (r *ProductRepo) LockForUpdate(_ context.Context, ids []int64) ([]*entity.Product, error) {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	var out []*entity.Product
	err := r.h.do(func(st *state) error {
		for _, id := range slices.Compact(sorted) {
			if p, ok := st.products[id]; ok {
				out = append(out, &p)
			}
		}
		return nil
	})
	return out, err
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
