// Package memory implementa los puertos de persistencia en memoria de proceso.
// Se usa con STORE_DRIVER=memory y en los tests de casos de uso y handlers.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

type state struct {
	products     map[int64]entity.Product
	movements    map[int64]entity.StockMovement // solo cabecera; Items vacío
	items        map[int64]entity.StockMovementItem
	polygons     map[int64]entity.Polygon
	nextProduct  int64
	nextMovement int64
	nextItem     int64
	nextPolygon  int64
}

func newState() *state {
	return &state{
		products:  map[int64]entity.Product{},
		movements: map[int64]entity.StockMovement{},
		items:     map[int64]entity.StockMovementItem{},
		polygons:  map[int64]entity.Polygon{},
	}
}

func (s *state) clone() *state {
	c := *s
	c.products = make(map[int64]entity.Product, len(s.products))
	for k, v := range s.products {
		c.products[k] = v
	}
	c.movements = make(map[int64]entity.StockMovement, len(s.movements))
	for k, v := range s.movements {
		c.movements[k] = v
	}
	c.items = make(map[int64]entity.StockMovementItem, len(s.items))
	for k, v := range s.items {
		c.items[k] = v
	}
	c.polygons = make(map[int64]entity.Polygon, len(s.polygons))
	for k, v := range s.polygons {
		c.polygons[k] = v
	}
	return &c
}

// handle da acceso al estado. Fuera de una transacción mu es el mutex del Store;
// dentro, mu es nil porque Run ya tiene el lock.
type handle struct {
	mu  *sync.Mutex
	st  func() *state
	now func() time.Time
}

func (h handle) do(fn func(st *state) error) error {
	if h.mu != nil {
		h.mu.Lock()
		defer h.mu.Unlock()
	}
	return fn(h.st())
}

// Store almacén en memoria. Las transacciones se serializan con un mutex global y
// trabajan sobre una copia del estado que solo se publica si fn no devuelve error.
type Store struct {
	mu  sync.Mutex
	st  *state
	now func() time.Time
}

// New construye un Store vacío.
func New() *Store {
	return &Store{st: newState(), now: time.Now}
}

func (s *Store) handle() handle {
	return handle{mu: &s.mu, st: func() *state { return s.st }, now: s.now}
}

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{h: s.handle()} }

// Movements repositorio de movimientos fuera de transacción.
func (s *Store) Movements() *StockMovementRepo { return &StockMovementRepo{h: s.handle()} }

// Stock repositorio de lectura de stock fuera de transacción.
func (s *Store) Stock() *StockRepo { return &StockRepo{h: s.handle()} }

// Polygons repositorio de geometrías.
func (s *Store) Polygons() *PolygonRepo { return &PolygonRepo{h: s.handle()} }

// Run ejecuta fn con repositorios sobre una copia del estado; Commit = reemplazar el estado.
func (s *Store) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	h := handle{st: func() *state { return work }, now: s.now}
	if err := fn(&StockMovementRepo{h: h}, &StockRepo{h: h}, &ProductRepo{h: h}); err != nil {
		return err
	}
	s.st = work
	return nil
}
