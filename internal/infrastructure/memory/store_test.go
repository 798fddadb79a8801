package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/jhoicas/estoque-api/internal/infrastructure/memory"
)

func newProduct(t *testing.T, s *memory.Store, name string) *entity.Product {
	t.Helper()
	p := &entity.Product{Name: name, Price: decimal.NewFromInt(10)}
	require.NoError(t, s.Products().Create(context.Background(), p))
	return p
}

func TestStore_RunRollbackDescartaCambios(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	p := newProduct(t, s, "Tornillo")

	boom := errors.New("boom")
	err := s.Run(ctx, func(movRepo repository.StockMovementRepository, _ repository.StockRepository, _ repository.ProductRepository) error {
		m := &entity.StockMovement{Type: entity.MovementTypeInbound, MovementDate: time.Now()}
		require.NoError(t, movRepo.Create(ctx, m))
		require.NoError(t, movRepo.AddItem(ctx, &entity.StockMovementItem{MovementID: m.ID, ProductID: p.ID, Quantity: 5}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	list, err := s.Movements().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list, "el rollback no debe dejar cabecera ni ítems")
}

func TestStore_RunCommitPublicaCambios(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	p := newProduct(t, s, "Tuerca")

	err := s.Run(ctx, func(movRepo repository.StockMovementRepository, _ repository.StockRepository, _ repository.ProductRepository) error {
		m := &entity.StockMovement{Type: entity.MovementTypeInbound, MovementDate: time.Now()}
		if err := movRepo.Create(ctx, m); err != nil {
			return err
		}
		return movRepo.AddItem(ctx, &entity.StockMovementItem{MovementID: m.ID, ProductID: p.ID, Quantity: 7})
	})
	require.NoError(t, err)

	entries, err := s.Stock().LedgerByProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []entity.LedgerEntry{{Type: entity.MovementTypeInbound, Quantity: 7}}, entries)
}

func TestProductRepo_DeleteConItems(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	p := newProduct(t, s, "Arandela")

	m := &entity.StockMovement{Type: entity.MovementTypeInbound, MovementDate: time.Now()}
	require.NoError(t, s.Movements().Create(ctx, m))
	require.NoError(t, s.Movements().AddItem(ctx, &entity.StockMovementItem{MovementID: m.ID, ProductID: p.ID, Quantity: 1}))

	assert.ErrorIs(t, s.Products().Delete(ctx, p.ID), domain.ErrConflict)
	assert.ErrorIs(t, s.Movements().Delete(ctx, m.ID), domain.ErrConflict, "la cabecera no se borra con ítems")

	n, err := s.Movements().DeleteItems(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	require.NoError(t, s.Movements().Delete(ctx, m.ID))
	require.NoError(t, s.Products().Delete(ctx, p.ID))
	assert.ErrorIs(t, s.Products().Delete(ctx, p.ID), domain.ErrProductNotFound)
}

func TestProductRepo_GetByIDAusente(t *testing.T) {
	s := memory.New()
	p, err := s.Products().GetByID(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestMovementRepo_AddItemProductoInexistente(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	m := &entity.StockMovement{Type: entity.MovementTypeInbound, MovementDate: time.Now()}
	require.NoError(t, s.Movements().Create(ctx, m))

	err := s.Movements().AddItem(ctx, &entity.StockMovementItem{MovementID: m.ID, ProductID: 42, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestPolygonRepo_Paginacion(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	for _, name := range []string{"a", "b", "c", "d"} {
		require.NoError(t, s.Polygons().Create(ctx, &entity.Polygon{Name: name}))
	}

	page, err := s.Polygons().List(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "b", page[0].Name)
	assert.Equal(t, "c", page[1].Name)

	page, err = s.Polygons().List(ctx, 10, 2)
	require.NoError(t, err)
	assert.Empty(t, page)
}
