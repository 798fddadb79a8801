package inventory_test

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/inventory"
)

func TestCurrentStock_SinMovimientosEsCero(t *testing.T) {
	stock, err := inventory.CurrentStock(nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stock)
}

func TestCurrentStock_EntradasMenosSalidas(t *testing.T) {
	entries := []entity.LedgerEntry{
		{Type: entity.MovementTypeInbound, Quantity: 100},
		{Type: entity.MovementTypeOutbound, Quantity: 60},
		{Type: entity.MovementTypeInbound, Quantity: 5},
	}
	stock, err := inventory.CurrentStock(entries)
	require.NoError(t, err)
	assert.Equal(t, int64(45), stock)
}

func TestCurrentStock_DesbordeDevuelveError(t *testing.T) {
	entries := []entity.LedgerEntry{
		{Type: entity.MovementTypeInbound, Quantity: math.MaxInt64},
		{Type: entity.MovementTypeInbound, Quantity: math.MaxInt64},
	}
	_, err := inventory.CurrentStock(entries)
	assert.ErrorIs(t, err, domain.ErrStockOverflow)

	entries = []entity.LedgerEntry{
		{Type: entity.MovementTypeInbound, Quantity: math.MaxInt64},
		{Type: entity.MovementTypeOutbound, Quantity: math.MaxInt64},
	}
	stock, err := inventory.CurrentStock(entries)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stock)
}

func TestProperty_StockEsEntradasMenosSalidas(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("stock = Σ entradas − Σ salidas", prop.ForAll(
		func(ins, outs []int64) bool {
			var entries []entity.LedgerEntry
			var want int64
			for _, q := range ins {
				entries = append(entries, entity.LedgerEntry{Type: entity.MovementTypeInbound, Quantity: q})
				want += q
			}
			for _, q := range outs {
				entries = append(entries, entity.LedgerEntry{Type: entity.MovementTypeOutbound, Quantity: q})
				want -= q
			}
			got, err := inventory.CurrentStock(entries)
			return err == nil && got == want
		},
		gen.SliceOf(gen.Int64Range(1, 10_000)),
		gen.SliceOf(gen.Int64Range(1, 10_000)),
	))

	properties.Property("el orden de los ítems no altera el stock", prop.ForAll(
		func(qs []int64) bool {
			var fwd, rev []entity.LedgerEntry
			for i, q := range qs {
				typ := entity.MovementTypeInbound
				if i%2 == 1 {
					typ = entity.MovementTypeOutbound
				}
				fwd = append(fwd, entity.LedgerEntry{Type: typ, Quantity: q})
			}
			for i := len(fwd) - 1; i >= 0; i-- {
				rev = append(rev, fwd[i])
			}
			a, errA := inventory.CurrentStock(fwd)
			b, errB := inventory.CurrentStock(rev)
			return errA == nil && errB == nil && a == b
		},
		gen.SliceOf(gen.Int64Range(1, 1_000)),
	))

	properties.TestingRun(t)
}

func TestValidate_SalidaMayorAlStockSeRechaza(t *testing.T) {
	snapshot := map[int64]int64{1: 100}
	accepted, failures := inventory.Validate(entity.MovementTypeOutbound, snapshot,
		[]inventory.Line{{ProductID: 1, Quantity: 150}}, inventory.CheckPerItem)

	assert.Empty(t, accepted)
	require.Len(t, failures, 1)
	assert.Equal(t, int64(1), failures[0].ProductID)
	assert.Equal(t, int64(100), failures[0].Available)
	assert.Equal(t, int64(150), failures[0].Requested)
	assert.False(t, failures[0].NotFound)
	assert.Contains(t, failures[0].Message(), "disponible: 100")
}

// Cada ítem se compara contra el stock previo al lote: 60 + 60 > 100 pasa igual.
func TestValidate_PerItemNoAcumula(t *testing.T) {
	snapshot := map[int64]int64{1: 100}
	lines := []inventory.Line{{ProductID: 1, Quantity: 60}, {ProductID: 1, Quantity: 60}}

	accepted, failures := inventory.Validate(entity.MovementTypeOutbound, snapshot, lines, inventory.CheckPerItem)

	assert.Equal(t, []int{0, 1}, accepted)
	assert.Empty(t, failures)
}

func TestValidate_RunningTotalAcumula(t *testing.T) {
	snapshot := map[int64]int64{1: 100}
	lines := []inventory.Line{{ProductID: 1, Quantity: 60}, {ProductID: 1, Quantity: 60}}

	accepted, failures := inventory.Validate(entity.MovementTypeOutbound, snapshot, lines, inventory.CheckRunningTotal)

	assert.Equal(t, []int{0}, accepted)
	require.Len(t, failures, 1)
	assert.Equal(t, int64(40), failures[0].Available)
	assert.Equal(t, int64(60), failures[0].Requested)
}

func TestValidate_ProductoInexistenteSeAgregaComoFalla(t *testing.T) {
	snapshot := map[int64]int64{1: 10}
	lines := []inventory.Line{{ProductID: 9, Quantity: 1}, {ProductID: 1, Quantity: 20}, {ProductID: 1, Quantity: 5}}

	accepted, failures := inventory.Validate(entity.MovementTypeOutbound, snapshot, lines, inventory.CheckPerItem)

	assert.Equal(t, []int{2}, accepted)
	require.Len(t, failures, 2)
	assert.True(t, failures[0].NotFound)
	assert.Equal(t, "producto 9: no encontrado", failures[0].Message())
	assert.Equal(t, int64(1), failures[1].ProductID)
}

func TestValidate_EntradaSoloVerificaExistencia(t *testing.T) {
	snapshot := map[int64]int64{1: 0}
	lines := []inventory.Line{{ProductID: 1, Quantity: 500}, {ProductID: 2, Quantity: 1}}

	accepted, failures := inventory.Validate(entity.MovementTypeInbound, snapshot, lines, inventory.CheckRunningTotal)

	assert.Equal(t, []int{0}, accepted)
	require.Len(t, failures, 1)
	assert.True(t, failures[0].NotFound)
}

func TestValidate_EntradaQueDesbordaSeRechaza(t *testing.T) {
	snapshot := map[int64]int64{1: math.MaxInt64 - 10}
	lines := []inventory.Line{{ProductID: 1, Quantity: 5}, {ProductID: 1, Quantity: 6}}

	accepted, failures := inventory.Validate(entity.MovementTypeInbound, snapshot, lines, inventory.CheckPerItem)

	assert.Equal(t, []int{0}, accepted)
	require.Len(t, failures, 1)
	assert.True(t, failures[0].Overflow)
	assert.Equal(t, int64(math.MaxInt64-5), failures[0].Available)
	assert.Contains(t, failures[0].Message(), "excede el stock máximo")
}

func TestDistinctProducts_OrdenAscendenteSinDuplicados(t *testing.T) {
	lines := []inventory.Line{{ProductID: 7}, {ProductID: 2}, {ProductID: 7}, {ProductID: 3}}
	assert.Equal(t, []int64{2, 3, 7}, inventory.DistinctProducts(lines))
}

func TestParseCheckMode(t *testing.T) {
	m, err := inventory.ParseCheckMode("")
	require.NoError(t, err)
	assert.Equal(t, inventory.CheckPerItem, m)

	m, err = inventory.ParseCheckMode("running_total")
	require.NoError(t, err)
	assert.Equal(t, inventory.CheckRunningTotal, m)

	_, err = inventory.ParseCheckMode("otro")
	assert.Error(t, err)
}
