package repository

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// StockRepository lectura del libro de movimientos de un producto.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// LedgerByProduct devuelve las cantidades de los ítems del producto junto con el tipo
	// del movimiento padre (pueden venir ya agregadas por tipo).
	LedgerByProduct(ctx context.Context, productID int64) ([]entity.LedgerEntry, error)
}
