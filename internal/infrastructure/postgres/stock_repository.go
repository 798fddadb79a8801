package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// LedgerByProduct suma las cantidades de los ítems del producto agrupadas por tipo de movimiento.
func (r *StockRepo) LedgerByProduct(ctx context.Context, productID int64) ([]entity.LedgerEntry, error) {
	query := `
		SELECT m.type, COALESCE(SUM(i.quantity), 0)::bigint
		FROM stock_movement_items i
		JOIN stock_movements m ON m.id = i.movement_id
		WHERE i.product_id = $1
		GROUP BY m.type`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		if isNumericOverflow(err) {
			return nil, domain.ErrStockOverflow
		}
		return nil, fmt.Errorf("ledger by product: %w", err)
	}
	defer rows.Close()

	var entries []entity.LedgerEntry
	for rows.Next() {
		var typ string
		var qty int64
		if err := rows.Scan(&typ, &qty); err != nil {
			if isNumericOverflow(err) {
				return nil, domain.ErrStockOverflow
			}
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		entries = append(entries, entity.LedgerEntry{Type: entity.MovementType(typ), Quantity: qty})
	}
	if err := rows.Err(); err != nil {
		if isNumericOverflow(err) {
			return nil, domain.ErrStockOverflow
		}
		return nil, fmt.Errorf("ledger by product: %w", err)
	}
	return entries, nil
}
