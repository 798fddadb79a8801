package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo movimientos e ítems sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste la cabecera del movimiento (sin ítems).
func (r *StockMovementRepo) Create(ctx context.Context, movement *entity.StockMovement) error {
	query := `INSERT INTO stock_movements (type, movement_date) VALUES ($1, $2) RETURNING id`
	if err := r.q.QueryRow(ctx, query, string(movement.Type), movement.MovementDate).Scan(&movement.ID); err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// AddItem persiste un ítem del movimiento.
func (r *StockMovementRepo) AddItem(ctx context.Context, item *entity.StockMovementItem) error {
	query := `
		INSERT INTO stock_movement_items (movement_id, product_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, item.MovementID, item.ProductID, item.Quantity).Scan(&item.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrProductNotFound
		}
		if isCheckViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert stock movement item: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento con sus ítems.
func (r *StockMovementRepo) GetByID(ctx context.Context, id int64) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var typ string
	err := r.q.QueryRow(ctx, `SELECT id, type, movement_date FROM stock_movements WHERE id = $1`, id).
		Scan(&m.ID, &typ, &m.MovementDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	m.Type = entity.MovementType(typ)

	items, err := r.itemsFor(ctx, []int64{m.ID})
	if err != nil {
		return nil, err
	}
	m.Items = items[m.ID]
	return &m, nil
}

// List lista todos los movimientos con sus ítems.
func (r *StockMovementRepo) List(ctx context.Context) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, `SELECT id, type, movement_date FROM stock_movements ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	var ids []int64
	for rows.Next() {
		var m entity.StockMovement
		var typ string
		if err := rows.Scan(&m.ID, &typ, &m.MovementDate); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		m.Type = entity.MovementType(typ)
		list = append(list, &m)
		ids = append(ids, m.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return list, nil
	}

	items, err := r.itemsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, m := range list {
		m.Items = items[m.ID]
	}
	return list, nil
}

func (r *StockMovementRepo) itemsFor(ctx context.Context, movementIDs []int64) (map[int64][]entity.StockMovementItem, error) {
	query := `
		SELECT id, movement_id, product_id, quantity
		FROM stock_movement_items
		WHERE movement_id = ANY($1)
		ORDER BY movement_id, id`
	rows, err := r.q.Query(ctx, query, movementIDs)
	if err != nil {
		return nil, fmt.Errorf("list stock movement items: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]entity.StockMovementItem, len(movementIDs))
	for rows.Next() {
		var it entity.StockMovementItem
		if err := rows.Scan(&it.ID, &it.MovementID, &it.ProductID, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan stock movement item: %w", err)
		}
		out[it.MovementID] = append(out[it.MovementID], it)
	}
	return out, rows.Err()
}

// UpdateHeader cambia tipo y fecha; los ítems no se tocan.
func (r *StockMovementRepo) UpdateHeader(ctx context.Context, movement *entity.StockMovement) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE stock_movements SET type = $2, movement_date = $3 WHERE id = $1`,
		movement.ID, string(movement.Type), movement.MovementDate,
	)
	if err != nil {
		return fmt.Errorf("update stock movement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrMovementNotFound
	}
	return nil
}

// DeleteItems elimina los ítems de un movimiento y devuelve cuántos borró.
func (r *StockMovementRepo) DeleteItems(ctx context.Context, movementID int64) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM stock_movement_items WHERE movement_id = $1`, movementID)
	if err != nil {
		return 0, fmt.Errorf("delete stock movement items: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// Delete elimina la cabecera; los ítems deben borrarse antes (DeleteItems).
func (r *StockMovementRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM stock_movements WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete stock movement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrMovementNotFound
	}
	return nil
}

// CountItemsByProduct cuántos ítems referencian al producto.
func (r *StockMovementRepo) CountItemsByProduct(ctx context.Context, productID int64) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM stock_movement_items WHERE product_id = $1`, productID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count stock movement items: %w", err)
	}
	return n, nil
}
