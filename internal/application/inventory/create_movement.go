package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	ledger "github.com/jhoicas/estoque-api/internal/domain/inventory"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// CreateMovement registra un movimiento con sus ítems en una sola transacción:
//  1. inserta la cabecera;
//  2. bloquea (SELECT FOR UPDATE) los productos referenciados, en orden de id;
//  3. toma el stock de cada producto antes del lote y valida todos los ítems;
//  4. si hubo fallas devuelve *domain.StockValidationError y la tx hace Rollback
//     (no queda ni cabecera ni ítems); si no, inserta los ítems y hace Commit.
func (uc *StockMovementUseCase) CreateMovement(ctx context.Context, in dto.CreateStockMovementRequest) (*dto.StockMovementResponse, error) {
	typ, ok := entity.ParseMovementType(in.Type)
	if !ok || in.MovementDate == nil || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	lines := make([]ledger.Line, 0, len(in.Items))
	for _, it := range in.Items {
		if it.ProductID <= 0 || it.Quantity <= 0 || it.Quantity > entity.MaxItemQuantity {
			return nil, domain.ErrInvalidInput
		}
		lines = append(lines, ledger.Line{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	movement := &entity.StockMovement{Type: typ, MovementDate: in.MovementDate.Time}

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := movRepo.Create(ctx, movement); err != nil {
			return err
		}

		snapshot, err := uc.snapshot(ctx, stockRepo, productRepo, ledger.DistinctProducts(lines))
		if err != nil {
			return err
		}

		accepted, failures := ledger.Validate(typ, snapshot, lines, uc.mode)
		if len(failures) > 0 {
			return &domain.StockValidationError{Failures: failures}
		}

		movement.Items = make([]entity.StockMovementItem, 0, len(accepted))
		for _, idx := range accepted {
			item := entity.StockMovementItem{
				MovementID: movement.ID,
				ProductID:  lines[idx].ProductID,
				Quantity:   lines[idx].Quantity,
			}
			if err := movRepo.AddItem(ctx, &item); err != nil {
				return err
			}
			movement.Items = append(movement.Items, item)
		}
		return nil
	})
	if err != nil {
		if sve, ok := IsStockRejection(err); ok {
			uc.log.Warn().
				Str("type", string(typ)).
				Int("items", len(lines)).
				Int("failures", len(sve.Failures)).
				Msg("movimiento rechazado por validación de stock")
			uc.observer.MovementRecorded(string(typ), false, len(lines))
		}
		return nil, err
	}

	uc.log.Info().
		Int64("movement_id", movement.ID).
		Str("type", string(typ)).
		Int("items", len(movement.Items)).
		Msg("movimiento registrado")
	uc.observer.MovementRecorded(string(typ), true, len(movement.Items))
	return toMovementResponse(movement), nil
}

// snapshot bloquea los productos y devuelve su stock actual. Los ids que no existen
// no aparecen en el mapa.
func (uc *StockMovementUseCase) snapshot(
	ctx context.Context,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	ids []int64,
) (map[int64]int64, error) {
	products, err := productRepo.LockForUpdate(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]int64, len(products))
	for _, p := range products {
		entries, err := stockRepo.LedgerByProduct(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		stock, err := ledger.CurrentStock(entries)
		if err != nil {
			return nil, fmt.Errorf("stock del producto %d: %w", p.ID, err)
		}
		out[p.ID] = stock
	}
	return out, nil
}
