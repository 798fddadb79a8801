package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	ledger "github.com/jhoicas/estoque-api/internal/domain/inventory"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

// StockMovementUseCase movimientos de stock y stock derivado por producto.
// Las escrituras corren dentro de TxRunner; las lecturas usan los repositorios directos.
type StockMovementUseCase struct {
	txRunner    TxRunner
	movRepo     repository.StockMovementRepository
	stockRepo   repository.StockRepository
	productRepo repository.ProductRepository
	mode        ledger.CheckMode
	log         *logger.Logger
	observer    MovementObserver
}

// NewStockMovementUseCase construye el caso de uso.
func NewStockMovementUseCase(
	txRunner TxRunner,
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	mode ledger.CheckMode,
	log *logger.Logger,
) *StockMovementUseCase {
	if log == nil {
		log = logger.Nop()
	}
	if mode == "" {
		mode = ledger.CheckPerItem
	}
	return &StockMovementUseCase{
		txRunner:    txRunner,
		movRepo:     movRepo,
		stockRepo:   stockRepo,
		productRepo: productRepo,
		mode:        mode,
		log:         log.Component("stock_ledger"),
		observer:    nopObserver{},
	}
}

// WithObserver registra un observador de altas (p. ej. métricas Prometheus).
func (uc *StockMovementUseCase) WithObserver(o MovementObserver) *StockMovementUseCase {
	if o != nil {
		uc.observer = o
	}
	return uc
}

// Get devuelve un movimiento con sus ítems.
func (uc *StockMovementUseCase) Get(ctx context.Context, id int64) (*dto.StockMovementResponse, error) {
	m, err := uc.movRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrMovementNotFound
	}
	return toMovementResponse(m), nil
}

// List devuelve todos los movimientos con sus ítems.
func (uc *StockMovementUseCase) List(ctx context.Context) ([]dto.StockMovementResponse, error) {
	list, err := uc.movRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *toMovementResponse(m))
	}
	return out, nil
}

// Update cambia solo tipo y fecha del movimiento; los ítems se conservan
// y el stock no se revalida.
func (uc *StockMovementUseCase) Update(ctx context.Context, id int64, in dto.UpdateStockMovementRequest) (*dto.StockMovementResponse, error) {
	typ, ok := entity.ParseMovementType(in.Type)
	if !ok || in.MovementDate == nil {
		return nil, domain.ErrInvalidInput
	}

	var out *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		_ repository.StockRepository,
		_ repository.ProductRepository,
	) error {
		m, err := movRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrMovementNotFound
		}
		m.Type = typ
		m.MovementDate = in.MovementDate.Time
		if err := movRepo.UpdateHeader(ctx, m); err != nil {
			return err
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(out), nil
}

// Delete elimina primero los ítems y luego la cabecera, en una sola transacción.
// Devuelve el movimiento tal como estaba antes de borrarlo.
func (uc *StockMovementUseCase) Delete(ctx context.Context, id int64) (*dto.StockMovementResponse, error) {
	var deleted *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		_ repository.StockRepository,
		_ repository.ProductRepository,
	) error {
		m, err := movRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrMovementNotFound
		}
		if _, err := movRepo.DeleteItems(ctx, id); err != nil {
			return err
		}
		if err := movRepo.Delete(ctx, id); err != nil {
			return err
		}
		deleted = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(deleted), nil
}

// ProductStock calcula el stock derivado (entradas - salidas) de un producto.
func (uc *StockMovementUseCase) ProductStock(ctx context.Context, productID int64) (*dto.ProductStockResponse, error) {
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	entries, err := uc.stockRepo.LedgerByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	stock, err := ledger.CurrentStock(entries)
	if err != nil {
		return nil, fmt.Errorf("stock del producto %d: %w", p.ID, err)
	}
	return &dto.ProductStockResponse{
		ProductID:   p.ID,
		ProductName: p.Name,
		Stock:       stock,
		Description: p.Description,
	}, nil
}

// IsStockRejection indica si err es un rechazo por validación de stock.
func IsStockRejection(err error) (*domain.StockValidationError, bool) {
	var sve *domain.StockValidationError
	if errors.As(err, &sve) {
		return sve, true
	}
	return nil, false
}

func toMovementResponse(m *entity.StockMovement) *dto.StockMovementResponse {
	items := make([]dto.StockMovementItemResponse, 0, len(m.Items))
	for _, it := range m.Items {
		items = append(items, dto.StockMovementItemResponse{
			ID:         it.ID,
			MovementID: it.MovementID,
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
		})
	}
	return &dto.StockMovementResponse{
		ID:           m.ID,
		Type:         string(m.Type),
		MovementDate: m.MovementDate,
		Items:        items,
	}
}
