package inventory

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// MovementObserver recibe el resultado de cada alta de movimiento (métricas).
type MovementObserver interface {
	MovementRecorded(movementType string, accepted bool, items int)
}

type nopObserver struct{}

func (nopObserver) MovementRecorded(string, bool, int) {}
