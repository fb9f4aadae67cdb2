package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Avicola-api/internal/domain/entity"
)

// MovementFilter filtros para listar movimientos del ledger.
type MovementFilter struct {
	ItemID string
	Type   string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// StockMovementRepository define el puerto de persistencia del ledger.
// Solo hay Create y lecturas: los movimientos son inmutables (auditoría).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	LastByItem(ctx context.Context, itemID string) (*entity.StockMovement, error)
	ListByUser(ctx context.Context, userID string, f MovementFilter) ([]*entity.StockMovement, error)
}
