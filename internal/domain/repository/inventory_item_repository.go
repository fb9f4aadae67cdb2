package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Avicola-api/internal/domain/entity"
)

// InventoryItemRepository define el puerto de persistencia para InventoryItem (DIP).
// GetForUpdate bloquea la fila del ítem (SELECT FOR UPDATE): es el punto de
// serialización por ítem del motor de movimientos.
type InventoryItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error)
	Update(ctx context.Context, item *entity.InventoryItem) error
	UpdateQuantity(ctx context.Context, id string, quantity decimal.Decimal, updatedAt time.Time) error
	SoftDelete(ctx context.Context, id string, at time.Time) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.InventoryItem, error)
	ListBelowMinimum(ctx context.Context, userID string) ([]*entity.InventoryItem, error)
}
