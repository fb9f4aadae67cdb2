package inventory

import (
	"context"

	"github.com/jhoicas/Avicola-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza atomicidad para el par movimiento + proyección:
// ambas escrituras se comprometen juntas o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.InventoryItemRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
