package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Avicola-api/internal/domain"
	"github.com/jhoicas/Avicola-api/internal/domain/entity"
	"github.com/jhoicas/Avicola-api/internal/domain/ledger"
	"github.com/jhoicas/Avicola-api/internal/domain/repository"
	"github.com/jhoicas/Avicola-api/pkg/metrics"
)

// RegisterMovementUseCase es el único camino de escritura al ledger: valida el movimiento,
// bloquea la fila del ítem (SELECT FOR UPDATE), encadena PreviousQuantity → NewQuantity
// y compromete movimiento + proyección en una misma transacción.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	movRepo  repository.StockMovementRepository // lecturas fuera de tx
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner, movRepo repository.StockMovementRepository) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, movRepo: movRepo}
}

// MovementInput entrada para registrar un movimiento de stock.
// Para in/out la cantidad es la magnitud (el signo lo deriva el tipo);
// adjustment y transfer llevan el signo explícito del caller.
type MovementInput struct {
	UserID   string
	ItemID   string
	Type     string
	Quantity decimal.Decimal
	Reason   string
	RefType  string
	RefID    string
	UnitCost *decimal.Decimal
	Supplier string
	Notes    string
	Date     *time.Time // fecha del negocio; nil = ahora. Nunca ordena la cadena.
}

// RegisterMovement valida, inicia la transacción, bloquea la fila del ítem y aplica el
// movimiento. Un resultado negativo se rechaza con ErrInsufficientStock sin dejar rastro.
// No emite notificaciones: el escáner de stock bajo detecta la condición después
// (mantiene el camino de escritura libre de fan-out de I/O).
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInput) (*entity.StockMovement, error) {
	if input.UserID == "" || input.ItemID == "" {
		metrics.MovementsRejected.WithLabelValues("validation").Inc()
		return nil, domain.ErrInvalidInput
	}
	if err := ledger.ValidateMovement(input.Type, input.Reason, input.Quantity); err != nil {
		metrics.MovementsRejected.WithLabelValues("validation").Inc()
		return nil, err
	}
	delta, err := ledger.SignedDelta(input.Type, input.Quantity)
	if err != nil {
		metrics.MovementsRejected.WithLabelValues("validation").Inc()
		return nil, err
	}

	now := time.Now()
	date := now
	if input.Date != nil {
		date = *input.Date
	}

	var created *entity.StockMovement
	err = uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		movRepo repository.StockMovementRepository,
	) error {
		// Bloquea la fila del ítem: serializa los movimientos concurrentes del mismo ítem.
		item, err := itemRepo.GetForUpdate(ctx, input.ItemID)
		if err != nil {
			return err
		}
		if item == nil || item.UserID != input.UserID || item.IsDeleted() {
			return domain.ErrNotFound
		}

		previous := item.Quantity
		next, err := ledger.NextQuantity(previous, delta)
		if err != nil {
			return err
		}

		var totalCost *decimal.Decimal
		if input.UnitCost != nil {
			t := input.UnitCost.Mul(input.Quantity.Abs())
			totalCost = &t
		}

		mov := &entity.StockMovement{
			ID:               uuid.New().String(),
			UserID:           input.UserID,
			ItemID:           input.ItemID,
			Type:             input.Type,
			Quantity:         input.Quantity,
			PreviousQuantity: previous,
			NewQuantity:      next,
			Reason:           input.Reason,
			RefType:          input.RefType,
			RefID:            input.RefID,
			UnitCost:         input.UnitCost,
			TotalCost:        totalCost,
			Supplier:         input.Supplier,
			Notes:            input.Notes,
			Date:             date,
			CreatedAt:        now,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrLedgerWrite, err)
		}
		if err := itemRepo.UpdateQuantity(ctx, item.ID, next, now); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrLedgerWrite, err)
		}
		created = mov
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInsufficientStock):
			metrics.MovementsRejected.WithLabelValues("insufficient_stock").Inc()
		case errors.Is(err, domain.ErrNotFound):
			metrics.MovementsRejected.WithLabelValues("not_found").Inc()
		case errors.Is(err, domain.ErrLedgerWrite):
			// ya envuelto por el callback
		default:
			// fallo de begin/commit: la tx quedó sin efecto, el caller puede reintentar
			err = fmt.Errorf("%w: %v", domain.ErrLedgerWrite, err)
		}
		return nil, err
	}

	metrics.MovementsRecorded.WithLabelValues(input.Type).Inc()
	return created, nil
}

// ListMovements lista el ledger del usuario (orden de inserción descendente).
func (uc *RegisterMovementUseCase) ListMovements(ctx context.Context, userID string, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return uc.movRepo.ListByUser(ctx, userID, f)
}
