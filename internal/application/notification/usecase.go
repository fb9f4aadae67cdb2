package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Avicola-api/internal/domain"
	"github.com/jhoicas/Avicola-api/internal/domain/entity"
	"github.com/jhoicas/Avicola-api/internal/domain/repository"
)

// UnreadCountCache caché del contador de notificaciones no leídas (el endpoint que el
// cliente consulta cada 5 minutos). Un fallo del caché nunca es fatal: la implementación
// responde "miss" y se consulta la BD.
type UnreadCountCache interface {
	Get(ctx context.Context, userID string) (int, bool)
	Set(ctx context.Context, userID string, count int)
	Invalidate(ctx context.Context, userID string)
}

// UseCase operaciones sobre el almacén de notificaciones, siempre acotadas al usuario dueño.
// Actuar sobre la notificación de otro usuario devuelve ErrNotFound, nunca Forbidden
// (no se filtra la existencia del recurso).
type UseCase struct {
	repo  repository.NotificationRepository
	cache UnreadCountCache // puede ser nil (sin Redis configurado)
}

// NewUseCase construye el caso de uso. cache puede ser nil.
func NewUseCase(repo repository.NotificationRepository, cache UnreadCountCache) *UseCase {
	return &UseCase{repo: repo, cache: cache}
}

// List lista las notificaciones del usuario, más recientes primero.
func (uc *UseCase) List(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return uc.repo.ListByUser(ctx, userID, limit, offset)
}

// UnreadCount devuelve el número de no leídas, con caché de paso corto.
func (uc *UseCase) UnreadCount(ctx context.Context, userID string) (int, error) {
	if uc.cache != nil {
		if n, ok := uc.cache.Get(ctx, userID); ok {
			return n, nil
		}
	}
	n, err := uc.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, err
	}
	if uc.cache != nil {
		uc.cache.Set(ctx, userID, n)
	}
	return n, nil
}

// MarkRead marca una notificación como leída. Inexistente o de otro usuario → ErrNotFound.
func (uc *UseCase) MarkRead(ctx context.Context, userID, id string) error {
	ok, err := uc.repo.MarkRead(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	uc.invalidate(ctx, userID)
	return nil
}

// MarkAllRead marca todas las notificaciones del usuario como leídas.
func (uc *UseCase) MarkAllRead(ctx context.Context, userID string) (int, error) {
	n, err := uc.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		uc.invalidate(ctx, userID)
	}
	return n, nil
}

// Delete elimina una notificación. Inexistente o de otro usuario → ErrNotFound.
func (uc *UseCase) Delete(ctx context.Context, userID, id string) error {
	ok, err := uc.repo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	uc.invalidate(ctx, userID)
	return nil
}

// Create crea una notificación directa de un evento de dominio (sin deduplicación).
func (uc *UseCase) Create(ctx context.Context, n *entity.Notification) error {
	if n.UserID == "" || n.Type == "" || n.Title == "" {
		return domain.ErrInvalidInput
	}
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	if err := uc.repo.Create(ctx, n); err != nil {
		return err
	}
	uc.invalidate(ctx, n.UserID)
	return nil
}

// NotifySaleCompleted notificación directa al completar una venta
// (el módulo de ventas descuenta stock vía movimiento reason=sale y llama aquí).
func (uc *UseCase) NotifySaleCompleted(ctx context.Context, userID, saleID string, total decimal.Decimal) error {
	return uc.Create(ctx, &entity.Notification{
		UserID:  userID,
		Type:    entity.NotificationSaleCompleted,
		Title:   "Venta completada",
		Message: fmt.Sprintf("Venta registrada por un total de %s", total.StringFixed(2)),
		Link:    "/sales/" + saleID,
	})
}

func (uc *UseCase) invalidate(ctx context.Context, userID string) {
	if uc.cache != nil {
		uc.cache.Invalidate(ctx, userID)
	}
}
