package repository

import (
	"context"

	"github.com/jhoicas/Avicola-api/internal/domain/entity"
)

// NotificationRepository define el puerto de persistencia para Notification.
// Todas las operaciones de mutación están acotadas al usuario dueño: actuar sobre
// la notificación de otro usuario se comporta como inexistente (sin fuga de existencia).
type NotificationRepository interface {
	// Create inserta la notificación. Si choca con el índice único parcial de
	// deduplicación (user_id, dedup_key no leída) devuelve domain.ErrDuplicate.
	Create(ctx context.Context, n *entity.Notification) error
	// ActiveExists verifica si hay una notificación "activa" con la misma clave:
	// cualquier fila si includeRead, solo filas no leídas en caso contrario.
	ActiveExists(ctx context.Context, userID, dedupKey string, includeRead bool) (bool, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, userID, id string) (bool, error)
	MarkAllRead(ctx context.Context, userID string) (int, error)
	Delete(ctx context.Context, userID, id string) (bool, error)
}
