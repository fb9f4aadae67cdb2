package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Avicola-api/internal/domain"
	"github.com/jhoicas/Avicola-api/internal/domain/entity"
	"github.com/jhoicas/Avicola-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo implementación del puerto NotificationRepository sobre PostgreSQL.
// La deduplicación se respalda con un índice único parcial:
//
//	CREATE UNIQUE INDEX notifications_dedup_unread
//	ON notifications (user_id, dedup_key) WHERE NOT is_read AND dedup_key <> '';
//
// Los barridos concurrentes que pierdan la carrera reciben 23505 → domain.ErrDuplicate.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// Create inserta la notificación; choque con el índice de deduplicación → ErrDuplicate.
func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, type, title, message, link, dedup_key, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, false, $8)`
	_, err := r.q.Exec(ctx, query,
		n.ID, n.UserID, n.Type, n.Title, n.Message, n.Link, n.DedupKey, n.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// ActiveExists verifica si existe una notificación con la misma clave de deduplicación.
// includeRead=true cuenta también las leídas (tipos con scope diario, donde la clave ya
// incluye el día); includeRead=false solo cuenta no leídas (low_stock).
func (r *NotificationRepo) ActiveExists(ctx context.Context, userID, dedupKey string, includeRead bool) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM notifications
			WHERE user_id = $1 AND dedup_key = $2 AND (NOT is_read OR $3)
		)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, userID, dedupKey, includeRead).Scan(&exists); err != nil {
		return false, fmt.Errorf("check notification dedup: %w", err)
	}
	return exists, nil
}

// ListByUser lista notificaciones del usuario, más recientes primero.
func (r *NotificationRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, error) {
	query := `
		SELECT id, user_id, type, title, message, link, dedup_key, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()
	var list []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.Link, &n.DedupKey, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// CountUnread cuenta las no leídas del usuario.
func (r *NotificationRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT is_read`,
		userID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return n, nil
}

// MarkRead marca una notificación como leída. Devuelve false si no existe o no es del usuario.
func (r *NotificationRepo) MarkRead(ctx context.Context, userID, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("mark notification read: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// MarkAllRead marca todas las no leídas del usuario; devuelve cuántas cambió.
func (r *NotificationRepo) MarkAllRead(ctx context.Context, userID string) (int, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE notifications SET is_read = true WHERE user_id = $1 AND NOT is_read`,
		userID,
	)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	return int(cmd.RowsAffected()), nil
}

// Delete elimina una notificación. Devuelve false si no existe o no es del usuario.
func (r *NotificationRepo) Delete(ctx context.Context, userID, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`DELETE FROM notifications WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("delete notification: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}
