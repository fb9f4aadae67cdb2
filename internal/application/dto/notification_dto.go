package dto

import (
	"time"

	"github.com/jhoicas/Avicola-api/internal/domain/entity"
)

// NotificationResponse representación HTTP de una notificación.
type NotificationResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Link      string    `json:"link,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// FromNotification convierte la entidad a su representación HTTP.
func FromNotification(n *entity.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Link:      n.Link,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

// UnreadCountResponse respuesta de GET /api/notifications/unread-count.
type UnreadCountResponse struct {
	Count int `json:"count"`
}

// GenerateAlertsResponse respuesta de POST /api/alerts/generate.
type GenerateAlertsResponse struct {
	Created       int                    `json:"created"`
	Notifications []NotificationResponse `json:"notifications"`
}
