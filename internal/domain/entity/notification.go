package entity

import "time"

// Tipos de notificación.
const (
	NotificationLowStock           = "low_stock"
	NotificationVaccinationDue     = "vaccination_due"
	NotificationVaccinationOverdue = "vaccination_overdue"
	NotificationTaskDue            = "task_due"
	NotificationTaskOverdue        = "task_overdue"
	NotificationHealthAlert        = "health_alert"
	NotificationSaleCompleted      = "sale_completed"
	NotificationSystem             = "system"
)

// Notification es una notificación visible para el usuario. La crea el motor de alertas
// (con clave de deduplicación) o directamente un evento de dominio (ej. sale_completed).
// Transiciones: no leída → leída vía MarkRead; solo se elimina con Delete explícito.
type Notification struct {
	ID        string
	UserID    string
	Type      string
	Title     string
	Message   string
	Link      string // deep link opcional a la entidad origen
	DedupKey  string // vacía para notificaciones directas sin deduplicación
	IsRead    bool
	CreatedAt time.Time
}
