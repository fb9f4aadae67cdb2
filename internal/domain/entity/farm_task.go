package entity

import "time"

// Estados de una tarea de la granja.
const (
	TaskStatusPending   = "pending"
	TaskStatusDone      = "done"
	TaskStatusCancelled = "cancelled"
)

// FarmTask representa una tarea con fecha límite (limpieza, mantenimiento, pedidos).
// Solo lectura desde el motor de alertas.
type FarmTask struct {
	ID        string
	UserID    string
	Title     string
	DueDate   time.Time
	Status    string
	CreatedAt time.Time
}
