package repository

import (
	"context"

	"github.com/jhoicas/Avicola-api/internal/domain/entity"
)

// FarmTaskRepository puerto de solo lectura sobre tareas pendientes con fecha límite.
type FarmTaskRepository interface {
	ListPendingByUser(ctx context.Context, userID string) ([]*entity.FarmTask, error)
}
