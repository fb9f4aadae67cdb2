package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Avicola-api/internal/domain/entity"
	"github.com/jhoicas/Avicola-api/internal/domain/repository"
)

var _ repository.FarmTaskRepository = (*FarmTaskRepo)(nil)

// FarmTaskRepo lectura de tareas pendientes para el escáner de alertas.
type FarmTaskRepo struct {
	q Querier
}

// NewFarmTaskRepository construye el adaptador.
func NewFarmTaskRepository(q Querier) *FarmTaskRepo {
	return &FarmTaskRepo{q: q}
}

// ListPendingByUser lista las tareas pendientes con fecha límite del usuario.
func (r *FarmTaskRepo) ListPendingByUser(ctx context.Context, userID string) ([]*entity.FarmTask, error) {
	query := `
		SELECT id, user_id, title, due_date, status, created_at
		FROM farm_tasks
		WHERE user_id = $1 AND status = $2
		ORDER BY due_date ASC`
	rows, err := r.q.Query(ctx, query, userID, entity.TaskStatusPending)
	if err != nil {
		return nil, fmt.Errorf("list pending tasks: %w", err)
	}
	defer rows.Close()
	var list []*entity.FarmTask
	for rows.Next() {
		var t entity.FarmTask
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.DueDate, &t.Status, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan farm task: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
