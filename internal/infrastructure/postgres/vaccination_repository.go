package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Avicola-api/internal/domain/entity"
	"github.com/jhoicas/Avicola-api/internal/domain/repository"
)

var _ repository.VaccinationRepository = (*VaccinationRepo)(nil)

// VaccinationRepo lectura de vacunaciones programadas para el escáner de alertas.
type VaccinationRepo struct {
	q Querier
}

// NewVaccinationRepository construye el adaptador.
func NewVaccinationRepository(q Querier) *VaccinationRepo {
	return &VaccinationRepo{q: q}
}

// ListScheduledByUser lista las vacunaciones en estado scheduled del usuario.
func (r *VaccinationRepo) ListScheduledByUser(ctx context.Context, userID string) ([]*entity.Vaccination, error) {
	query := `
		SELECT id, user_id, flock_id, vaccine_name, scheduled_date, status, created_at
		FROM vaccinations
		WHERE user_id = $1 AND status = $2
		ORDER BY scheduled_date ASC`
	rows, err := r.q.Query(ctx, query, userID, entity.VaccinationStatusScheduled)
	if err != nil {
		return nil, fmt.Errorf("list scheduled vaccinations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Vaccination
	for rows.Next() {
		var v entity.Vaccination
		if err := rows.Scan(&v.ID, &v.UserID, &v.FlockID, &v.VaccineName, &v.ScheduledDate, &v.Status, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan vaccination: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}
