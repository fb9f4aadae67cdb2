package repository

import (
	"context"

	"github.com/jhoicas/Avicola-api/internal/domain/entity"
)

// VaccinationRepository puerto de solo lectura sobre vacunaciones programadas.
// El CRUD de vacunaciones pertenece al módulo de lotes; el motor de alertas solo consulta.
type VaccinationRepository interface {
	ListScheduledByUser(ctx context.Context, userID string) ([]*entity.Vaccination, error)
}
