package repository

import (
	"context"

	"github.com/jhoicas/Avicola-api/internal/domain/entity"
)

// UserRepository puerto mínimo sobre usuarios: identidad y barrido de alertas.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// ListIDs devuelve los IDs de todos los usuarios, para el barrido periódico de alertas.
	ListIDs(ctx context.Context) ([]string, error)
}
