package repository

import (
	"context"

	"github.com/ignatzorin/conectar-backend/internal/domain/entity"
)

type ProjectRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.Project, error)
	ListWithoutRequirements(ctx context.Context) ([]*entity.Project, error)
}

type AgreementTypeRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.AgreementType, error)
}
