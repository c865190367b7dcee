package repository

import (
	"context"

	"github.com/ignatzorin/conectar-backend/internal/domain/entity"
	"github.com/ignatzorin/conectar-backend/internal/domain/valueobject"
)

type PersonRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.Person, error)
	// FindByRoleExcluding возвращает людей с нужной ролью, кроме excluded, по возрастанию ID.
	FindByRoleExcluding(ctx context.Context, role valueobject.Role, excluded []int64) ([]*entity.Person, error)
}

type TagRepository interface {
	FindSkillsByIDs(ctx context.Context, ids []int64) ([]entity.Skill, error)
	FindAreasByIDs(ctx context.Context, ids []int64) ([]entity.Area, error)
}
