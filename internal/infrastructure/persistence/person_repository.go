package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ignatzorin/conectar-backend/internal/domain/entity"
	"github.com/ignatzorin/conectar-backend/internal/domain/valueobject"
	"github.com/ignatzorin/conectar-backend/internal/pkg/apperror"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type PersonRepository struct {
	q sqlx.ExtContext
}

func NewPersonRepository(q sqlx.ExtContext) *PersonRepository {
	return &PersonRepository{q: q}
}

type personRow struct {
	ID             int64     `db:"id"`
	Name           string    `db:"name"`
	Email          string    `db:"email"`
	ProfilePhoto   *string   `db:"profile_photo"`
	IsAlly         bool      `db:"is_ally"`
	IsCollaborator bool      `db:"is_collaborator"`
	IsIdealizer    bool      `db:"is_idealizer"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (r personRow) toEntity() *entity.Person {
	return &entity.Person{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		ProfilePhoto: r.ProfilePhoto,
		Roles:        valueobject.NewRoles(r.IsAlly, r.IsCollaborator, r.IsIdealizer),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

const personColumns = `id, name, email, profile_photo, is_ally, is_collaborator, is_idealizer, created_at, updated_at`

func (r *PersonRepository) FindByID(ctx context.Context, id int64) (*entity.Person, error) {
	var row personRow
	query := `SELECT ` + personColumns + ` FROM people WHERE id = $1`
	if err := sqlx.GetContext(ctx, r.q, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrPersonNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить человека")
	}

	people, err := r.withTags(ctx, []personRow{row})
	if err != nil {
		return nil, err
	}
	return people[0], nil
}

func (r *PersonRepository) FindByRoleExcluding(ctx context.Context, role valueobject.Role, excluded []int64) ([]*entity.Person, error) {
	column, err := roleColumn(role)
	if err != nil {
		return nil, err
	}
	if excluded == nil {
		excluded = []int64{}
	}

	var rows []personRow
	query := `SELECT ` + personColumns + ` FROM people WHERE ` + column + ` AND NOT (id = ANY($1)) ORDER BY id`
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, pq.Array(excluded)); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить кандидатов")
	}
	return r.withTags(ctx, rows)
}

func (r *PersonRepository) withTags(ctx context.Context, rows []personRow) ([]*entity.Person, error) {
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	skills, err := loadSkills(ctx, r.q, personTags, ids)
	if err != nil {
		return nil, err
	}
	areas, err := loadAreas(ctx, r.q, personTags, ids)
	if err != nil {
		return nil, err
	}

	people := make([]*entity.Person, 0, len(rows))
	for _, row := range rows {
		p := row.toEntity()
		p.Skills = skills[p.ID]
		p.Areas = areas[p.ID]
		people = append(people, p)
	}
	return people, nil
}

func roleColumn(role valueobject.Role) (string, error) {
	switch role {
	case valueobject.RoleAlly:
		return "is_ally", nil
	case valueobject.RoleCollaborator:
		return "is_collaborator", nil
	case valueobject.RoleIdealizer:
		return "is_idealizer", nil
	}
	return "", apperror.New(apperror.ErrCodeValidation, "некорректная роль")
}
