package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ignatzorin/conectar-backend/internal/domain/entity"
	"github.com/ignatzorin/conectar-backend/internal/pkg/apperror"
	"github.com/jmoiron/sqlx"
)

type ProjectRepository struct {
	q sqlx.ExtContext
}

func NewProjectRepository(q sqlx.ExtContext) *ProjectRepository {
	return &ProjectRepository{q: q}
}

type projectRow struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Objective   string    `db:"objective"`
	Visible     bool      `db:"visible"`
	OwnerID     int64     `db:"owner_id"`
	CoverImage  *string   `db:"cover_image"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r projectRow) toEntity() *entity.Project {
	return &entity.Project{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Objective:   r.Objective,
		Visible:     r.Visible,
		OwnerID:     r.OwnerID,
		CoverImage:  r.CoverImage,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

const projectColumns = `p.id, p.name, p.description, p.objective, p.visible, p.owner_id, p.cover_image, p.created_at, p.updated_at`

func (r *ProjectRepository) FindByID(ctx context.Context, id int64) (*entity.Project, error) {
	var row projectRow
	query := `SELECT ` + projectColumns + ` FROM projects p WHERE p.id = $1`
	if err := sqlx.GetContext(ctx, r.q, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrProjectNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить проект")
	}

	projects, err := r.withTags(ctx, []projectRow{row})
	if err != nil {
		return nil, err
	}
	return projects[0], nil
}

func (r *ProjectRepository) ListWithoutRequirements(ctx context.Context) ([]*entity.Project, error) {
	var rows []projectRow
	query := `
		SELECT ` + projectColumns + `
		FROM projects p
		WHERE NOT EXISTS (SELECT 1 FROM project_skills ps WHERE ps.project_id = p.id)
		  AND NOT EXISTS (SELECT 1 FROM project_areas pa WHERE pa.project_id = p.id)
		ORDER BY p.id
	`
	if err := sqlx.SelectContext(ctx, r.q, &rows, query); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить проекты")
	}

	projects := make([]*entity.Project, 0, len(rows))
	for _, row := range rows {
		projects = append(projects, row.toEntity())
	}
	return projects, nil
}

func (r *ProjectRepository) withTags(ctx context.Context, rows []projectRow) ([]*entity.Project, error) {
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	skills, err := loadSkills(ctx, r.q, projectTags, ids)
	if err != nil {
		return nil, err
	}
	areas, err := loadAreas(ctx, r.q, projectTags, ids)
	if err != nil {
		return nil, err
	}

	projects := make([]*entity.Project, 0, len(rows))
	for _, row := range rows {
		p := row.toEntity()
		p.Skills = skills[p.ID]
		p.Areas = areas[p.ID]
		projects = append(projects, p)
	}
	return projects, nil
}

type AgreementTypeRepository struct {
	q sqlx.ExtContext
}

func NewAgreementTypeRepository(q sqlx.ExtContext) *AgreementTypeRepository {
	return &AgreementTypeRepository{q: q}
}

func (r *AgreementTypeRepository) FindByID(ctx context.Context, id int64) (*entity.AgreementType, error) {
	var row struct {
		ID          int64  `db:"id"`
		Description string `db:"description"`
	}
	query := `SELECT id, description FROM agreement_types WHERE id = $1`
	if err := sqlx.GetContext(ctx, r.q, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrAgreementTypeNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить тип соглашения")
	}
	return &entity.AgreementType{ID: row.ID, Description: row.Description}, nil
}
