package persistence

import (
	"context"
	"fmt"

	"github.com/ignatzorin/conectar-backend/internal/domain/entity"
	"github.com/ignatzorin/conectar-backend/internal/pkg/apperror"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type TagRepository struct {
	q sqlx.ExtContext
}

func NewTagRepository(q sqlx.ExtContext) *TagRepository {
	return &TagRepository{q: q}
}

type skillRow struct {
	OwnerID int64  `db:"owner_id"`
	ID      int64  `db:"id"`
	Name    string `db:"name"`
}

type areaRow struct {
	OwnerID     int64  `db:"owner_id"`
	ID          int64  `db:"id"`
	Description string `db:"description"`
	ParentID    *int64 `db:"parent_id"`
}

func (r *TagRepository) FindSkillsByIDs(ctx context.Context, ids []int64) ([]entity.Skill, error) {
	var rows []skillRow
	query := `SELECT 0 AS owner_id, id, name FROM skills WHERE id = ANY($1) ORDER BY id`
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, pq.Array(ids)); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить навыки")
	}
	skills := make([]entity.Skill, 0, len(rows))
	for _, row := range rows {
		skills = append(skills, entity.Skill{ID: row.ID, Name: row.Name})
	}
	return skills, nil
}

func (r *TagRepository) FindAreasByIDs(ctx context.Context, ids []int64) ([]entity.Area, error) {
	var rows []areaRow
	query := `SELECT 0 AS owner_id, id, description, parent_id FROM areas WHERE id = ANY($1) ORDER BY id`
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, pq.Array(ids)); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить области")
	}
	areas := make([]entity.Area, 0, len(rows))
	for _, row := range rows {
		areas = append(areas, entity.Area{ID: row.ID, Description: row.Description, ParentID: row.ParentID})
	}
	return areas, nil
}

// Таблицы связей, из которых подгружаются метки владельцев.
const (
	personTags  = "person"
	projectTags = "project"
	slotTags    = "slot"
)

// loadSkills возвращает навыки, сгруппированные по владельцу (человеку, проекту или вакансии).
func loadSkills(ctx context.Context, q sqlx.QueryerContext, owner string, ownerIDs []int64) (map[int64][]entity.Skill, error) {
	result := make(map[int64][]entity.Skill, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return result, nil
	}

	query := fmt.Sprintf(`
		SELECT l.%[1]s_id AS owner_id, s.id, s.name
		FROM %[1]s_skills l
		JOIN skills s ON s.id = l.skill_id
		WHERE l.%[1]s_id = ANY($1)
		ORDER BY s.name
	`, owner)

	var rows []skillRow
	if err := sqlx.SelectContext(ctx, q, &rows, query, pq.Array(ownerIDs)); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить навыки")
	}
	for _, row := range rows {
		result[row.OwnerID] = append(result[row.OwnerID], entity.Skill{ID: row.ID, Name: row.Name})
	}
	return result, nil
}

func loadAreas(ctx context.Context, q sqlx.QueryerContext, owner string, ownerIDs []int64) (map[int64][]entity.Area, error) {
	result := make(map[int64][]entity.Area, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return result, nil
	}

	query := fmt.Sprintf(`
		SELECT l.%[1]s_id AS owner_id, a.id, a.description, a.parent_id
		FROM %[1]s_areas l
		JOIN areas a ON a.id = l.area_id
		WHERE l.%[1]s_id = ANY($1)
		ORDER BY a.description
	`, owner)

	var rows []areaRow
	if err := sqlx.SelectContext(ctx, q, &rows, query, pq.Array(ownerIDs)); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить области")
	}
	for _, row := range rows {
		result[row.OwnerID] = append(result[row.OwnerID], entity.Area{ID: row.ID, Description: row.Description, ParentID: row.ParentID})
	}
	return result, nil
}
