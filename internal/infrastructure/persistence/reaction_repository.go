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
)

type ReactionRepository struct {
	q sqlx.ExtContext
}

func NewReactionRepository(q sqlx.ExtContext) *ReactionRepository {
	return &ReactionRepository{q: q}
}

type reactionRow struct {
	ID        int64     `db:"id"`
	PersonID  int64     `db:"person_id"`
	ProjectID int64     `db:"project_id"`
	Kind      string    `db:"kind"`
	CreatedAt time.Time `db:"created_at"`
}

func (r reactionRow) toEntity() *entity.Reaction {
	return &entity.Reaction{
		ID:        r.ID,
		PersonID:  r.PersonID,
		ProjectID: r.ProjectID,
		Kind:      valueobject.ReactionKind(r.Kind),
		CreatedAt: r.CreatedAt,
	}
}

func (r *ReactionRepository) Add(ctx context.Context, personID, projectID int64, kind valueobject.ReactionKind) (*entity.Reaction, bool, error) {
	var row reactionRow
	insert := `
		INSERT INTO reactions (person_id, project_id, kind)
		VALUES ($1, $2, $3)
		ON CONFLICT (person_id, project_id, kind) DO NOTHING
		RETURNING id, person_id, project_id, kind, created_at
	`
	err := sqlx.GetContext(ctx, r.q, &row, insert, personID, projectID, string(kind))
	if err == nil {
		return row.toEntity(), true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось сохранить реакцию")
	}

	existing := `SELECT id, person_id, project_id, kind, created_at FROM reactions WHERE person_id = $1 AND project_id = $2 AND kind = $3`
	if err := sqlx.GetContext(ctx, r.q, &row, existing, personID, projectID, string(kind)); err != nil {
		return nil, false, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить реакцию")
	}
	return row.toEntity(), false, nil
}

func (r *ReactionRepository) Remove(ctx context.Context, personID, projectID int64, kind valueobject.ReactionKind) error {
	result, err := r.q.ExecContext(ctx,
		`DELETE FROM reactions WHERE person_id = $1 AND project_id = $2 AND kind = $3`,
		personID, projectID, string(kind))
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось удалить реакцию")
	}
	return expectRow(result, apperror.ErrReactionNotFound)
}

func (r *ReactionRepository) Exists(ctx context.Context, personID, projectID int64, kind valueobject.ReactionKind) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM reactions WHERE person_id = $1 AND project_id = $2 AND kind = $3)`
	if err := sqlx.GetContext(ctx, r.q, &exists, query, personID, projectID, string(kind)); err != nil {
		return false, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось проверить реакцию")
	}
	return exists, nil
}

func (r *ReactionRepository) PersonIDsByProject(ctx context.Context, projectID int64, kind valueobject.ReactionKind) ([]int64, error) {
	ids := []int64{}
	query := `SELECT person_id FROM reactions WHERE project_id = $1 AND kind = $2 ORDER BY person_id`
	if err := sqlx.SelectContext(ctx, r.q, &ids, query, projectID, string(kind)); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить реакции")
	}
	return ids, nil
}
