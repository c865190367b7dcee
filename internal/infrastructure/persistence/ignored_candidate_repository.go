package persistence

import (
	"context"
	"time"

	"github.com/ignatzorin/conectar-backend/internal/domain/entity"
	"github.com/ignatzorin/conectar-backend/internal/pkg/apperror"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type IgnoredCandidateRepository struct {
	q sqlx.ExtContext
}

func NewIgnoredCandidateRepository(q sqlx.ExtContext) *IgnoredCandidateRepository {
	return &IgnoredCandidateRepository{q: q}
}

type ignoredRow struct {
	ID        int64     `db:"id"`
	PersonID  int64     `db:"person_id"`
	SlotID    int64     `db:"slot_id"`
	CreatedAt time.Time `db:"created_at"`
}

func (r ignoredRow) toEntity() *entity.IgnoredCandidate {
	return &entity.IgnoredCandidate{ID: r.ID, PersonID: r.PersonID, SlotID: r.SlotID, CreatedAt: r.CreatedAt}
}

// Add - upsert: при конфликте возвращается уже существующая строка.
func (r *IgnoredCandidateRepository) Add(ctx context.Context, personID, slotID int64) (*entity.IgnoredCandidate, error) {
	var row ignoredRow
	query := `
		INSERT INTO ignored_candidates (person_id, slot_id)
		VALUES ($1, $2)
		ON CONFLICT (person_id, slot_id) DO UPDATE SET person_id = EXCLUDED.person_id
		RETURNING id, person_id, slot_id, created_at
	`
	if err := sqlx.GetContext(ctx, r.q, &row, query, personID, slotID); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось исключить кандидата")
	}
	return row.toEntity(), nil
}

func (r *IgnoredCandidateRepository) PersonIDsBySlots(ctx context.Context, slotIDs []int64) ([]int64, error) {
	ids := []int64{}
	if len(slotIDs) == 0 {
		return ids, nil
	}
	query := `SELECT DISTINCT person_id FROM ignored_candidates WHERE slot_id = ANY($1) ORDER BY person_id`
	if err := sqlx.SelectContext(ctx, r.q, &ids, query, pq.Array(slotIDs)); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить исключённых кандидатов")
	}
	return ids, nil
}

func (r *IgnoredCandidateRepository) DeleteBySlot(ctx context.Context, slotID int64) ([]*entity.IgnoredCandidate, error) {
	var rows []ignoredRow
	query := `DELETE FROM ignored_candidates WHERE slot_id = $1 RETURNING id, person_id, slot_id, created_at`
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, slotID); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось очистить исключённых кандидатов")
	}
	removed := make([]*entity.IgnoredCandidate, 0, len(rows))
	for _, row := range rows {
		removed = append(removed, row.toEntity())
	}
	return removed, nil
}
