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

type SlotRepository struct {
	q sqlx.ExtContext
}

func NewSlotRepository(q sqlx.ExtContext) *SlotRepository {
	return &SlotRepository{q: q}
}

type slotRow struct {
	ID              int64     `db:"id"`
	ProjectID       int64     `db:"project_id"`
	PersonID        *int64    `db:"person_id"`
	Role            string    `db:"role"`
	AgreementTypeID *int64    `db:"agreement_type_id"`
	Paid            bool      `db:"paid"`
	Title           string    `db:"title"`
	Description     string    `db:"description"`
	Status          string    `db:"status"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (r slotRow) toEntity() *entity.Slot {
	return &entity.Slot{
		ID:              r.ID,
		ProjectID:       r.ProjectID,
		PersonID:        r.PersonID,
		Role:            valueobject.Role(r.Role),
		AgreementTypeID: r.AgreementTypeID,
		Paid:            r.Paid,
		Title:           r.Title,
		Description:     r.Description,
		Status:          valueobject.SlotStatus(r.Status),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

const slotColumns = `s.id, s.project_id, s.person_id, s.role, s.agreement_type_id, s.paid, s.title, s.description, s.status, s.created_at, s.updated_at`

func (r *SlotRepository) Create(ctx context.Context, slot *entity.Slot) error {
	query := `
		INSERT INTO slots (project_id, person_id, role, agreement_type_id, paid, title, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	err := sqlx.GetContext(ctx, r.q, &slot.ID, query,
		slot.ProjectID,
		slot.PersonID,
		string(slot.Role),
		slot.AgreementTypeID,
		slot.Paid,
		slot.Title,
		slot.Description,
		string(slot.Status),
		slot.CreatedAt,
		slot.UpdatedAt,
	)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось создать вакансию")
	}
	return nil
}

func (r *SlotRepository) Update(ctx context.Context, slot *entity.Slot) error {
	query := `
		UPDATE slots
		SET person_id = $2, role = $3, agreement_type_id = $4, paid = $5,
		    title = $6, description = $7, status = $8, updated_at = $9
		WHERE id = $1
	`
	result, err := r.q.ExecContext(ctx, query,
		slot.ID,
		slot.PersonID,
		string(slot.Role),
		slot.AgreementTypeID,
		slot.Paid,
		slot.Title,
		slot.Description,
		string(slot.Status),
		slot.UpdatedAt,
	)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить вакансию")
	}
	return expectRow(result, apperror.ErrSlotNotFound)
}

func (r *SlotRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM slots WHERE id = $1`, id)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось удалить вакансию")
	}
	return expectRow(result, apperror.ErrSlotNotFound)
}

func (r *SlotRepository) FindByID(ctx context.Context, id int64) (*entity.Slot, error) {
	return r.findOne(ctx, `SELECT `+slotColumns+` FROM slots s WHERE s.id = $1`, id)
}

func (r *SlotRepository) FindByIDForUpdate(ctx context.Context, id int64) (*entity.Slot, error) {
	return r.findOne(ctx, `SELECT `+slotColumns+` FROM slots s WHERE s.id = $1 FOR UPDATE`, id)
}

func (r *SlotRepository) FindByProject(ctx context.Context, projectID int64) ([]*entity.Slot, error) {
	return r.findMany(ctx, `SELECT `+slotColumns+` FROM slots s WHERE s.project_id = $1 ORDER BY s.id`, projectID)
}

func (r *SlotRepository) LockOpenByProject(ctx context.Context, projectID int64) ([]*entity.Slot, error) {
	return r.findMany(ctx, `
		SELECT `+slotColumns+`
		FROM slots s
		WHERE s.project_id = $1 AND s.person_id IS NULL
		ORDER BY s.id
		FOR UPDATE
	`, projectID)
}

func (r *SlotRepository) FindByStatus(ctx context.Context, status valueobject.SlotStatus) ([]*entity.Slot, error) {
	return r.findMany(ctx, `SELECT `+slotColumns+` FROM slots s WHERE s.status = $1 ORDER BY s.id`, string(status))
}

func (r *SlotRepository) FindByPersonAndStatus(ctx context.Context, personID int64, status valueobject.SlotStatus, limit int) ([]*entity.Slot, error) {
	return r.findMany(ctx, `
		SELECT `+slotColumns+`
		FROM slots s
		WHERE s.person_id = $1 AND s.status = $2
		ORDER BY s.updated_at DESC
		LIMIT $3
	`, personID, string(status), limit)
}

func (r *SlotRepository) FindWithoutRequirements(ctx context.Context) ([]*entity.Slot, error) {
	return r.findMany(ctx, `
		SELECT `+slotColumns+`
		FROM slots s
		WHERE NOT EXISTS (SELECT 1 FROM slot_skills ss WHERE ss.slot_id = s.id)
		  AND NOT EXISTS (SELECT 1 FROM slot_areas sa WHERE sa.slot_id = s.id)
		ORDER BY s.id
	`)
}

func (r *SlotRepository) CountByProject(ctx context.Context, projectID int64) (int, error) {
	var count int
	if err := sqlx.GetContext(ctx, r.q, &count, `SELECT COUNT(*) FROM slots WHERE project_id = $1`, projectID); err != nil {
		return 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось посчитать вакансии")
	}
	return count, nil
}

func (r *SlotRepository) ReplaceTags(ctx context.Context, slotID int64, skillIDs, areaIDs []int64) error {
	statements := []struct {
		query string
		args  []interface{}
	}{
		{`DELETE FROM slot_skills WHERE slot_id = $1`, []interface{}{slotID}},
		{`DELETE FROM slot_areas WHERE slot_id = $1`, []interface{}{slotID}},
		{`INSERT INTO slot_skills (slot_id, skill_id) SELECT $1, unnest($2::bigint[])`, []interface{}{slotID, pq.Array(skillIDs)}},
		{`INSERT INTO slot_areas (slot_id, area_id) SELECT $1, unnest($2::bigint[])`, []interface{}{slotID, pq.Array(areaIDs)}},
	}
	for _, st := range statements {
		if _, err := r.q.ExecContext(ctx, st.query, st.args...); err != nil {
			return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить навыки и области вакансии")
		}
	}
	return nil
}

func (r *SlotRepository) findOne(ctx context.Context, query string, args ...interface{}) (*entity.Slot, error) {
	var row slotRow
	if err := sqlx.GetContext(ctx, r.q, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrSlotNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить вакансию")
	}
	slots, err := r.withTags(ctx, []slotRow{row})
	if err != nil {
		return nil, err
	}
	return slots[0], nil
}

func (r *SlotRepository) findMany(ctx context.Context, query string, args ...interface{}) ([]*entity.Slot, error) {
	var rows []slotRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить вакансии")
	}
	return r.withTags(ctx, rows)
}

func (r *SlotRepository) withTags(ctx context.Context, rows []slotRow) ([]*entity.Slot, error) {
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	skills, err := loadSkills(ctx, r.q, slotTags, ids)
	if err != nil {
		return nil, err
	}
	areas, err := loadAreas(ctx, r.q, slotTags, ids)
	if err != nil {
		return nil, err
	}

	slots := make([]*entity.Slot, 0, len(rows))
	for _, row := range rows {
		s := row.toEntity()
		s.Skills = skills[s.ID]
		s.Areas = areas[s.ID]
		slots = append(slots, s)
	}
	return slots, nil
}

func expectRow(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось проверить результат запроса")
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
