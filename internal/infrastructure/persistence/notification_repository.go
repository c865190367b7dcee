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

type NotificationRepository struct {
	q sqlx.ExtContext
}

func NewNotificationRepository(q sqlx.ExtContext) *NotificationRepository {
	return &NotificationRepository{q: q}
}

type notificationRow struct {
	ID          int64     `db:"id"`
	SenderID    int64     `db:"sender_id"`
	RecipientID int64     `db:"recipient_id"`
	ProjectID   *int64    `db:"project_id"`
	SlotID      *int64    `db:"slot_id"`
	Message     string    `db:"message"`
	Photo       *string   `db:"photo"`
	Attachment  *string   `db:"attachment"`
	Read        bool      `db:"read"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r notificationRow) toEntity() *entity.Notification {
	return &entity.Notification{
		ID:          r.ID,
		SenderID:    r.SenderID,
		RecipientID: r.RecipientID,
		ProjectID:   r.ProjectID,
		SlotID:      r.SlotID,
		Message:     r.Message,
		Photo:       r.Photo,
		Attachment:  r.Attachment,
		Read:        r.Read,
		CreatedAt:   r.CreatedAt,
	}
}

const notificationColumns = `id, sender_id, recipient_id, project_id, slot_id, message, photo, attachment, read, created_at`

func (r *NotificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	query := `
		INSERT INTO notifications (sender_id, recipient_id, project_id, slot_id, message, photo, attachment, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := sqlx.GetContext(ctx, r.q, &n.ID, query,
		n.SenderID,
		n.RecipientID,
		n.ProjectID,
		n.SlotID,
		n.Message,
		n.Photo,
		n.Attachment,
		n.Read,
		n.CreatedAt,
	)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось создать уведомление")
	}
	return nil
}

func (r *NotificationRepository) FindByID(ctx context.Context, id int64) (*entity.Notification, error) {
	var row notificationRow
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE id = $1`
	if err := sqlx.GetContext(ctx, r.q, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrNotificationNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить уведомление")
	}
	return row.toEntity(), nil
}

func (r *NotificationRepository) FindByRecipient(ctx context.Context, recipientID int64, unreadOnly bool) ([]*entity.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE recipient_id = $1`
	if unreadOnly {
		query += ` AND NOT read`
	}
	query += ` ORDER BY created_at DESC, id DESC`

	var rows []notificationRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, recipientID); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить уведомления")
	}
	result := make([]*entity.Notification, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.toEntity())
	}
	return result, nil
}

func (r *NotificationRepository) ExistsUnreadSince(ctx context.Context, recipientID int64, message string, since time.Time) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM notifications
			WHERE recipient_id = $1 AND message = $2 AND NOT read AND created_at >= $3
		)
	`
	if err := sqlx.GetContext(ctx, r.q, &exists, query, recipientID, message, since); err != nil {
		return false, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось проверить уведомления")
	}
	return exists, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, recipientID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND NOT read`
	if err := sqlx.GetContext(ctx, r.q, &count, query, recipientID); err != nil {
		return 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось посчитать уведомления")
	}
	return count, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id int64) error {
	result, err := r.q.ExecContext(ctx, `UPDATE notifications SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось отметить уведомление")
	}
	return expectRow(result, apperror.ErrNotificationNotFound)
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipientID int64) (int64, error) {
	result, err := r.q.ExecContext(ctx, `UPDATE notifications SET read = TRUE WHERE recipient_id = $1 AND NOT read`, recipientID)
	if err != nil {
		return 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось отметить уведомления")
	}
	updated, err := result.RowsAffected()
	if err != nil {
		return 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось проверить результат запроса")
	}
	return updated, nil
}

func (r *NotificationRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось удалить уведомление")
	}
	return expectRow(result, apperror.ErrNotificationNotFound)
}

func (r *NotificationRepository) AttachmentsBySlot(ctx context.Context, slotID int64) ([]string, error) {
	refs := []string{}
	query := `SELECT DISTINCT attachment FROM notifications WHERE slot_id = $1 AND attachment IS NOT NULL ORDER BY attachment`
	if err := sqlx.SelectContext(ctx, r.q, &refs, query, slotID); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить вложения")
	}
	return refs, nil
}
