package repository

import (
	"context"
	"time"

	"github.com/ignatzorin/conectar-backend/internal/domain/entity"
	"github.com/ignatzorin/conectar-backend/internal/domain/valueobject"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	FindByID(ctx context.Context, id int64) (*entity.Notification, error)
	FindByRecipient(ctx context.Context, recipientID int64, unreadOnly bool) ([]*entity.Notification, error)
	// ExistsUnreadSince ищет непрочитанное уведомление с тем же текстом, созданное не раньше since.
	ExistsUnreadSince(ctx context.Context, recipientID int64, message string, since time.Time) (bool, error)
	CountUnread(ctx context.Context, recipientID int64) (int, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context, recipientID int64) (int64, error)
	Delete(ctx context.Context, id int64) error
	AttachmentsBySlot(ctx context.Context, slotID int64) ([]string, error)
}

type ReactionRepository interface {
	// Add возвращает created=false, если такая реакция уже есть.
	Add(ctx context.Context, personID, projectID int64, kind valueobject.ReactionKind) (*entity.Reaction, bool, error)
	Remove(ctx context.Context, personID, projectID int64, kind valueobject.ReactionKind) error
	Exists(ctx context.Context, personID, projectID int64, kind valueobject.ReactionKind) (bool, error)
	PersonIDsByProject(ctx context.Context, projectID int64, kind valueobject.ReactionKind) ([]int64, error)
}
