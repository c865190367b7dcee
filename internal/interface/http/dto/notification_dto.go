package dto

import (
	"time"

	"github.com/ignatzorin/conectar-backend/internal/domain/entity"
	"github.com/ignatzorin/conectar-backend/internal/usecase/notification"
)

type NotificationResponse struct {
	ID          int64     `json:"id"`
	SenderID    int64     `json:"sender_id"`
	RecipientID int64     `json:"recipient_id"`
	ProjectID   *int64    `json:"project_id"`
	SlotID      *int64    `json:"slot_id"`
	Message     string    `json:"message"`
	Photo       *string   `json:"photo"`
	Attachment  *string   `json:"attachment"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToNotificationResponse(n *entity.Notification) NotificationResponse {
	return NotificationResponse{
		ID:          n.ID,
		SenderID:    n.SenderID,
		RecipientID: n.RecipientID,
		ProjectID:   n.ProjectID,
		SlotID:      n.SlotID,
		Message:     n.Message,
		Photo:       n.Photo,
		Attachment:  n.Attachment,
		Read:        n.Read,
		CreatedAt:   n.CreatedAt,
	}
}

func ToNotificationResponses(items []*entity.Notification) []NotificationResponse {
	result := make([]NotificationResponse, 0, len(items))
	for _, n := range items {
		result = append(result, ToNotificationResponse(n))
	}
	return result
}

type SweepResponse struct {
	Kind          string  `json:"kind"`
	Notifications int     `json:"notifications"`
	ExpiredSlots  []int64 `json:"expired_slots"`
}

func ToSweepResponse(kind notification.SweepKind, r *notification.SweepResult) SweepResponse {
	expired := r.ExpiredSlots
	if expired == nil {
		expired = []int64{}
	}
	return SweepResponse{
		Kind:          string(kind),
		Notifications: len(r.Notifications),
		ExpiredSlots:  expired,
	}
}
