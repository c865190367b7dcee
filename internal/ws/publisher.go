package ws

import (
	"time"

	"github.com/ignatzorin/conectar-backend/internal/domain/entity"
	"github.com/ignatzorin/conectar-backend/internal/logger"
)

// EventNotification - имя события о новом уведомлении.
const EventNotification = "notification"

type notificationPayload struct {
	ID         int64     `json:"id"`
	SenderID   int64     `json:"sender_id"`
	ProjectID  *int64    `json:"project_id,omitempty"`
	SlotID     *int64    `json:"slot_id,omitempty"`
	Message    string    `json:"message"`
	Photo      *string   `json:"photo,omitempty"`
	Attachment *string   `json:"attachment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// NotificationPublisher отправляет сохранённые уведомления получателям через хаб.
type NotificationPublisher struct {
	hub *Hub
}

func NewNotificationPublisher(hub *Hub) *NotificationPublisher {
	return &NotificationPublisher{hub: hub}
}

func (p *NotificationPublisher) Publish(notifications []*entity.Notification) {
	for _, n := range notifications {
		payload := notificationPayload{
			ID:         n.ID,
			SenderID:   n.SenderID,
			ProjectID:  n.ProjectID,
			SlotID:     n.SlotID,
			Message:    n.Message,
			Photo:      n.Photo,
			Attachment: n.Attachment,
			CreatedAt:  n.CreatedAt,
		}
		if err := p.hub.BroadcastToUser(n.RecipientID, EventNotification, payload); err != nil {
			logger.Log.WithError(err).WithField("notification_id", n.ID).Warn("ws: не удалось отправить уведомление")
		}
	}
}
