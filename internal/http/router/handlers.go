package router

import (
	"github.com/ignatzorin/conectar-backend/internal/app"
	"github.com/ignatzorin/conectar-backend/internal/interface/http/handler"
	"github.com/ignatzorin/conectar-backend/internal/ws"
)

// NewHandlers собирает обработчики поверх контейнера приложения.
func NewHandlers(c *app.Container, hub *ws.Hub) Handlers {
	return Handlers{
		Health: handler.NewHealthHandler(c.Config.StorageDriver, c.Ping),
		WS:     handler.NewWSHandler(hub, c.Config.AllowedOrigins),
		Slot: handler.NewSlotHandler(handler.SlotUseCases{
			Create:          c.CreateSlot,
			Get:             c.GetSlot,
			ListByProject:   c.ListSlotsByProject,
			ListInvitations: c.ListInvitations,
			Edit:            c.EditSlot,
			Delete:          c.DeleteSlot,
			Assign:          c.AssignCandidate,
			Invite:          c.Invite,
			Accept:          c.Accept,
			Refuse:          c.Refuse,
			Finalize:        c.Finalize,
		}),
		Match:    handler.NewMatchHandler(c.SelectBestCandidate, c.SelectBestForProject, c.ListIgnored),
		Reaction: handler.NewReactionHandler(c.React, c.RemoveReaction),
		Notification: handler.NewNotificationHandler(handler.NotificationUseCases{
			List:        c.ListNotifications,
			Get:         c.GetNotification,
			MarkRead:    c.MarkNotificationRead,
			MarkAllRead: c.MarkAllRead,
			Delete:      c.DeleteNotification,
			CountUnread: c.CountUnread,
		}),
		Sweep:      handler.NewSweepHandler(c.Sweep),
		Attachment: handler.NewAttachmentHandler(c.Attachments),
	}
}
