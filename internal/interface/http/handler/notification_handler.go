package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/conectar-backend/internal/interface/http/dto"
	"github.com/ignatzorin/conectar-backend/internal/interface/http/response"
	"github.com/ignatzorin/conectar-backend/internal/usecase/notification"
)

// NotificationUseCases - операции входящих уведомлений.
type NotificationUseCases struct {
	List        *notification.ListUseCase
	Get         *notification.GetUseCase
	MarkRead    *notification.MarkReadUseCase
	MarkAllRead *notification.MarkAllReadUseCase
	Delete      *notification.DeleteUseCase
	CountUnread *notification.CountUnreadUseCase
}

type NotificationHandler struct {
	uc NotificationUseCases
}

func NewNotificationHandler(uc NotificationUseCases) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

// List обслуживает GET /api/notifications?unread=true.
func (h *NotificationHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}

	items, err := h.uc.List.Execute(c.Request.Context(), userID, c.Query("unread") == "true")
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToNotificationResponses(items))
}

func (h *NotificationHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}

	id, err := paramID(c, "id")
	if err != nil {
		response.BadRequest(c, "некорректный ID уведомления")
		return
	}

	n, err := h.uc.Get.Execute(c.Request.Context(), id, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToNotificationResponse(n))
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}

	id, err := paramID(c, "id")
	if err != nil {
		response.BadRequest(c, "некорректный ID уведомления")
		return
	}

	n, err := h.uc.MarkRead.Execute(c.Request.Context(), id, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToNotificationResponse(n))
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}

	updated, err := h.uc.MarkAllRead.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"updated": updated})
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}

	id, err := paramID(c, "id")
	if err != nil {
		response.BadRequest(c, "некорректный ID уведомления")
		return
	}

	if err := h.uc.Delete.Execute(c.Request.Context(), id, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

func (h *NotificationHandler) CountUnread(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}

	count, err := h.uc.CountUnread.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"count": count})
}
