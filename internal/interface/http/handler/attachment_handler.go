package handler

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/conectar-backend/internal/interface/http/response"
	"github.com/ignatzorin/conectar-backend/internal/storage"
)

// AttachmentHandler отдаёт вложения уведомлений (PDF соглашений).
type AttachmentHandler struct {
	storage *storage.AttachmentStorage
}

func NewAttachmentHandler(storage *storage.AttachmentStorage) *AttachmentHandler {
	return &AttachmentHandler{storage: storage}
}

// Download обслуживает GET /api/attachments/:name.
func (h *AttachmentHandler) Download(c *gin.Context) {
	name := c.Param("name")

	f, err := h.storage.Open(c.Request.Context(), name)
	if err != nil {
		if os.IsNotExist(err) {
			response.NotFound(c, "вложение не найдено")
			return
		}
		response.BadRequest(c, "некорректное имя вложения")
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	http.ServeContent(c.Writer, c.Request, name, info.ModTime(), f)
}
