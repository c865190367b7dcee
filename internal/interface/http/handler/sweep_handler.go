package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/conectar-backend/internal/interface/http/dto"
	"github.com/ignatzorin/conectar-backend/internal/interface/http/response"
	"github.com/ignatzorin/conectar-backend/internal/usecase/notification"
)

// SweepHandler запускает периодические проверки по запросу планировщика.
type SweepHandler struct {
	sweep *notification.SweepUseCase
}

func NewSweepHandler(sweep *notification.SweepUseCase) *SweepHandler {
	return &SweepHandler{sweep: sweep}
}

// Run обслуживает POST /api/internal/sweeps/:kind.
func (h *SweepHandler) Run(c *gin.Context) {
	kind, err := notification.ParseSweepKind(c.Param("kind"))
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.sweep.Execute(c.Request.Context(), kind)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToSweepResponse(kind, result))
}
