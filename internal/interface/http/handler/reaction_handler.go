package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/conectar-backend/internal/interface/http/dto"
	"github.com/ignatzorin/conectar-backend/internal/interface/http/response"
	"github.com/ignatzorin/conectar-backend/internal/usecase/reaction"
)

type ReactionHandler struct {
	react  *reaction.ReactUseCase
	remove *reaction.RemoveUseCase
}

func NewReactionHandler(react *reaction.ReactUseCase, remove *reaction.RemoveUseCase) *ReactionHandler {
	return &ReactionHandler{react: react, remove: remove}
}

func (h *ReactionHandler) React(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}

	projectID, err := paramID(c, "id")
	if err != nil {
		response.BadRequest(c, "некорректный ID проекта")
		return
	}

	var req dto.ReactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные запроса")
		return
	}

	r, err := h.react.Execute(c.Request.Context(), userID, projectID, req.Kind)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToReactionResponse(r))
}

func (h *ReactionHandler) Remove(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}

	projectID, err := paramID(c, "id")
	if err != nil {
		response.BadRequest(c, "некорректный ID проекта")
		return
	}

	if err := h.remove.Execute(c.Request.Context(), userID, projectID, c.Param("kind")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
