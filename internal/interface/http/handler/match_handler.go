package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/conectar-backend/internal/interface/http/dto"
	"github.com/ignatzorin/conectar-backend/internal/interface/http/response"
	"github.com/ignatzorin/conectar-backend/internal/usecase/ignorelist"
	"github.com/ignatzorin/conectar-backend/internal/usecase/matching"
)

// MatchHandler запускает подбор кандидатов.
type MatchHandler struct {
	selectForSlot    *matching.SelectBestCandidateUseCase
	selectForProject *matching.SelectBestCandidatesForProjectUseCase
	listIgnored      *ignorelist.ListForProjectUseCase
}

func NewMatchHandler(
	selectForSlot *matching.SelectBestCandidateUseCase,
	selectForProject *matching.SelectBestCandidatesForProjectUseCase,
	listIgnored *ignorelist.ListForProjectUseCase,
) *MatchHandler {
	return &MatchHandler{
		selectForSlot:    selectForSlot,
		selectForProject: selectForProject,
		listIgnored:      listIgnored,
	}
}

// MatchSlot обслуживает POST /api/slots/:id/match.
func (h *MatchHandler) MatchSlot(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}

	slotID, err := paramID(c, "id")
	if err != nil {
		response.BadRequest(c, "некорректный ID вакансии")
		return
	}

	person, err := h.selectForSlot.Execute(c.Request.Context(), slotID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToCandidateResponse(person))
}

// MatchProject обслуживает POST /api/projects/:id/match.
func (h *MatchHandler) MatchProject(c *gin.Context) {
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

	matches, err := h.selectForProject.Execute(c.Request.Context(), projectID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToProjectMatchResponse(projectID, matches))
}

func (h *MatchHandler) ListIgnored(c *gin.Context) {
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

	ids, err := h.listIgnored.Execute(c.Request.Context(), projectID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.IgnoredCandidatesResponse{ProjectID: projectID, PersonIDs: ids})
}
