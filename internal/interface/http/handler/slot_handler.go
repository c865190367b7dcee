package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/conectar-backend/internal/domain/entity"
	"github.com/ignatzorin/conectar-backend/internal/interface/http/dto"
	"github.com/ignatzorin/conectar-backend/internal/interface/http/response"
	"github.com/ignatzorin/conectar-backend/internal/usecase/slot"
)

// SlotUseCases - операции над вакансиями, доступные через HTTP.
type SlotUseCases struct {
	Create          *slot.CreateUseCase
	Get             *slot.GetUseCase
	ListByProject   *slot.ListByProjectUseCase
	ListInvitations *slot.ListInvitationsUseCase
	Edit            *slot.EditUseCase
	Delete          *slot.DeleteUseCase
	Assign          *slot.AssignCandidateUseCase
	Invite          *slot.InviteUseCase
	Accept          *slot.AcceptUseCase
	Refuse          *slot.RefuseUseCase
	Finalize        *slot.FinalizeUseCase
}

type SlotHandler struct {
	uc SlotUseCases
}

func NewSlotHandler(uc SlotUseCases) *SlotHandler {
	return &SlotHandler{uc: uc}
}

func (h *SlotHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}

	var req dto.CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные запроса")
		return
	}

	s, err := h.uc.Create.Execute(c.Request.Context(), req.ToInput(userID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToSlotResponse(s))
}

func (h *SlotHandler) Get(c *gin.Context) {
	slotID, err := paramID(c, "id")
	if err != nil {
		response.BadRequest(c, "некорректный ID вакансии")
		return
	}

	s, err := h.uc.Get.Execute(c.Request.Context(), slotID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToSlotResponse(s))
}

func (h *SlotHandler) ListByProject(c *gin.Context) {
	projectID, err := paramID(c, "id")
	if err != nil {
		response.BadRequest(c, "некорректный ID проекта")
		return
	}

	slots, err := h.uc.ListByProject.Execute(c.Request.Context(), projectID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToSlotResponses(slots))
}

// ListMyInvitations возвращает вакансии, ожидающие ответа текущего человека.
func (h *SlotHandler) ListMyInvitations(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}

	slots, err := h.uc.ListInvitations.Execute(c.Request.Context(), userID, parseIntQuery(c, "limit", 10))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToSlotResponses(slots))
}

func (h *SlotHandler) Update(c *gin.Context) {
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

	var req dto.UpdateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные запроса")
		return
	}

	s, err := h.uc.Edit.Execute(c.Request.Context(), slotID, userID, req.ToCommand())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToSlotResponse(s))
}

func (h *SlotHandler) Delete(c *gin.Context) {
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

	if err := h.uc.Delete.Execute(c.Request.Context(), slotID, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

func (h *SlotHandler) Assign(c *gin.Context) {
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

	var req dto.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные запроса")
		return
	}

	s, err := h.uc.Assign.Execute(c.Request.Context(), slotID, userID, req.PersonID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToSlotResponse(s))
}

func (h *SlotHandler) Invite(c *gin.Context) {
	h.transition(c, h.uc.Invite.Execute)
}

func (h *SlotHandler) Accept(c *gin.Context) {
	h.transition(c, h.uc.Accept.Execute)
}

func (h *SlotHandler) Refuse(c *gin.Context) {
	h.transition(c, h.uc.Refuse.Execute)
}

func (h *SlotHandler) Finalize(c *gin.Context) {
	h.transition(c, h.uc.Finalize.Execute)
}

type transitionFunc func(ctx context.Context, slotID, actorID int64) (*entity.Slot, error)

func (h *SlotHandler) transition(c *gin.Context, execute transitionFunc) {
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

	s, err := execute(c.Request.Context(), slotID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToSlotResponse(s))
}
