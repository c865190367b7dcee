package dto

import (
	"time"

	"github.com/ignatzorin/conectar-backend/internal/domain/entity"
	"github.com/ignatzorin/conectar-backend/internal/usecase/slot"
)

type CreateSlotRequest struct {
	ProjectID       int64   `json:"project_id" binding:"required,gt=0"`
	PersonID        *int64  `json:"person_id" binding:"omitempty,gt=0"`
	Role            string  `json:"role" binding:"required"`
	AgreementTypeID *int64  `json:"agreement_type_id" binding:"omitempty,gt=0"`
	Paid            bool    `json:"paid"`
	Title           string  `json:"title" binding:"required,max=200"`
	Description     string  `json:"description" binding:"max=5000"`
	SkillIDs        []int64 `json:"skill_ids"`
	AreaIDs         []int64 `json:"area_ids"`
}

func (r CreateSlotRequest) ToInput(actorID int64) slot.CreateInput {
	return slot.CreateInput{
		ActorID:         actorID,
		ProjectID:       r.ProjectID,
		PersonID:        r.PersonID,
		Role:            r.Role,
		AgreementTypeID: r.AgreementTypeID,
		Paid:            r.Paid,
		Title:           r.Title,
		Description:     r.Description,
		SkillIDs:        r.SkillIDs,
		AreaIDs:         r.AreaIDs,
	}
}

// UpdateSlotRequest - частичное изменение: отсутствующее поле не меняется.
type UpdateSlotRequest struct {
	Title           *string  `json:"title" binding:"omitempty,max=200"`
	Description     *string  `json:"description" binding:"omitempty,max=5000"`
	Paid            *bool    `json:"paid"`
	Role            *string  `json:"role"`
	AgreementTypeID *int64   `json:"agreement_type_id" binding:"omitempty,gt=0"`
	SkillIDs        *[]int64 `json:"skill_ids"`
	AreaIDs         *[]int64 `json:"area_ids"`
}

func (r UpdateSlotRequest) ToCommand() slot.EditCommand {
	return slot.EditCommand{
		Title:           r.Title,
		Description:     r.Description,
		Paid:            r.Paid,
		Role:            r.Role,
		AgreementTypeID: r.AgreementTypeID,
		SkillIDs:        r.SkillIDs,
		AreaIDs:         r.AreaIDs,
	}
}

type AssignRequest struct {
	PersonID int64 `json:"person_id" binding:"required,gt=0"`
}

type SkillDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type AreaDTO struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	ParentID    *int64 `json:"parent_id,omitempty"`
}

type SlotResponse struct {
	ID              int64      `json:"id"`
	ProjectID       int64      `json:"project_id"`
	PersonID        *int64     `json:"person_id"`
	Role            string     `json:"role"`
	AgreementTypeID *int64     `json:"agreement_type_id"`
	Paid            bool       `json:"paid"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Status          string     `json:"status"`
	Skills          []SkillDTO `json:"skills"`
	Areas           []AreaDTO  `json:"areas"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func ToSlotResponse(s *entity.Slot) SlotResponse {
	return SlotResponse{
		ID:              s.ID,
		ProjectID:       s.ProjectID,
		PersonID:        s.PersonID,
		Role:            string(s.Role),
		AgreementTypeID: s.AgreementTypeID,
		Paid:            s.Paid,
		Title:           s.Title,
		Description:     s.Description,
		Status:          string(s.Status),
		Skills:          toSkillDTOs(s.Skills),
		Areas:           toAreaDTOs(s.Areas),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func ToSlotResponses(slots []*entity.Slot) []SlotResponse {
	result := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		result = append(result, ToSlotResponse(s))
	}
	return result
}

func toSkillDTOs(skills []entity.Skill) []SkillDTO {
	result := make([]SkillDTO, 0, len(skills))
	for _, s := range skills {
		result = append(result, SkillDTO{ID: s.ID, Name: s.Name})
	}
	return result
}

func toAreaDTOs(areas []entity.Area) []AreaDTO {
	result := make([]AreaDTO, 0, len(areas))
	for _, a := range areas {
		result = append(result, AreaDTO{ID: a.ID, Description: a.Description, ParentID: a.ParentID})
	}
	return result
}
