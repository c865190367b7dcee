package dto

import (
	"github.com/ignatzorin/conectar-backend/internal/domain/entity"
)

// CandidateResponse - публичные данные подобранного кандидата.
type CandidateResponse struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	ProfilePhoto *string    `json:"profile_photo"`
	Skills       []SkillDTO `json:"skills"`
	Areas        []AreaDTO  `json:"areas"`
}

func ToCandidateResponse(p *entity.Person) CandidateResponse {
	return CandidateResponse{
		ID:           p.ID,
		Name:         p.Name,
		ProfilePhoto: p.ProfilePhoto,
		Skills:       toSkillDTOs(p.Skills),
		Areas:        toAreaDTOs(p.Areas),
	}
}

// ProjectMatchResponse - результат подбора по всем открытым вакансиям проекта.
type ProjectMatchResponse struct {
	ProjectID int64                       `json:"project_id"`
	Matches   map[int64]CandidateResponse `json:"matches"`
}

func ToProjectMatchResponse(projectID int64, matches map[int64]*entity.Person) ProjectMatchResponse {
	resp := ProjectMatchResponse{
		ProjectID: projectID,
		Matches:   make(map[int64]CandidateResponse, len(matches)),
	}
	for slotID, p := range matches {
		resp.Matches[slotID] = ToCandidateResponse(p)
	}
	return resp
}

type IgnoredCandidatesResponse struct {
	ProjectID int64   `json:"project_id"`
	PersonIDs []int64 `json:"person_ids"`
}
