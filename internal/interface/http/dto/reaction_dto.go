package dto

import (
	"time"

	"github.com/ignatzorin/conectar-backend/internal/domain/entity"
)

type ReactRequest struct {
	Kind string `json:"kind" binding:"required"`
}

type ReactionResponse struct {
	ID        int64     `json:"id"`
	PersonID  int64     `json:"person_id"`
	ProjectID int64     `json:"project_id"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

func ToReactionResponse(r *entity.Reaction) ReactionResponse {
	return ReactionResponse{
		ID:        r.ID,
		PersonID:  r.PersonID,
		ProjectID: r.ProjectID,
		Kind:      string(r.Kind),
		CreatedAt: r.CreatedAt,
	}
}
