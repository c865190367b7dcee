package entity

import (
	"time"

	"github.com/ignatzorin/conectar-backend/internal/domain/valueobject"
)

type Reaction struct {
	ID        int64
	PersonID  int64
	ProjectID int64
	Kind      valueobject.ReactionKind
	CreatedAt time.Time
}

// IgnoredCandidate исключает человека из повторного подбора на вакансию.
type IgnoredCandidate struct {
	ID        int64
	PersonID  int64
	SlotID    int64
	CreatedAt time.Time
}
