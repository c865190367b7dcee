package repository

import (
	"context"

	"github.com/ignatzorin/conectar-backend/internal/domain/entity"
	"github.com/ignatzorin/conectar-backend/internal/domain/valueobject"
)

type SlotRepository interface {
	Create(ctx context.Context, slot *entity.Slot) error
	Update(ctx context.Context, slot *entity.Slot) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*entity.Slot, error)
	// FindByIDForUpdate блокирует строку вакансии до конца транзакции.
	FindByIDForUpdate(ctx context.Context, id int64) (*entity.Slot, error)
	FindByProject(ctx context.Context, projectID int64) ([]*entity.Slot, error)
	// LockOpenByProject блокирует и возвращает вакансии проекта без кандидата, по возрастанию ID.
	LockOpenByProject(ctx context.Context, projectID int64) ([]*entity.Slot, error)
	FindByStatus(ctx context.Context, status valueobject.SlotStatus) ([]*entity.Slot, error)
	FindByPersonAndStatus(ctx context.Context, personID int64, status valueobject.SlotStatus, limit int) ([]*entity.Slot, error)
	FindWithoutRequirements(ctx context.Context) ([]*entity.Slot, error)
	CountByProject(ctx context.Context, projectID int64) (int, error)
	ReplaceTags(ctx context.Context, slotID int64, skillIDs, areaIDs []int64) error
}

type IgnoredCandidateRepository interface {
	// Add не создаёт дубликат и возвращает существующую запись.
	Add(ctx context.Context, personID, slotID int64) (*entity.IgnoredCandidate, error)
	PersonIDsBySlots(ctx context.Context, slotIDs []int64) ([]int64, error)
	DeleteBySlot(ctx context.Context, slotID int64) ([]*entity.IgnoredCandidate, error)
}
