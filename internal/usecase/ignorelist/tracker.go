package ignorelist

import (
	"context"
	"sort"

	"github.com/ignatzorin/conectar-backend/internal/domain/entity"
	"github.com/ignatzorin/conectar-backend/internal/domain/repository"
	"github.com/ignatzorin/conectar-backend/internal/pkg/apperror"
)

// Tracker хранит, кого уже предлагали на вакансию, чтобы подбор не повторялся.
type Tracker struct {
	repo repository.IgnoredCandidateRepository
}

func NewTracker(repo repository.IgnoredCandidateRepository) *Tracker {
	return &Tracker{repo: repo}
}

func (t *Tracker) Add(ctx context.Context, personID, slotID int64) (*entity.IgnoredCandidate, error) {
	return t.repo.Add(ctx, personID, slotID)
}

func (t *Tracker) IDsForSlot(ctx context.Context, slotID int64) ([]int64, error) {
	return t.IDsForSlots(ctx, []int64{slotID})
}

// IDsForSlots возвращает объединение по всем вакансиям без повторов, по возрастанию.
func (t *Tracker) IDsForSlots(ctx context.Context, slotIDs []int64) ([]int64, error) {
	if len(slotIDs) == 0 {
		return []int64{}, nil
	}

	ids, err := t.repo.PersonIDsBySlots(ctx, slotIDs)
	if err != nil {
		return nil, err
	}
	return uniqueSorted(ids), nil
}

func (t *Tracker) ClearForSlot(ctx context.Context, slotID int64) ([]*entity.IgnoredCandidate, error) {
	return t.repo.DeleteBySlot(ctx, slotID)
}

func uniqueSorted(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ListForProjectUseCase отдаёт исключённых кандидатов по всем вакансиям проекта.
type ListForProjectUseCase struct {
	uow repository.UnitOfWork
}

func NewListForProjectUseCase(uow repository.UnitOfWork) *ListForProjectUseCase {
	return &ListForProjectUseCase{uow: uow}
}

func (uc *ListForProjectUseCase) Execute(ctx context.Context, projectID, actorID int64) ([]int64, error) {
	var ids []int64
	err := uc.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		project, err := repos.Projects.FindByID(ctx, projectID)
		if err != nil {
			return err
		}
		if !project.IsOwnedBy(actorID) {
			return apperror.ErrForbidden
		}

		slots, err := repos.Slots.FindByProject(ctx, projectID)
		if err != nil {
			return err
		}
		slotIDs := make([]int64, 0, len(slots))
		for _, s := range slots {
			slotIDs = append(slotIDs, s.ID)
		}

		ids, err = NewTracker(repos.Ignored).IDsForSlots(ctx, slotIDs)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}
