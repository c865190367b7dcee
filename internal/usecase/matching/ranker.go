package matching

import (
	"context"
	"fmt"
	"sort"

	"github.com/ignatzorin/conectar-backend/internal/domain/entity"
	"github.com/ignatzorin/conectar-backend/internal/domain/repository"
	"github.com/ignatzorin/conectar-backend/internal/domain/valueobject"
	"github.com/ignatzorin/conectar-backend/internal/logger"
	"github.com/ignatzorin/conectar-backend/internal/pkg/apperror"
	"github.com/ignatzorin/conectar-backend/internal/usecase/ignorelist"
	"github.com/ignatzorin/conectar-backend/internal/usecase/notification"
	"github.com/ignatzorin/conectar-backend/internal/usecase/slot"
)

type Candidate struct {
	Person *entity.Person
	Score  float64
}

// Rank сортирует кандидатов по убыванию оценки, при равенстве по возрастанию ID.
func Rank(required []string, pool []*entity.Person, interested map[int64]bool) []Candidate {
	ranked := make([]Candidate, 0, len(pool))
	for _, p := range pool {
		ranked = append(ranked, Candidate{
			Person: p,
			Score:  Score(required, p.Tags(), interested[p.ID]),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Person.ID < ranked[j].Person.ID
	})
	return ranked
}

// bestFor выбирает лучшего кандидата на вакансию, исключая excluded.
func bestFor(ctx context.Context, repos repository.Repositories, s *entity.Slot, excluded []int64) (Candidate, error) {
	required := s.Tags()
	if len(required) == 0 {
		return Candidate{}, apperror.New(apperror.ErrCodeNoRequirements,
			fmt.Sprintf("у вакансии %d нет навыков и областей для подбора", s.ID))
	}

	pool, err := repos.People.FindByRoleExcluding(ctx, s.Role, excluded)
	if err != nil {
		return Candidate{}, err
	}
	if len(pool) == 0 {
		return Candidate{}, apperror.New(apperror.ErrCodeNoCandidates,
			fmt.Sprintf("нет доступных кандидатов для вакансии %d", s.ID))
	}

	interestedIDs, err := repos.Reactions.PersonIDsByProject(ctx, s.ProjectID, valueobject.ReactionInterest)
	if err != nil {
		return Candidate{}, err
	}
	interested := make(map[int64]bool, len(interestedIDs))
	for _, id := range interestedIDs {
		interested[id] = true
	}

	return Rank(required, pool, interested)[0], nil
}

type SelectBestCandidateUseCase struct {
	uow       repository.UnitOfWork
	lifecycle *slot.Lifecycle
	publisher notification.Publisher
}

func NewSelectBestCandidateUseCase(uow repository.UnitOfWork, lifecycle *slot.Lifecycle, publisher notification.Publisher) *SelectBestCandidateUseCase {
	return &SelectBestCandidateUseCase{uow: uow, lifecycle: lifecycle, publisher: publisher}
}

// Execute подбирает и назначает кандидата на вакансию, ожидающую решения владельца.
func (uc *SelectBestCandidateUseCase) Execute(ctx context.Context, slotID, actorID int64) (*entity.Person, error) {
	outbox := &notification.Outbox{}
	var selected *entity.Person
	err := uc.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		s, err := repos.Slots.FindByIDForUpdate(ctx, slotID)
		if err != nil {
			return err
		}
		project, err := repos.Projects.FindByID(ctx, s.ProjectID)
		if err != nil {
			return err
		}
		if !project.IsOwnedBy(actorID) {
			return apperror.ErrForbidden
		}
		if s.Status != valueobject.SlotStatusPendingIdealizer {
			return apperror.New(apperror.ErrCodeInvalidTransition,
				fmt.Sprintf("подбор недоступен для вакансии в статусе %s", s.Status))
		}

		ignored, err := ignorelist.NewTracker(repos.Ignored).IDsForSlot(ctx, s.ID)
		if err != nil {
			return err
		}

		best, err := bestFor(ctx, repos, s, ignored)
		if err != nil {
			return err
		}
		if err := uc.lifecycle.Assign(ctx, repos, s, project, actorID, best.Person, outbox); err != nil {
			return err
		}

		logger.WithSlot(s.ID, s.ProjectID).WithField("score", best.Score).Info("matching: кандидат выбран")
		selected = best.Person
		return nil
	})
	if err != nil {
		return nil, err
	}

	outbox.Flush(uc.publisher)
	return selected, nil
}

type SelectBestCandidatesForProjectUseCase struct {
	uow       repository.UnitOfWork
	lifecycle *slot.Lifecycle
	publisher notification.Publisher
}

func NewSelectBestCandidatesForProjectUseCase(uow repository.UnitOfWork, lifecycle *slot.Lifecycle, publisher notification.Publisher) *SelectBestCandidatesForProjectUseCase {
	return &SelectBestCandidatesForProjectUseCase{uow: uow, lifecycle: lifecycle, publisher: publisher}
}

// Execute подбирает кандидатов на все открытые вакансии проекта за один проход.
// Один человек не попадает в две вакансии одного прохода. Ошибка на любой
// вакансии откатывает весь проход.
func (uc *SelectBestCandidatesForProjectUseCase) Execute(ctx context.Context, projectID, actorID int64) (map[int64]*entity.Person, error) {
	outbox := &notification.Outbox{}
	result := make(map[int64]*entity.Person)
	err := uc.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		project, err := repos.Projects.FindByID(ctx, projectID)
		if err != nil {
			return err
		}
		if !project.IsOwnedBy(actorID) {
			return apperror.ErrForbidden
		}

		slots, err := repos.Slots.LockOpenByProject(ctx, project.ID)
		if err != nil {
			return err
		}

		tracker := ignorelist.NewTracker(repos.Ignored)
		var selectedInBatch []int64
		for _, s := range slots {
			ignored, err := tracker.IDsForSlot(ctx, s.ID)
			if err != nil {
				return err
			}

			best, err := bestFor(ctx, repos, s, append(ignored, selectedInBatch...))
			if err != nil {
				return err
			}
			if err := uc.lifecycle.Assign(ctx, repos, s, project, actorID, best.Person, outbox); err != nil {
				return err
			}

			logger.WithSlot(s.ID, s.ProjectID).WithField("score", best.Score).Info("matching: кандидат выбран")
			result[s.ID] = best.Person
			selectedInBatch = append(selectedInBatch, best.Person.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	outbox.Flush(uc.publisher)
	return result, nil
}
