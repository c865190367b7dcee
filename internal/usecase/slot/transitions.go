package slot

import (
	"context"

	"github.com/ignatzorin/conectar-backend/internal/domain/entity"
	"github.com/ignatzorin/conectar-backend/internal/domain/repository"
	"github.com/ignatzorin/conectar-backend/internal/domain/valueobject"
	"github.com/ignatzorin/conectar-backend/internal/pkg/apperror"
	"github.com/ignatzorin/conectar-backend/internal/usecase/notification"
)

type AssignCandidateUseCase struct {
	uow       repository.UnitOfWork
	lifecycle *Lifecycle
	publisher notification.Publisher
}

func NewAssignCandidateUseCase(uow repository.UnitOfWork, lifecycle *Lifecycle, publisher notification.Publisher) *AssignCandidateUseCase {
	return &AssignCandidateUseCase{uow: uow, lifecycle: lifecycle, publisher: publisher}
}

func (uc *AssignCandidateUseCase) Execute(ctx context.Context, slotID, actorID, personID int64) (*entity.Slot, error) {
	outbox := &notification.Outbox{}
	var result *entity.Slot
	err := uc.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		s, project, err := lockForOwner(ctx, repos, slotID, actorID)
		if err != nil {
			return err
		}
		candidate, err := repos.People.FindByID(ctx, personID)
		if err != nil {
			return err
		}
		if err := checkCandidate(candidate, s.Role, project); err != nil {
			return err
		}
		if err := uc.lifecycle.Assign(ctx, repos, s, project, actorID, candidate, outbox); err != nil {
			return err
		}
		result = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	outbox.Flush(uc.publisher)
	return result, nil
}

// checkCandidate проверяет, что человек может занять вакансию с ролью role.
// Владелец проекта не занимает вакансии собственного проекта.
func checkCandidate(candidate *entity.Person, role valueobject.Role, project *entity.Project) error {
	if project != nil && project.IsOwnedBy(candidate.ID) {
		return apperror.New(apperror.ErrCodeValidation, "владелец проекта не может занять вакансию своего проекта")
	}
	if !candidate.CanFill(role) {
		return apperror.New(apperror.ErrCodeValidation, "кандидат не подходит по роли вакансии")
	}
	return nil
}

// transition - общий каркас команд жизненного цикла.
type transition struct {
	uow       repository.UnitOfWork
	lifecycle *Lifecycle
	publisher notification.Publisher
}

type lockFunc func(ctx context.Context, repos repository.Repositories, slotID, actorID int64) (*entity.Slot, *entity.Project, error)

type applyFunc func(ctx context.Context, repos repository.Repositories, s *entity.Slot, project *entity.Project, outbox *notification.Outbox) error

func (t *transition) run(ctx context.Context, slotID, actorID int64, lockSlot lockFunc, apply applyFunc) (*entity.Slot, error) {
	outbox := &notification.Outbox{}
	var result *entity.Slot
	err := t.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		s, project, err := lockSlot(ctx, repos, slotID, actorID)
		if err != nil {
			return err
		}
		if err := apply(ctx, repos, s, project, outbox); err != nil {
			return err
		}
		result = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	outbox.Flush(t.publisher)
	return result, nil
}

type InviteUseCase struct {
	transition
}

func NewInviteUseCase(uow repository.UnitOfWork, lifecycle *Lifecycle, publisher notification.Publisher) *InviteUseCase {
	return &InviteUseCase{transition{uow: uow, lifecycle: lifecycle, publisher: publisher}}
}

func (uc *InviteUseCase) Execute(ctx context.Context, slotID, actorID int64) (*entity.Slot, error) {
	return uc.run(ctx, slotID, actorID, lockForOwner, uc.lifecycle.Invite)
}

type AcceptUseCase struct {
	transition
}

func NewAcceptUseCase(uow repository.UnitOfWork, lifecycle *Lifecycle, publisher notification.Publisher) *AcceptUseCase {
	return &AcceptUseCase{transition{uow: uow, lifecycle: lifecycle, publisher: publisher}}
}

func (uc *AcceptUseCase) Execute(ctx context.Context, slotID, actorID int64) (*entity.Slot, error) {
	return uc.run(ctx, slotID, actorID, lockForAssignee, uc.lifecycle.Accept)
}

type RefuseUseCase struct {
	transition
}

func NewRefuseUseCase(uow repository.UnitOfWork, lifecycle *Lifecycle, publisher notification.Publisher) *RefuseUseCase {
	return &RefuseUseCase{transition{uow: uow, lifecycle: lifecycle, publisher: publisher}}
}

func (uc *RefuseUseCase) Execute(ctx context.Context, slotID, actorID int64) (*entity.Slot, error) {
	return uc.run(ctx, slotID, actorID, lockForAssignee, uc.lifecycle.Refuse)
}

type FinalizeUseCase struct {
	transition
}

func NewFinalizeUseCase(uow repository.UnitOfWork, lifecycle *Lifecycle, publisher notification.Publisher) *FinalizeUseCase {
	return &FinalizeUseCase{transition{uow: uow, lifecycle: lifecycle, publisher: publisher}}
}

func (uc *FinalizeUseCase) Execute(ctx context.Context, slotID, actorID int64) (*entity.Slot, error) {
	return uc.run(ctx, slotID, actorID, lockForOwner, uc.lifecycle.Finalize)
}
