package notification

import (
	"context"

	"github.com/ignatzorin/conectar-backend/internal/domain/entity"
	"github.com/ignatzorin/conectar-backend/internal/domain/repository"
	"github.com/ignatzorin/conectar-backend/internal/domain/valueobject"
	"github.com/ignatzorin/conectar-backend/internal/logger"
	"github.com/ignatzorin/conectar-backend/internal/pkg/apperror"
	"github.com/sirupsen/logrus"
)

// DefaultExpiryDays - сколько суток кандидат может не отвечать на приглашение.
const DefaultExpiryDays = 5

type SweepKind string

const (
	SweepPendingIdealizer SweepKind = "pending-idealizer"
	SweepInvitations      SweepKind = "invitations"
	SweepCompleteness     SweepKind = "completeness"
	SweepAll              SweepKind = "all"
)

func ParseSweepKind(kind string) (SweepKind, error) {
	switch k := SweepKind(kind); k {
	case SweepPendingIdealizer, SweepInvitations, SweepCompleteness, SweepAll:
		return k, nil
	}
	return "", apperror.New(apperror.ErrCodeValidation, "неизвестный тип проверки")
}

// SweepResult - итог периодической проверки.
type SweepResult struct {
	Notifications []*entity.Notification
	ExpiredSlots  []int64
}

func (r *SweepResult) merge(other *SweepResult) {
	r.Notifications = append(r.Notifications, other.Notifications...)
	r.ExpiredSlots = append(r.ExpiredSlots, other.ExpiredSlots...)
}

// SweepUseCase выполняет периодические проверки (checagem), запускаемые планировщиком.
type SweepUseCase struct {
	uow        repository.UnitOfWork
	trigger    *Trigger
	publisher  Publisher
	expiryDays int
}

func NewSweepUseCase(uow repository.UnitOfWork, trigger *Trigger, publisher Publisher, expiryDays int) *SweepUseCase {
	if expiryDays <= 0 {
		expiryDays = DefaultExpiryDays
	}
	return &SweepUseCase{uow: uow, trigger: trigger, publisher: publisher, expiryDays: expiryDays}
}

func (uc *SweepUseCase) Execute(ctx context.Context, kind SweepKind) (*SweepResult, error) {
	var (
		result *SweepResult
		err    error
	)
	switch kind {
	case SweepPendingIdealizer:
		result, err = uc.PendingIdealizer(ctx)
	case SweepInvitations:
		result, err = uc.Invitations(ctx)
	case SweepCompleteness:
		result, err = uc.Completeness(ctx)
	case SweepAll:
		result, err = uc.all(ctx)
	default:
		return nil, apperror.New(apperror.ErrCodeValidation, "неизвестный тип проверки")
	}
	if err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"sweep":         kind,
		"notifications": len(result.Notifications),
		"expired":       len(result.ExpiredSlots),
	}).Info("sweep: проверка завершена")
	return result, nil
}

func (uc *SweepUseCase) all(ctx context.Context) (*SweepResult, error) {
	result := &SweepResult{}
	for _, run := range []func(context.Context) (*SweepResult, error){uc.PendingIdealizer, uc.Invitations, uc.Completeness} {
		r, err := run(ctx)
		if err != nil {
			return nil, err
		}
		result.merge(r)
	}
	return result, nil
}

// PendingIdealizer напоминает владельцу о кандидатах, ожидающих оценки. Одно уведомление на проект.
func (uc *SweepUseCase) PendingIdealizer(ctx context.Context) (*SweepResult, error) {
	outbox := &Outbox{}
	err := uc.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		slots, err := repos.Slots.FindByStatus(ctx, valueobject.SlotStatusPendingIdealizer)
		if err != nil {
			return err
		}

		notified := make(map[int64]struct{})
		for _, s := range slots {
			if s.IsOpen() {
				continue
			}
			if _, ok := notified[s.ProjectID]; ok {
				continue
			}
			notified[s.ProjectID] = struct{}{}

			project, err := repos.Projects.FindByID(ctx, s.ProjectID)
			if err != nil {
				return err
			}
			n, err := uc.trigger.Emit(ctx, repos.Notifications, &entity.Notification{
				SenderID:    project.OwnerID,
				RecipientID: project.OwnerID,
				ProjectID:   &project.ID,
				SlotID:      int64Ptr(s.ID),
				Message:     MatchAssignedMessage(project.Name),
				Photo:       project.CoverImage,
			})
			if err != nil {
				return err
			}
			outbox.Add(n)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &SweepResult{Notifications: outbox.Items()}
	outbox.Flush(uc.publisher)
	return result, nil
}

// Invitations напоминает кандидатам об открытых приглашениях, а просроченные снимает.
// Каждая вакансия обрабатывается в своей транзакции под блокировкой строки.
func (uc *SweepUseCase) Invitations(ctx context.Context) (*SweepResult, error) {
	var pending []*entity.Slot
	err := uc.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		pending, err = repos.Slots.FindByStatus(ctx, valueobject.SlotStatusPendingCollaborator)
		return err
	})
	if err != nil {
		return nil, err
	}

	result := &SweepResult{}
	for _, candidate := range pending {
		outbox := &Outbox{}
		expired := false
		err := uc.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
			s, err := repos.Slots.FindByIDForUpdate(ctx, candidate.ID)
			if err != nil {
				return err
			}
			if s.Status != valueobject.SlotStatusPendingCollaborator || s.PersonID == nil {
				return nil
			}
			expired, err = uc.checkInvitation(ctx, repos, s, outbox)
			return err
		})
		if err != nil {
			if apperror.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		if expired {
			result.ExpiredSlots = append(result.ExpiredSlots, candidate.ID)
		}
		result.Notifications = append(result.Notifications, outbox.Items()...)
		outbox.Flush(uc.publisher)
	}
	return result, nil
}

func (uc *SweepUseCase) checkInvitation(ctx context.Context, repos repository.Repositories, s *entity.Slot, outbox *Outbox) (bool, error) {
	now := uc.trigger.Now()
	project, err := repos.Projects.FindByID(ctx, s.ProjectID)
	if err != nil {
		return false, err
	}
	candidate, err := repos.People.FindByID(ctx, *s.PersonID)
	if err != nil {
		return false, err
	}

	deadline := uc.expiryDays + 1
	elapsed := s.ElapsedDays(now)
	if elapsed < deadline {
		idealizer, err := repos.People.FindByID(ctx, project.OwnerID)
		if err != nil {
			return false, err
		}
		n, err := uc.trigger.Emit(ctx, repos.Notifications, &entity.Notification{
			SenderID:    idealizer.ID,
			RecipientID: candidate.ID,
			ProjectID:   &project.ID,
			SlotID:      int64Ptr(s.ID),
			Message:     ReminderMessage(deadline-elapsed, idealizer.Name, project.Name),
			Photo:       idealizer.ProfilePhoto,
		})
		if err != nil {
			return false, err
		}
		outbox.Add(n)
		return false, nil
	}

	n, err := uc.trigger.Emit(ctx, repos.Notifications, &entity.Notification{
		SenderID:    candidate.ID,
		RecipientID: project.OwnerID,
		ProjectID:   &project.ID,
		SlotID:      int64Ptr(s.ID),
		Message:     ExpiredMessage(candidate.Name),
		Photo:       candidate.ProfilePhoto,
	})
	if err != nil {
		return false, err
	}
	outbox.Add(n)

	expired, err := s.Expire(now, uc.expiryDays)
	if err != nil || !expired {
		return false, err
	}
	if err := repos.Slots.Update(ctx, s); err != nil {
		return false, err
	}
	logger.WithSlot(s.ID, s.ProjectID).WithField("person_id", candidate.ID).Info("sweep: приглашение истекло")
	return true, nil
}

// Completeness просит владельцев дополнить проекты и вакансии без навыков и областей.
func (uc *SweepUseCase) Completeness(ctx context.Context) (*SweepResult, error) {
	outbox := &Outbox{}
	err := uc.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		projects, err := repos.Projects.ListWithoutRequirements(ctx)
		if err != nil {
			return err
		}

		notified := make(map[int64]struct{}, len(projects))
		for _, project := range projects {
			notified[project.ID] = struct{}{}
			n, err := uc.trigger.Emit(ctx, repos.Notifications, &entity.Notification{
				SenderID:    project.OwnerID,
				RecipientID: project.OwnerID,
				ProjectID:   int64Ptr(project.ID),
				Message:     CompleteProjectMessage(project.Name),
				Photo:       project.CoverImage,
			})
			if err != nil {
				return err
			}
			outbox.Add(n)
		}

		slots, err := repos.Slots.FindWithoutRequirements(ctx)
		if err != nil {
			return err
		}
		for _, s := range slots {
			if _, ok := notified[s.ProjectID]; ok {
				continue
			}
			notified[s.ProjectID] = struct{}{}

			project, err := repos.Projects.FindByID(ctx, s.ProjectID)
			if err != nil {
				return err
			}
			n, err := uc.trigger.Emit(ctx, repos.Notifications, &entity.Notification{
				SenderID:    project.OwnerID,
				RecipientID: project.OwnerID,
				ProjectID:   int64Ptr(project.ID),
				Message:     CompleteSlotsMessage(project.Name),
				Photo:       project.CoverImage,
			})
			if err != nil {
				return err
			}
			outbox.Add(n)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &SweepResult{Notifications: outbox.Items()}
	outbox.Flush(uc.publisher)
	return result, nil
}

func int64Ptr(v int64) *int64 {
	return &v
}
