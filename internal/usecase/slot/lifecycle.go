package slot

import (
	"context"

	"github.com/ignatzorin/conectar-backend/internal/domain/entity"
	"github.com/ignatzorin/conectar-backend/internal/domain/repository"
	"github.com/ignatzorin/conectar-backend/internal/logger"
	"github.com/ignatzorin/conectar-backend/internal/pkg/apperror"
	"github.com/ignatzorin/conectar-backend/internal/usecase/ignorelist"
	"github.com/ignatzorin/conectar-backend/internal/usecase/notification"
)

// Lifecycle применяет переходы вакансии вместе с их побочными эффектами.
// Все методы работают внутри уже открытой единицы работы.
type Lifecycle struct {
	trigger   *notification.Trigger
	contracts repository.ContractGenerator
}

func NewLifecycle(trigger *notification.Trigger, contracts repository.ContractGenerator) *Lifecycle {
	return &Lifecycle{trigger: trigger, contracts: contracts}
}

// Assign назначает кандидата, исключает его из повторного подбора и сообщает владельцу проекта.
func (l *Lifecycle) Assign(ctx context.Context, repos repository.Repositories, s *entity.Slot, project *entity.Project, actorID int64, candidate *entity.Person, outbox *notification.Outbox) error {
	s.AssignCandidate(candidate.ID, l.trigger.Now())
	if err := repos.Slots.Update(ctx, s); err != nil {
		return err
	}

	if _, err := ignorelist.NewTracker(repos.Ignored).Add(ctx, candidate.ID, s.ID); err != nil {
		return err
	}

	n, err := l.trigger.Emit(ctx, repos.Notifications, &entity.Notification{
		SenderID:    actorID,
		RecipientID: project.OwnerID,
		ProjectID:   &s.ProjectID,
		SlotID:      &s.ID,
		Message:     notification.MatchAssignedMessage(project.Name),
		Photo:       project.CoverImage,
	})
	if err != nil {
		return err
	}
	outbox.Add(n)

	logger.WithSlot(s.ID, s.ProjectID).WithField("person_id", candidate.ID).Info("slot: кандидат назначен")
	return nil
}

func (l *Lifecycle) Invite(ctx context.Context, repos repository.Repositories, s *entity.Slot, project *entity.Project, outbox *notification.Outbox) error {
	if err := s.Invite(l.trigger.Now()); err != nil {
		return err
	}
	if err := repos.Slots.Update(ctx, s); err != nil {
		return err
	}

	idealizer, err := repos.People.FindByID(ctx, project.OwnerID)
	if err != nil {
		return err
	}
	n, err := l.trigger.Emit(ctx, repos.Notifications, &entity.Notification{
		SenderID:    idealizer.ID,
		RecipientID: *s.PersonID,
		ProjectID:   &s.ProjectID,
		SlotID:      &s.ID,
		Message:     notification.InvitedMessage(idealizer.Name, project.Name),
		Photo:       project.CoverImage,
	})
	if err != nil {
		return err
	}
	outbox.Add(n)
	return nil
}

func (l *Lifecycle) Accept(ctx context.Context, repos repository.Repositories, s *entity.Slot, project *entity.Project, outbox *notification.Outbox) error {
	if err := s.Accept(l.trigger.Now()); err != nil {
		return err
	}
	if err := repos.Slots.Update(ctx, s); err != nil {
		return err
	}

	collaborator, err := repos.People.FindByID(ctx, *s.PersonID)
	if err != nil {
		return err
	}
	n, err := l.trigger.Emit(ctx, repos.Notifications, &entity.Notification{
		SenderID:    collaborator.ID,
		RecipientID: project.OwnerID,
		ProjectID:   &s.ProjectID,
		SlotID:      &s.ID,
		Message:     notification.AcceptedMessage(collaborator.Name, project.Name),
		Photo:       collaborator.ProfilePhoto,
	})
	if err != nil {
		return err
	}
	outbox.Add(n)
	return nil
}

// Refuse возвращает вакансию к подбору. Отказавшийся остаётся в списке исключённых.
func (l *Lifecycle) Refuse(ctx context.Context, repos repository.Repositories, s *entity.Slot, project *entity.Project, outbox *notification.Outbox) error {
	refusedBy, err := s.Refuse(l.trigger.Now())
	if err != nil {
		return err
	}
	if err := repos.Slots.Update(ctx, s); err != nil {
		return err
	}

	collaborator, err := repos.People.FindByID(ctx, refusedBy)
	if err != nil {
		return err
	}
	n, err := l.trigger.Emit(ctx, repos.Notifications, &entity.Notification{
		SenderID:    collaborator.ID,
		RecipientID: project.OwnerID,
		ProjectID:   &s.ProjectID,
		SlotID:      &s.ID,
		Message:     notification.RefusedMessage(collaborator.Name, project.Name),
		Photo:       collaborator.ProfilePhoto,
	})
	if err != nil {
		return err
	}
	outbox.Add(n)
	return nil
}

// Finalize закрывает соглашение: формирует контракт, уведомляет обе стороны и очищает список исключённых.
func (l *Lifecycle) Finalize(ctx context.Context, repos repository.Repositories, s *entity.Slot, project *entity.Project, outbox *notification.Outbox) error {
	now := l.trigger.Now()
	if err := s.Finalize(now); err != nil {
		return err
	}
	if err := repos.Slots.Update(ctx, s); err != nil {
		return err
	}

	idealizer, err := repos.People.FindByID(ctx, project.OwnerID)
	if err != nil {
		return err
	}
	collaborator, err := repos.People.FindByID(ctx, *s.PersonID)
	if err != nil {
		return err
	}

	data := repository.ContractData{
		Slot:         s,
		Project:      project,
		Idealizer:    idealizer,
		Collaborator: collaborator,
		SignedAt:     now,
	}
	if s.AgreementTypeID != nil {
		agreement, err := repos.AgreementTypes.FindByID(ctx, *s.AgreementTypeID)
		if err != nil {
			return err
		}
		data.AgreementType = agreement
	}

	if l.contracts == nil {
		return apperror.New(apperror.ErrCodeInternal, "генератор контрактов не настроен")
	}
	attachment, err := l.contracts.Generate(ctx, data)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось сформировать контракт")
	}

	parties := []struct{ from, to int64 }{
		{from: collaborator.ID, to: idealizer.ID},
		{from: idealizer.ID, to: collaborator.ID},
	}
	for _, p := range parties {
		n, err := l.trigger.Deliver(ctx, repos.Notifications, &entity.Notification{
			SenderID:    p.from,
			RecipientID: p.to,
			ProjectID:   &s.ProjectID,
			SlotID:      &s.ID,
			Message:     notification.FinalizedMessage,
			Photo:       project.CoverImage,
			Attachment:  &attachment,
		})
		if err != nil {
			return err
		}
		outbox.Add(n)
	}

	removed, err := ignorelist.NewTracker(repos.Ignored).ClearForSlot(ctx, s.ID)
	if err != nil {
		return err
	}

	logger.WithSlot(s.ID, s.ProjectID).WithField("cleared", len(removed)).Info("slot: соглашение завершено")
	return nil
}

// lockForOwner блокирует вакансию и проверяет, что действует владелец проекта.
func lockForOwner(ctx context.Context, repos repository.Repositories, slotID, actorID int64) (*entity.Slot, *entity.Project, error) {
	s, project, err := lock(ctx, repos, slotID)
	if err != nil {
		return nil, nil, err
	}
	if !project.IsOwnedBy(actorID) {
		return nil, nil, apperror.ErrForbidden
	}
	return s, project, nil
}

// lockForAssignee блокирует вакансию и проверяет, что действует назначенный кандидат.
func lockForAssignee(ctx context.Context, repos repository.Repositories, slotID, actorID int64) (*entity.Slot, *entity.Project, error) {
	s, project, err := lock(ctx, repos, slotID)
	if err != nil {
		return nil, nil, err
	}
	if !s.IsAssignedTo(actorID) {
		return nil, nil, apperror.ErrForbidden
	}
	return s, project, nil
}

func lock(ctx context.Context, repos repository.Repositories, slotID int64) (*entity.Slot, *entity.Project, error) {
	s, err := repos.Slots.FindByIDForUpdate(ctx, slotID)
	if err != nil {
		return nil, nil, err
	}
	project, err := repos.Projects.FindByID(ctx, s.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	return s, project, nil
}
