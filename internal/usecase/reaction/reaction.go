package reaction

import (
	"context"

	"github.com/ignatzorin/conectar-backend/internal/domain/entity"
	"github.com/ignatzorin/conectar-backend/internal/domain/repository"
	"github.com/ignatzorin/conectar-backend/internal/domain/valueobject"
	"github.com/ignatzorin/conectar-backend/internal/usecase/notification"
)

type ReactUseCase struct {
	uow       repository.UnitOfWork
	trigger   *notification.Trigger
	publisher notification.Publisher
}

func NewReactUseCase(uow repository.UnitOfWork, trigger *notification.Trigger, publisher notification.Publisher) *ReactUseCase {
	return &ReactUseCase{uow: uow, trigger: trigger, publisher: publisher}
}

// Execute ставит реакцию и сообщает владельцу проекта. Повторная реакция ничего не меняет.
func (uc *ReactUseCase) Execute(ctx context.Context, personID, projectID int64, kind string) (*entity.Reaction, error) {
	k, err := valueobject.NewReactionKind(kind)
	if err != nil {
		return nil, err
	}

	outbox := &notification.Outbox{}
	var result *entity.Reaction
	err = uc.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		project, err := repos.Projects.FindByID(ctx, projectID)
		if err != nil {
			return err
		}
		person, err := repos.People.FindByID(ctx, personID)
		if err != nil {
			return err
		}

		r, created, err := repos.Reactions.Add(ctx, person.ID, project.ID, k)
		if err != nil {
			return err
		}
		result = r
		if !created || project.IsOwnedBy(person.ID) {
			return nil
		}

		message := notification.FavoriteMessage(person.Name, project.Name)
		if k == valueobject.ReactionInterest {
			message = notification.InterestMessage(person.Name, project.Name)
		}
		n, err := uc.trigger.Emit(ctx, repos.Notifications, &entity.Notification{
			SenderID:    person.ID,
			RecipientID: project.OwnerID,
			ProjectID:   &project.ID,
			Message:     message,
			Photo:       project.CoverImage,
		})
		if err != nil {
			return err
		}
		outbox.Add(n)
		return nil
	})
	if err != nil {
		return nil, err
	}

	outbox.Flush(uc.publisher)
	return result, nil
}

type RemoveUseCase struct {
	uow repository.UnitOfWork
}

func NewRemoveUseCase(uow repository.UnitOfWork) *RemoveUseCase {
	return &RemoveUseCase{uow: uow}
}

func (uc *RemoveUseCase) Execute(ctx context.Context, personID, projectID int64, kind string) error {
	k, err := valueobject.NewReactionKind(kind)
	if err != nil {
		return err
	}
	return uc.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		return repos.Reactions.Remove(ctx, personID, projectID, k)
	})
}
