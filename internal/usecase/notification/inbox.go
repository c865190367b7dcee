package notification

import (
	"context"

	"github.com/ignatzorin/conectar-backend/internal/domain/entity"
	"github.com/ignatzorin/conectar-backend/internal/domain/repository"
	"github.com/ignatzorin/conectar-backend/internal/pkg/apperror"
)

type ListUseCase struct {
	uow repository.UnitOfWork
}

func NewListUseCase(uow repository.UnitOfWork) *ListUseCase {
	return &ListUseCase{uow: uow}
}

func (uc *ListUseCase) Execute(ctx context.Context, recipientID int64, unreadOnly bool) ([]*entity.Notification, error) {
	var result []*entity.Notification
	err := uc.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		result, err = repos.Notifications.FindByRecipient(ctx, recipientID, unreadOnly)
		return err
	})
	return result, err
}

type GetUseCase struct {
	uow repository.UnitOfWork
}

func NewGetUseCase(uow repository.UnitOfWork) *GetUseCase {
	return &GetUseCase{uow: uow}
}

func (uc *GetUseCase) Execute(ctx context.Context, id, recipientID int64) (*entity.Notification, error) {
	var result *entity.Notification
	err := uc.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		result, err = findOwned(ctx, repos, id, recipientID)
		return err
	})
	return result, err
}

type MarkReadUseCase struct {
	uow repository.UnitOfWork
}

func NewMarkReadUseCase(uow repository.UnitOfWork) *MarkReadUseCase {
	return &MarkReadUseCase{uow: uow}
}

func (uc *MarkReadUseCase) Execute(ctx context.Context, id, recipientID int64) (*entity.Notification, error) {
	var result *entity.Notification
	err := uc.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		n, err := findOwned(ctx, repos, id, recipientID)
		if err != nil {
			return err
		}
		if err := repos.Notifications.MarkRead(ctx, id); err != nil {
			return err
		}
		n.MarkRead()
		result = n
		return nil
	})
	return result, err
}

type MarkAllReadUseCase struct {
	uow repository.UnitOfWork
}

func NewMarkAllReadUseCase(uow repository.UnitOfWork) *MarkAllReadUseCase {
	return &MarkAllReadUseCase{uow: uow}
}

func (uc *MarkAllReadUseCase) Execute(ctx context.Context, recipientID int64) (int64, error) {
	var updated int64
	err := uc.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		updated, err = repos.Notifications.MarkAllRead(ctx, recipientID)
		return err
	})
	return updated, err
}

type DeleteUseCase struct {
	uow repository.UnitOfWork
}

func NewDeleteUseCase(uow repository.UnitOfWork) *DeleteUseCase {
	return &DeleteUseCase{uow: uow}
}

func (uc *DeleteUseCase) Execute(ctx context.Context, id, recipientID int64) error {
	return uc.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if _, err := findOwned(ctx, repos, id, recipientID); err != nil {
			return err
		}
		return repos.Notifications.Delete(ctx, id)
	})
}

type CountUnreadUseCase struct {
	uow repository.UnitOfWork
}

func NewCountUnreadUseCase(uow repository.UnitOfWork) *CountUnreadUseCase {
	return &CountUnreadUseCase{uow: uow}
}

func (uc *CountUnreadUseCase) Execute(ctx context.Context, recipientID int64) (int, error) {
	var count int
	err := uc.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		count, err = repos.Notifications.CountUnread(ctx, recipientID)
		return err
	})
	return count, err
}

func findOwned(ctx context.Context, repos repository.Repositories, id, recipientID int64) (*entity.Notification, error) {
	n, err := repos.Notifications.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !n.IsAddressedTo(recipientID) {
		return nil, apperror.New(apperror.ErrCodeForbidden, "у вас нет прав на это уведомление")
	}
	return n, nil
}
