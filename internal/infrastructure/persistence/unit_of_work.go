package persistence

import (
	"context"
	"fmt"

	"github.com/ignatzorin/conectar-backend/internal/domain/repository"
	"github.com/jmoiron/sqlx"
)

// UnitOfWork открывает транзакцию на каждый вызов Do и выдаёт привязанные к ней репозитории.
type UnitOfWork struct {
	db *sqlx.DB
}

func NewUnitOfWork(db *sqlx.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	tx, err := u.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, NewRepositories(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx error: %w, rollback error: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewRepositories собирает репозитории поверх соединения или транзакции.
func NewRepositories(q sqlx.ExtContext) repository.Repositories {
	return repository.Repositories{
		People:         NewPersonRepository(q),
		Tags:           NewTagRepository(q),
		Projects:       NewProjectRepository(q),
		AgreementTypes: NewAgreementTypeRepository(q),
		Slots:          NewSlotRepository(q),
		Ignored:        NewIgnoredCandidateRepository(q),
		Reactions:      NewReactionRepository(q),
		Notifications:  NewNotificationRepository(q),
	}
}
