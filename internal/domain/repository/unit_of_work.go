package repository

import "context"

// Repositories - набор репозиториев, привязанных к одной транзакции.
type Repositories struct {
	People         PersonRepository
	Tags           TagRepository
	Projects       ProjectRepository
	AgreementTypes AgreementTypeRepository
	Slots          SlotRepository
	Ignored        IgnoredCandidateRepository
	Reactions      ReactionRepository
	Notifications  NotificationRepository
}

// UnitOfWork выполняет fn в одной транзакции: ошибка из fn откатывает все изменения.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
