package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/conectar-backend/internal/config"
	"github.com/ignatzorin/conectar-backend/internal/db"
	"github.com/ignatzorin/conectar-backend/internal/domain/repository"
	"github.com/ignatzorin/conectar-backend/internal/infrastructure/contract"
	"github.com/ignatzorin/conectar-backend/internal/infrastructure/memory"
	"github.com/ignatzorin/conectar-backend/internal/infrastructure/persistence"
	"github.com/ignatzorin/conectar-backend/internal/logger"
	"github.com/ignatzorin/conectar-backend/internal/storage"
	"github.com/ignatzorin/conectar-backend/internal/usecase/ignorelist"
	"github.com/ignatzorin/conectar-backend/internal/usecase/matching"
	"github.com/ignatzorin/conectar-backend/internal/usecase/notification"
	"github.com/ignatzorin/conectar-backend/internal/usecase/reaction"
	"github.com/ignatzorin/conectar-backend/internal/usecase/slot"
)

// Container связывает хранилище, инфраструктуру и use cases.
type Container struct {
	Config      *config.Config
	DB          *sqlx.DB
	Memory      *memory.Store
	UnitOfWork  repository.UnitOfWork
	Attachments *storage.AttachmentStorage
	Trigger     *notification.Trigger
	Lifecycle   *slot.Lifecycle

	SelectBestCandidate  *matching.SelectBestCandidateUseCase
	SelectBestForProject *matching.SelectBestCandidatesForProjectUseCase
	ListIgnored          *ignorelist.ListForProjectUseCase
	CreateSlot           *slot.CreateUseCase
	GetSlot              *slot.GetUseCase
	ListSlotsByProject   *slot.ListByProjectUseCase
	ListInvitations      *slot.ListInvitationsUseCase
	EditSlot             *slot.EditUseCase
	DeleteSlot           *slot.DeleteUseCase
	AssignCandidate      *slot.AssignCandidateUseCase
	Invite               *slot.InviteUseCase
	Accept               *slot.AcceptUseCase
	Refuse               *slot.RefuseUseCase
	Finalize             *slot.FinalizeUseCase
	React                *reaction.ReactUseCase
	RemoveReaction       *reaction.RemoveUseCase
	ListNotifications    *notification.ListUseCase
	GetNotification      *notification.GetUseCase
	MarkNotificationRead *notification.MarkReadUseCase
	MarkAllRead          *notification.MarkAllReadUseCase
	DeleteNotification   *notification.DeleteUseCase
	CountUnread          *notification.CountUnreadUseCase
	Sweep                *notification.SweepUseCase
}

// Build открывает хранилище по STORAGE_DRIVER и собирает use cases.
// publisher может быть nil: уведомления тогда только сохраняются.
func Build(ctx context.Context, cfg *config.Config, publisher notification.Publisher) (*Container, error) {
	c := &Container{Config: cfg}

	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		c.Memory = memory.NewStore()
		c.UnitOfWork = c.Memory
		logger.Log.Warn("app: используется хранилище в памяти, данные не сохраняются между запусками")
		if cfg.MemorySeedPath != "" {
			if err := c.Memory.LoadSeedFile(cfg.MemorySeedPath); err != nil {
				return nil, err
			}
		}
	default:
		conn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := db.RunMigrations(ctx, conn, cfg.MigrationsPath); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("app: ошибка миграций: %w", err)
		}
		c.DB = conn
		c.UnitOfWork = persistence.NewUnitOfWork(conn)
	}

	attachments, err := storage.NewAttachmentStorage(cfg.AttachmentStoragePath, cfg.MaxAttachmentMB)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Attachments = attachments

	c.Trigger = notification.NewTrigger(cfg.NotificationCooldown)
	c.Lifecycle = slot.NewLifecycle(c.Trigger, contract.NewGenerator(attachments, cfg.ContractCity))
	c.wire(publisher)

	return c, nil
}

func (c *Container) wire(publisher notification.Publisher) {
	uow := c.UnitOfWork

	c.SelectBestCandidate = matching.NewSelectBestCandidateUseCase(uow, c.Lifecycle, publisher)
	c.SelectBestForProject = matching.NewSelectBestCandidatesForProjectUseCase(uow, c.Lifecycle, publisher)
	c.ListIgnored = ignorelist.NewListForProjectUseCase(uow)

	c.CreateSlot = slot.NewCreateUseCase(uow, c.Lifecycle, publisher, c.Config.MaxSlotsPerProject)
	c.GetSlot = slot.NewGetUseCase(uow)
	c.ListSlotsByProject = slot.NewListByProjectUseCase(uow)
	c.ListInvitations = slot.NewListInvitationsUseCase(uow)
	c.EditSlot = slot.NewEditUseCase(uow, c.Lifecycle)
	c.DeleteSlot = slot.NewDeleteUseCase(uow, c.Attachments)
	c.AssignCandidate = slot.NewAssignCandidateUseCase(uow, c.Lifecycle, publisher)
	c.Invite = slot.NewInviteUseCase(uow, c.Lifecycle, publisher)
	c.Accept = slot.NewAcceptUseCase(uow, c.Lifecycle, publisher)
	c.Refuse = slot.NewRefuseUseCase(uow, c.Lifecycle, publisher)
	c.Finalize = slot.NewFinalizeUseCase(uow, c.Lifecycle, publisher)

	c.React = reaction.NewReactUseCase(uow, c.Trigger, publisher)
	c.RemoveReaction = reaction.NewRemoveUseCase(uow)

	c.ListNotifications = notification.NewListUseCase(uow)
	c.GetNotification = notification.NewGetUseCase(uow)
	c.MarkNotificationRead = notification.NewMarkReadUseCase(uow)
	c.MarkAllRead = notification.NewMarkAllReadUseCase(uow)
	c.DeleteNotification = notification.NewDeleteUseCase(uow)
	c.CountUnread = notification.NewCountUnreadUseCase(uow)
	c.Sweep = notification.NewSweepUseCase(uow, c.Trigger, publisher, c.Config.InviteExpiryDays)
}

// Ping проверяет хранилище. Для памяти всегда успешно.
func (c *Container) Ping(ctx context.Context) error {
	if c.DB == nil {
		return nil
	}
	return db.Ping(ctx, c.DB)
}

// Close освобождает соединение с базой.
func (c *Container) Close() {
	if c.DB == nil {
		return
	}
	if err := c.DB.Close(); err != nil {
		logger.Log.WithError(err).Warn("app: ошибка закрытия базы")
	}
}
