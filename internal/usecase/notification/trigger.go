package notification

import (
	"context"
	"time"

	"github.com/ignatzorin/conectar-backend/internal/domain/entity"
	"github.com/ignatzorin/conectar-backend/internal/domain/repository"
	"github.com/ignatzorin/conectar-backend/internal/logger"
	"github.com/sirupsen/logrus"
)

// DefaultCooldown - окно, в котором одинаковое непрочитанное уведомление не повторяется.
const DefaultCooldown = 96 * time.Hour

// Publisher доставляет созданные уведомления в реальном времени.
type Publisher interface {
	Publish(notifications []*entity.Notification)
}

// Trigger создаёт уведомления на переходах вакансии.
type Trigger struct {
	cooldown time.Duration
	now      func() time.Time
}

func NewTrigger(cooldown time.Duration) *Trigger {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Trigger{cooldown: cooldown, now: time.Now}
}

// SetClock подменяет источник времени.
func (t *Trigger) SetClock(now func() time.Time) {
	t.now = now
}

func (t *Trigger) Now() time.Time {
	return t.now()
}

// Emit сохраняет уведомление, если у получателя нет такого же непрочитанного
// за окно cooldown. Возвращает nil, когда уведомление подавлено.
func (t *Trigger) Emit(ctx context.Context, repo repository.NotificationRepository, n *entity.Notification) (*entity.Notification, error) {
	now := t.now()
	exists, err := repo.ExistsUnreadSince(ctx, n.RecipientID, n.Message, now.Add(-t.cooldown))
	if err != nil {
		return nil, err
	}
	if exists {
		logger.Log.WithFields(logrus.Fields{
			"recipient_id": n.RecipientID,
			"message":      n.Message,
		}).Debug("notification: дубликат подавлен")
		return nil, nil
	}
	return t.Deliver(ctx, repo, n)
}

// Deliver сохраняет уведомление без проверки на дубликаты.
func (t *Trigger) Deliver(ctx context.Context, repo repository.NotificationRepository, n *entity.Notification) (*entity.Notification, error) {
	n.Read = false
	n.CreatedAt = t.now()
	if err := repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Outbox копит уведомления транзакции до коммита.
type Outbox struct {
	items []*entity.Notification
}

func (o *Outbox) Add(n *entity.Notification) {
	if n != nil {
		o.items = append(o.items, n)
	}
}

func (o *Outbox) Items() []*entity.Notification {
	return o.items
}

// Flush отдаёт накопленное издателю. Вызывается только после успешного коммита.
func (o *Outbox) Flush(p Publisher) {
	if p == nil || len(o.items) == 0 {
		return
	}
	p.Publish(o.items)
	o.items = nil
}
