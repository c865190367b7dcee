package slot

import (
	"context"
	"errors"
	"time"

	"github.com/ignatzorin/conectar-backend/internal/domain/entity"
	"github.com/ignatzorin/conectar-backend/internal/domain/repository"
	"github.com/ignatzorin/conectar-backend/internal/domain/valueobject"
	"github.com/ignatzorin/conectar-backend/internal/infrastructure/memory"
	"github.com/ignatzorin/conectar-backend/internal/usecase/notification"
)

var fixedNow = time.Date(2024, time.May, 10, 9, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	published []*entity.Notification
}

func (p *recordingPublisher) Publish(notifications []*entity.Notification) {
	p.published = append(p.published, notifications...)
}

type fakeContracts struct {
	calls []repository.ContractData
	err   error
}

func (f *fakeContracts) Generate(ctx context.Context, data repository.ContractData) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.calls = append(f.calls, data)
	return "contrato.pdf", nil
}

type fakeStorage struct {
	deleted []string
}

func (f *fakeStorage) Save(ctx context.Context, content []byte) (string, error) {
	return "", errors.New("not supported")
}

func (f *fakeStorage) Delete(ctx context.Context, ref string) error {
	f.deleted = append(f.deleted, ref)
	return nil
}

type fixture struct {
	store     *memory.Store
	publisher *recordingPublisher
	contracts *fakeContracts
	lifecycle *Lifecycle
	owner     *entity.Person
	collab    *entity.Person
	project   *entity.Project
	skill     entity.Skill
}

func newFixture() *fixture {
	store := memory.NewStore()
	trigger := notification.NewTrigger(0)
	trigger.SetClock(func() time.Time { return fixedNow })

	f := &fixture{
		store:     store,
		publisher: &recordingPublisher{},
		contracts: &fakeContracts{},
	}
	f.lifecycle = NewLifecycle(trigger, f.contracts)

	f.skill = store.AddSkill("go")
	f.owner = store.AddPerson(&entity.Person{Name: "Ida", Roles: valueobject.NewRoles(false, false, true)})
	f.collab = store.AddPerson(&entity.Person{
		Name:   "Caio",
		Roles:  valueobject.NewRoles(false, true, false),
		Skills: []entity.Skill{f.skill},
	})
	f.project = store.AddProject(&entity.Project{Name: "Horta", OwnerID: f.owner.ID})
	return f
}

// slotIn кладёт вакансию в нужном состоянии, назначенную на collab.
func (f *fixture) slotIn(status valueobject.SlotStatus) *entity.Slot {
	personID := f.collab.ID
	return f.store.PutSlot(&entity.Slot{
		ProjectID: f.project.ID,
		PersonID:  &personID,
		Role:      valueobject.RoleCollaborator,
		Title:     "Backend",
		Status:    status,
		Skills:    []entity.Skill{f.skill},
		CreatedAt: fixedNow.Add(-time.Hour),
		UpdatedAt: fixedNow.Add(-time.Hour),
	})
}

func (f *fixture) ignore(personID, slotID int64) {
	err := f.store.Do(context.Background(), func(ctx context.Context, repos repository.Repositories) error {
		_, err := repos.Ignored.Add(ctx, personID, slotID)
		return err
	})
	if err != nil {
		panic(err)
	}
}

func (f *fixture) stored(id int64) *entity.Slot {
	s, ok := f.store.Slot(id)
	if !ok {
		return nil
	}
	return s
}
