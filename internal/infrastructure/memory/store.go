package memory

import (
	"context"
	"sync"

	"github.com/ignatzorin/conectar-backend/internal/domain/entity"
	"github.com/ignatzorin/conectar-backend/internal/domain/repository"
)

// Store - хранилище в памяти. Единицы работы выполняются строго по очереди,
// при ошибке состояние откатывается к снимку.
type Store struct {
	mu   sync.Mutex
	data *state
}

type state struct {
	people        map[int64]*entity.Person
	skills        map[int64]entity.Skill
	areas         map[int64]entity.Area
	projects      map[int64]*entity.Project
	agreements    map[int64]*entity.AgreementType
	slots         map[int64]*entity.Slot
	ignored       map[int64]*entity.IgnoredCandidate
	reactions     map[int64]*entity.Reaction
	notifications map[int64]*entity.Notification
	seq           map[string]int64
}

func NewStore() *Store {
	return &Store{data: &state{
		people:        make(map[int64]*entity.Person),
		skills:        make(map[int64]entity.Skill),
		areas:         make(map[int64]entity.Area),
		projects:      make(map[int64]*entity.Project),
		agreements:    make(map[int64]*entity.AgreementType),
		slots:         make(map[int64]*entity.Slot),
		ignored:       make(map[int64]*entity.IgnoredCandidate),
		reactions:     make(map[int64]*entity.Reaction),
		notifications: make(map[int64]*entity.Notification),
		seq:           make(map[string]int64),
	}}
}

// Do реализует repository.UnitOfWork.
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	defer func() {
		if p := recover(); p != nil {
			s.data = snapshot
			panic(p)
		}
		if err != nil {
			s.data = snapshot
		}
	}()

	return fn(ctx, s.repositories())
}

func (s *Store) repositories() repository.Repositories {
	return repository.Repositories{
		People:         &personRepo{s},
		Tags:           &tagRepo{s},
		Projects:       &projectRepo{s},
		AgreementTypes: &agreementRepo{s},
		Slots:          &slotRepo{s},
		Ignored:        &ignoredRepo{s},
		Reactions:      &reactionRepo{s},
		Notifications:  &notificationRepo{s},
	}
}

func (st *state) next(table string) int64 {
	st.seq[table]++
	return st.seq[table]
}

// bump не даёт последовательности выдать уже занятый ID.
func (st *state) bump(table string, id int64) {
	if id > st.seq[table] {
		st.seq[table] = id
	}
}

func (st *state) clone() *state {
	c := &state{
		people:        make(map[int64]*entity.Person, len(st.people)),
		skills:        make(map[int64]entity.Skill, len(st.skills)),
		areas:         make(map[int64]entity.Area, len(st.areas)),
		projects:      make(map[int64]*entity.Project, len(st.projects)),
		agreements:    make(map[int64]*entity.AgreementType, len(st.agreements)),
		slots:         make(map[int64]*entity.Slot, len(st.slots)),
		ignored:       make(map[int64]*entity.IgnoredCandidate, len(st.ignored)),
		reactions:     make(map[int64]*entity.Reaction, len(st.reactions)),
		notifications: make(map[int64]*entity.Notification, len(st.notifications)),
		seq:           make(map[string]int64, len(st.seq)),
	}
	for k, v := range st.people {
		c.people[k] = clonePerson(v)
	}
	for k, v := range st.skills {
		c.skills[k] = v
	}
	for k, v := range st.areas {
		c.areas[k] = v
	}
	for k, v := range st.projects {
		c.projects[k] = cloneProject(v)
	}
	for k, v := range st.agreements {
		a := *v
		c.agreements[k] = &a
	}
	for k, v := range st.slots {
		c.slots[k] = cloneSlot(v)
	}
	for k, v := range st.ignored {
		i := *v
		c.ignored[k] = &i
	}
	for k, v := range st.reactions {
		r := *v
		c.reactions[k] = &r
	}
	for k, v := range st.notifications {
		c.notifications[k] = cloneNotification(v)
	}
	for k, v := range st.seq {
		c.seq[k] = v
	}
	return c
}

func clonePerson(p *entity.Person) *entity.Person {
	c := *p
	c.Skills = append([]entity.Skill(nil), p.Skills...)
	c.Areas = append([]entity.Area(nil), p.Areas...)
	return &c
}

func cloneProject(p *entity.Project) *entity.Project {
	c := *p
	c.Skills = append([]entity.Skill(nil), p.Skills...)
	c.Areas = append([]entity.Area(nil), p.Areas...)
	return &c
}

func cloneSlot(s *entity.Slot) *entity.Slot {
	c := *s
	if s.PersonID != nil {
		id := *s.PersonID
		c.PersonID = &id
	}
	if s.AgreementTypeID != nil {
		id := *s.AgreementTypeID
		c.AgreementTypeID = &id
	}
	c.Skills = append([]entity.Skill(nil), s.Skills...)
	c.Areas = append([]entity.Area(nil), s.Areas...)
	return &c
}

func cloneNotification(n *entity.Notification) *entity.Notification {
	c := *n
	return &c
}
