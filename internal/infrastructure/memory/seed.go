package memory

import (
	"sort"

	"github.com/ignatzorin/conectar-backend/internal/domain/entity"
)

// Методы наполнения вызываются загрузкой seed (LoadSeed) и тестами.

func (s *Store) AddSkill(name string) entity.Skill {
	s.mu.Lock()
	defer s.mu.Unlock()

	skill := entity.Skill{ID: s.data.next("skills"), Name: name}
	s.data.skills[skill.ID] = skill
	return skill
}

func (s *Store) AddArea(description string, parentID *int64) entity.Area {
	s.mu.Lock()
	defer s.mu.Unlock()

	area := entity.Area{ID: s.data.next("areas"), Description: description, ParentID: parentID}
	s.data.areas[area.ID] = area
	return area
}

// AddPerson сохраняет человека. Нулевой ID заменяется следующим по порядку.
func (s *Store) AddPerson(p *entity.Person) *entity.Person {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == 0 {
		p.ID = s.data.next("people")
	}
	s.data.bump("people", p.ID)
	s.data.people[p.ID] = clonePerson(p)
	return p
}

func (s *Store) AddProject(p *entity.Project) *entity.Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == 0 {
		p.ID = s.data.next("projects")
	}
	s.data.bump("projects", p.ID)
	s.data.projects[p.ID] = cloneProject(p)
	return p
}

func (s *Store) AddAgreementType(description string) *entity.AgreementType {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := &entity.AgreementType{ID: s.data.next("agreement_types"), Description: description}
	s.data.agreements[a.ID] = a
	return a
}

// PutSlot сохраняет вакансию как есть, минуя правила создания.
func (s *Store) PutSlot(slot *entity.Slot) *entity.Slot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slot.ID == 0 {
		slot.ID = s.data.next("slots")
	}
	s.data.bump("slots", slot.ID)
	s.data.slots[slot.ID] = cloneSlot(slot)
	return slot
}

func (s *Store) Slot(id int64) (*entity.Slot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot, ok := s.data.slots[id]
	if !ok {
		return nil, false
	}
	return cloneSlot(slot), true
}

func (s *Store) IgnoredIDs(slotID int64) []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := []int64{}
	for _, ic := range s.data.ignored {
		if ic.SlotID == slotID {
			ids = append(ids, ic.PersonID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Notifications возвращает все уведомления по возрастанию ID.
func (s *Store) Notifications() []*entity.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*entity.Notification, 0, len(s.data.notifications))
	for _, n := range s.data.notifications {
		out = append(out, cloneNotification(n))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
