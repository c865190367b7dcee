package memory

import (
	"context"
	"sort"
	"time"

	"github.com/ignatzorin/conectar-backend/internal/domain/entity"
	"github.com/ignatzorin/conectar-backend/internal/domain/valueobject"
	"github.com/ignatzorin/conectar-backend/internal/pkg/apperror"
)

// Репозитории вызываются только внутри Store.Do, поэтому мьютекс уже захвачен.

type personRepo struct{ s *Store }

func (r *personRepo) FindByID(ctx context.Context, id int64) (*entity.Person, error) {
	p, ok := r.s.data.people[id]
	if !ok {
		return nil, apperror.ErrPersonNotFound
	}
	return clonePerson(p), nil
}

func (r *personRepo) FindByRoleExcluding(ctx context.Context, role valueobject.Role, excluded []int64) ([]*entity.Person, error) {
	skip := toSet(excluded)
	out := []*entity.Person{}
	for _, p := range r.s.data.people {
		if _, ok := skip[p.ID]; ok || !p.Roles.Has(role) {
			continue
		}
		out = append(out, clonePerson(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type tagRepo struct{ s *Store }

func (r *tagRepo) FindSkillsByIDs(ctx context.Context, ids []int64) ([]entity.Skill, error) {
	out := []entity.Skill{}
	for _, id := range ids {
		if skill, ok := r.s.data.skills[id]; ok {
			out = append(out, skill)
		}
	}
	return out, nil
}

func (r *tagRepo) FindAreasByIDs(ctx context.Context, ids []int64) ([]entity.Area, error) {
	out := []entity.Area{}
	for _, id := range ids {
		if area, ok := r.s.data.areas[id]; ok {
			out = append(out, area)
		}
	}
	return out, nil
}

type projectRepo struct{ s *Store }

func (r *projectRepo) FindByID(ctx context.Context, id int64) (*entity.Project, error) {
	p, ok := r.s.data.projects[id]
	if !ok {
		return nil, apperror.ErrProjectNotFound
	}
	return cloneProject(p), nil
}

func (r *projectRepo) ListWithoutRequirements(ctx context.Context) ([]*entity.Project, error) {
	out := []*entity.Project{}
	for _, p := range r.s.data.projects {
		if !p.HasRequirements() {
			out = append(out, cloneProject(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type agreementRepo struct{ s *Store }

func (r *agreementRepo) FindByID(ctx context.Context, id int64) (*entity.AgreementType, error) {
	a, ok := r.s.data.agreements[id]
	if !ok {
		return nil, apperror.ErrAgreementTypeNotFound
	}
	c := *a
	return &c, nil
}

type slotRepo struct{ s *Store }

func (r *slotRepo) Create(ctx context.Context, slot *entity.Slot) error {
	slot.ID = r.s.data.next("slots")
	r.s.data.slots[slot.ID] = cloneSlot(slot)
	return nil
}

func (r *slotRepo) Update(ctx context.Context, slot *entity.Slot) error {
	current, ok := r.s.data.slots[slot.ID]
	if !ok {
		return apperror.ErrSlotNotFound
	}
	updated := cloneSlot(slot)
	updated.Skills, updated.Areas = current.Skills, current.Areas
	r.s.data.slots[slot.ID] = updated
	return nil
}

func (r *slotRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.s.data.slots[id]; !ok {
		return apperror.ErrSlotNotFound
	}
	delete(r.s.data.slots, id)
	for key, ic := range r.s.data.ignored {
		if ic.SlotID == id {
			delete(r.s.data.ignored, key)
		}
	}
	for _, n := range r.s.data.notifications {
		if n.SlotID != nil && *n.SlotID == id {
			n.SlotID = nil
		}
	}
	return nil
}

func (r *slotRepo) FindByID(ctx context.Context, id int64) (*entity.Slot, error) {
	slot, ok := r.s.data.slots[id]
	if !ok {
		return nil, apperror.ErrSlotNotFound
	}
	return cloneSlot(slot), nil
}

func (r *slotRepo) FindByIDForUpdate(ctx context.Context, id int64) (*entity.Slot, error) {
	return r.FindByID(ctx, id)
}

func (r *slotRepo) FindByProject(ctx context.Context, projectID int64) ([]*entity.Slot, error) {
	return r.filter(func(s *entity.Slot) bool { return s.ProjectID == projectID }), nil
}

func (r *slotRepo) LockOpenByProject(ctx context.Context, projectID int64) ([]*entity.Slot, error) {
	return r.filter(func(s *entity.Slot) bool { return s.ProjectID == projectID && s.IsOpen() }), nil
}

func (r *slotRepo) FindByStatus(ctx context.Context, status valueobject.SlotStatus) ([]*entity.Slot, error) {
	return r.filter(func(s *entity.Slot) bool { return s.Status == status }), nil
}

func (r *slotRepo) FindByPersonAndStatus(ctx context.Context, personID int64, status valueobject.SlotStatus, limit int) ([]*entity.Slot, error) {
	out := r.filter(func(s *entity.Slot) bool { return s.IsAssignedTo(personID) && s.Status == status })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *slotRepo) FindWithoutRequirements(ctx context.Context) ([]*entity.Slot, error) {
	return r.filter(func(s *entity.Slot) bool { return len(s.Skills) == 0 && len(s.Areas) == 0 }), nil
}

func (r *slotRepo) CountByProject(ctx context.Context, projectID int64) (int, error) {
	slots, _ := r.FindByProject(ctx, projectID)
	return len(slots), nil
}

func (r *slotRepo) ReplaceTags(ctx context.Context, slotID int64, skillIDs, areaIDs []int64) error {
	slot, ok := r.s.data.slots[slotID]
	if !ok {
		return apperror.ErrSlotNotFound
	}
	slot.Skills = slot.Skills[:0:0]
	for _, id := range skillIDs {
		if skill, ok := r.s.data.skills[id]; ok {
			slot.Skills = append(slot.Skills, skill)
		}
	}
	slot.Areas = slot.Areas[:0:0]
	for _, id := range areaIDs {
		if area, ok := r.s.data.areas[id]; ok {
			slot.Areas = append(slot.Areas, area)
		}
	}
	return nil
}

func (r *slotRepo) filter(keep func(*entity.Slot) bool) []*entity.Slot {
	out := []*entity.Slot{}
	for _, slot := range r.s.data.slots {
		if keep(slot) {
			out = append(out, cloneSlot(slot))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type ignoredRepo struct{ s *Store }

func (r *ignoredRepo) Add(ctx context.Context, personID, slotID int64) (*entity.IgnoredCandidate, error) {
	for _, ic := range r.s.data.ignored {
		if ic.PersonID == personID && ic.SlotID == slotID {
			c := *ic
			return &c, nil
		}
	}
	ic := &entity.IgnoredCandidate{
		ID:        r.s.data.next("ignored_candidates"),
		PersonID:  personID,
		SlotID:    slotID,
		CreatedAt: time.Now(),
	}
	r.s.data.ignored[ic.ID] = ic
	c := *ic
	return &c, nil
}

func (r *ignoredRepo) PersonIDsBySlots(ctx context.Context, slotIDs []int64) ([]int64, error) {
	slots := toSet(slotIDs)
	out := []int64{}
	for _, ic := range r.s.data.ignored {
		if _, ok := slots[ic.SlotID]; ok {
			out = append(out, ic.PersonID)
		}
	}
	return out, nil
}

func (r *ignoredRepo) DeleteBySlot(ctx context.Context, slotID int64) ([]*entity.IgnoredCandidate, error) {
	removed := []*entity.IgnoredCandidate{}
	for key, ic := range r.s.data.ignored {
		if ic.SlotID == slotID {
			removed = append(removed, ic)
			delete(r.s.data.ignored, key)
		}
	}
	sort.Slice(removed, func(i, j int) bool { return removed[i].ID < removed[j].ID })
	return removed, nil
}

type reactionRepo struct{ s *Store }

func (r *reactionRepo) Add(ctx context.Context, personID, projectID int64, kind valueobject.ReactionKind) (*entity.Reaction, bool, error) {
	if existing := r.find(personID, projectID, kind); existing != nil {
		c := *existing
		return &c, false, nil
	}
	reaction := &entity.Reaction{
		ID:        r.s.data.next("reactions"),
		PersonID:  personID,
		ProjectID: projectID,
		Kind:      kind,
		CreatedAt: time.Now(),
	}
	r.s.data.reactions[reaction.ID] = reaction
	c := *reaction
	return &c, true, nil
}

func (r *reactionRepo) Remove(ctx context.Context, personID, projectID int64, kind valueobject.ReactionKind) error {
	existing := r.find(personID, projectID, kind)
	if existing == nil {
		return apperror.ErrReactionNotFound
	}
	delete(r.s.data.reactions, existing.ID)
	return nil
}

func (r *reactionRepo) Exists(ctx context.Context, personID, projectID int64, kind valueobject.ReactionKind) (bool, error) {
	return r.find(personID, projectID, kind) != nil, nil
}

func (r *reactionRepo) PersonIDsByProject(ctx context.Context, projectID int64, kind valueobject.ReactionKind) ([]int64, error) {
	out := []int64{}
	for _, reaction := range r.s.data.reactions {
		if reaction.ProjectID == projectID && reaction.Kind == kind {
			out = append(out, reaction.PersonID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (r *reactionRepo) find(personID, projectID int64, kind valueobject.ReactionKind) *entity.Reaction {
	for _, reaction := range r.s.data.reactions {
		if reaction.PersonID == personID && reaction.ProjectID == projectID && reaction.Kind == kind {
			return reaction
		}
	}
	return nil
}

type notificationRepo struct{ s *Store }

func (r *notificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	n.ID = r.s.data.next("notifications")
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	r.s.data.notifications[n.ID] = cloneNotification(n)
	return nil
}

func (r *notificationRepo) FindByID(ctx context.Context, id int64) (*entity.Notification, error) {
	n, ok := r.s.data.notifications[id]
	if !ok {
		return nil, apperror.ErrNotificationNotFound
	}
	return cloneNotification(n), nil
}

func (r *notificationRepo) FindByRecipient(ctx context.Context, recipientID int64, unreadOnly bool) ([]*entity.Notification, error) {
	out := []*entity.Notification{}
	for _, n := range r.s.data.notifications {
		if n.RecipientID != recipientID || (unreadOnly && n.Read) {
			continue
		}
		out = append(out, cloneNotification(n))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *notificationRepo) ExistsUnreadSince(ctx context.Context, recipientID int64, message string, since time.Time) (bool, error) {
	for _, n := range r.s.data.notifications {
		if n.RecipientID == recipientID && n.Message == message && !n.Read && !n.CreatedAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

func (r *notificationRepo) CountUnread(ctx context.Context, recipientID int64) (int, error) {
	count := 0
	for _, n := range r.s.data.notifications {
		if n.RecipientID == recipientID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *notificationRepo) MarkRead(ctx context.Context, id int64) error {
	n, ok := r.s.data.notifications[id]
	if !ok {
		return apperror.ErrNotificationNotFound
	}
	n.Read = true
	return nil
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, recipientID int64) (int64, error) {
	var updated int64
	for _, n := range r.s.data.notifications {
		if n.RecipientID == recipientID && !n.Read {
			n.Read = true
			updated++
		}
	}
	return updated, nil
}

func (r *notificationRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.s.data.notifications[id]; !ok {
		return apperror.ErrNotificationNotFound
	}
	delete(r.s.data.notifications, id)
	return nil
}

func (r *notificationRepo) AttachmentsBySlot(ctx context.Context, slotID int64) ([]string, error) {
	seen := make(map[string]struct{})
	out := []string{}
	for _, n := range r.s.data.notifications {
		if n.SlotID == nil || *n.SlotID != slotID || n.Attachment == nil {
			continue
		}
		if _, ok := seen[*n.Attachment]; ok {
			continue
		}
		seen[*n.Attachment] = struct{}{}
		out = append(out, *n.Attachment)
	}
	sort.Strings(out)
	return out, nil
}

func toSet(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
