package notification

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/conectar-backend/internal/domain/entity"
	"github.com/ignatzorin/conectar-backend/internal/domain/valueobject"
	"github.com/ignatzorin/conectar-backend/internal/infrastructure/memory"
	"github.com/ignatzorin/conectar-backend/internal/pkg/apperror"
)

type sweepFixture struct {
	clock     *clock
	store     *memory.Store
	publisher *recordingPublisher
	sweep     *SweepUseCase
	owner     *entity.Person
	candidate *entity.Person
	project   *entity.Project
	skill     entity.Skill
}

func newSweepFixture() *sweepFixture {
	c := &clock{now: time.Date(2024, time.January, 30, 12, 0, 0, 0, time.UTC)}
	store := memory.NewStore()
	publisher := &recordingPublisher{}

	f := &sweepFixture{
		clock:     c,
		store:     store,
		publisher: publisher,
		sweep:     NewSweepUseCase(store, newTestTrigger(c), publisher, 0),
	}
	f.skill = store.AddSkill("go")
	f.owner = store.AddPerson(&entity.Person{Name: "Ida", Roles: valueobject.NewRoles(false, false, true)})
	f.candidate = store.AddPerson(&entity.Person{Name: "Caio", Roles: valueobject.NewRoles(false, true, false)})
	f.project = store.AddProject(&entity.Project{
		Name:    "Horta",
		OwnerID: f.owner.ID,
		Skills:  []entity.Skill{f.skill},
	})
	return f
}

func (f *sweepFixture) slot(status valueobject.SlotStatus, personID *int64, updatedAt time.Time, skills ...entity.Skill) *entity.Slot {
	return f.store.PutSlot(&entity.Slot{
		ProjectID: f.project.ID,
		PersonID:  personID,
		Role:      valueobject.RoleCollaborator,
		Title:     "Backend",
		Status:    status,
		Skills:    skills,
		CreatedAt: updatedAt,
		UpdatedAt: updatedAt,
	})
}

func TestParseSweepKind(t *testing.T) {
	for _, kind := range []string{"pending-idealizer", "invitations", "completeness", "all"} {
		k, err := ParseSweepKind(kind)
		require.NoError(t, err)
		assert.Equal(t, SweepKind(kind), k)
	}

	_, err := ParseSweepKind("weekly")
	assert.True(t, apperror.IsValidation(err))

	_, err = newSweepFixture().sweep.Execute(context.Background(), SweepKind("weekly"))
	assert.True(t, apperror.IsValidation(err))
}

func TestSweepInvitations_RemindsBeforeDeadline(t *testing.T) {
	f := newSweepFixture()
	// пять суток: срок ещё не вышел
	invitedAt := f.clock.now.Add(-5 * 24 * time.Hour)
	s := f.slot(valueobject.SlotStatusPendingCollaborator, &f.candidate.ID, invitedAt, f.skill)

	result, err := f.sweep.Execute(context.Background(), SweepInvitations)
	require.NoError(t, err)
	assert.Empty(t, result.ExpiredSlots)
	require.Len(t, result.Notifications, 1)

	n := result.Notifications[0]
	assert.Equal(t, f.candidate.ID, n.RecipientID)
	assert.Equal(t, ReminderMessage(1, "Ida", "Horta"), n.Message)

	stored, _ := f.store.Slot(s.ID)
	assert.Equal(t, valueobject.SlotStatusPendingCollaborator, stored.Status)
	assert.True(t, stored.IsAssignedTo(f.candidate.ID))
	require.Len(t, f.publisher.batches, 1)
}

func TestSweepInvitations_ReminderCountsDown(t *testing.T) {
	for elapsed := 0; elapsed <= 5; elapsed++ {
		t.Run(fmt.Sprintf("day %d", elapsed), func(t *testing.T) {
			f := newSweepFixture()
			f.slot(valueobject.SlotStatusPendingCollaborator, &f.candidate.ID,
				f.clock.now.Add(-time.Duration(elapsed)*24*time.Hour), f.skill)

			result, err := f.sweep.Invitations(context.Background())
			require.NoError(t, err)
			require.Len(t, result.Notifications, 1)
			assert.Equal(t, ReminderMessage(6-elapsed, "Ida", "Horta"), result.Notifications[0].Message)
		})
	}
}

func TestSweepInvitations_ExpiresAcrossMonthBoundary(t *testing.T) {
	f := newSweepFixture()
	f.clock.now = time.Date(2024, time.February, 5, 12, 0, 0, 0, time.UTC)
	s := f.slot(valueobject.SlotStatusPendingCollaborator, &f.candidate.ID,
		time.Date(2024, time.January, 30, 12, 0, 0, 0, time.UTC), f.skill)

	result, err := f.sweep.Invitations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{s.ID}, result.ExpiredSlots)
}

func TestSweepInvitations_ExpiresAfterDeadline(t *testing.T) {
	f := newSweepFixture()
	s := f.slot(valueobject.SlotStatusPendingCollaborator, &f.candidate.ID, f.clock.now.Add(-6*24*time.Hour), f.skill)

	result, err := f.sweep.Execute(context.Background(), SweepInvitations)
	require.NoError(t, err)
	assert.Equal(t, []int64{s.ID}, result.ExpiredSlots)
	require.Len(t, result.Notifications, 1)
	assert.Equal(t, f.owner.ID, result.Notifications[0].RecipientID)
	assert.Equal(t, ExpiredMessage("Caio"), result.Notifications[0].Message)

	stored, _ := f.store.Slot(s.ID)
	assert.Equal(t, valueobject.SlotStatusPendingIdealizer, stored.Status)
	assert.True(t, stored.IsOpen())
	assert.Equal(t, f.clock.now, stored.UpdatedAt)

	// повторный проход ничего не делает: вакансия уже открыта
	again, err := f.sweep.Invitations(context.Background())
	require.NoError(t, err)
	assert.Empty(t, again.ExpiredSlots)
	assert.Empty(t, again.Notifications)
}

func TestSweepInvitations_ReminderIsDeduplicated(t *testing.T) {
	f := newSweepFixture()
	f.slot(valueobject.SlotStatusPendingCollaborator, &f.candidate.ID, f.clock.now.Add(-time.Hour), f.skill)

	_, err := f.sweep.Invitations(context.Background())
	require.NoError(t, err)
	second, err := f.sweep.Invitations(context.Background())
	require.NoError(t, err)

	assert.Empty(t, second.Notifications)
	assert.Len(t, f.store.Notifications(), 1)
}

func TestSweepPendingIdealizer_OnePerProject(t *testing.T) {
	f := newSweepFixture()
	other := f.store.AddPerson(&entity.Person{Name: "Dora", Roles: valueobject.NewRoles(false, true, false)})
	f.slot(valueobject.SlotStatusPendingIdealizer, &f.candidate.ID, f.clock.now, f.skill)
	f.slot(valueobject.SlotStatusPendingIdealizer, &other.ID, f.clock.now, f.skill)
	f.slot(valueobject.SlotStatusPendingIdealizer, nil, f.clock.now, f.skill)

	result, err := f.sweep.Execute(context.Background(), SweepPendingIdealizer)
	require.NoError(t, err)
	require.Len(t, result.Notifications, 1)
	assert.Equal(t, f.owner.ID, result.Notifications[0].RecipientID)
	assert.Equal(t, MatchAssignedMessage("Horta"), result.Notifications[0].Message)
}

func TestSweepPendingIdealizer_IgnoresOpenSlots(t *testing.T) {
	f := newSweepFixture()
	f.slot(valueobject.SlotStatusPendingIdealizer, nil, f.clock.now, f.skill)

	result, err := f.sweep.PendingIdealizer(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Notifications)
	assert.Empty(t, f.publisher.batches)
}

func TestSweepCompleteness(t *testing.T) {
	f := newSweepFixture()
	bare := f.store.AddProject(&entity.Project{Name: "Biblioteca", OwnerID: f.owner.ID})
	f.store.PutSlot(&entity.Slot{ProjectID: bare.ID, Role: valueobject.RoleAlly, Title: "Mentor", Status: valueobject.SlotStatusPendingIdealizer})
	f.slot(valueobject.SlotStatusPendingIdealizer, nil, f.clock.now)

	result, err := f.sweep.Execute(context.Background(), SweepCompleteness)
	require.NoError(t, err)
	require.Len(t, result.Notifications, 2)

	messages := []string{result.Notifications[0].Message, result.Notifications[1].Message}
	assert.ElementsMatch(t, []string{
		CompleteProjectMessage("Biblioteca"),
		CompleteSlotsMessage("Horta"),
	}, messages)
}

func TestSweepAll(t *testing.T) {
	f := newSweepFixture()
	f.slot(valueobject.SlotStatusPendingCollaborator, &f.candidate.ID, f.clock.now.Add(-10*24*time.Hour), f.skill)
	f.slot(valueobject.SlotStatusPendingIdealizer, nil, f.clock.now)

	result, err := f.sweep.Execute(context.Background(), SweepAll)
	require.NoError(t, err)
	assert.Len(t, result.ExpiredSlots, 1)
	// истечение приглашения и незаполненная вакансия
	assert.Len(t, result.Notifications, 2)
}
