package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/conectar-backend/internal/domain/valueobject"
	"github.com/ignatzorin/conectar-backend/internal/pkg/apperror"
)

var t0 = time.Date(2024, time.January, 30, 12, 0, 0, 0, time.UTC)

func ptr(v int64) *int64 { return &v }

func slotIn(status valueobject.SlotStatus, personID *int64) *Slot {
	return &Slot{
		ID:        1,
		ProjectID: 1,
		PersonID:  personID,
		Role:      valueobject.RoleCollaborator,
		Title:     "Backend",
		Status:    status,
		CreatedAt: t0,
		UpdatedAt: t0,
	}
}

func TestNewSlot(t *testing.T) {
	s, err := NewSlot(1, valueobject.RoleAlly, "Mentor", "", false, nil, nil, t0)
	require.NoError(t, err)
	assert.Equal(t, valueobject.SlotStatusPendingIdealizer, s.Status)
	assert.True(t, s.IsOpen())

	s, err = NewSlot(1, valueobject.RoleAlly, "Mentor", "", false, nil, ptr(7), t0)
	require.NoError(t, err)
	assert.Equal(t, valueobject.SlotStatusPendingCollaborator, s.Status)
	assert.True(t, s.IsAssignedTo(7))

	_, err = NewSlot(1, valueobject.RoleAlly, "", "", false, nil, nil, t0)
	assert.True(t, apperror.IsValidation(err))

	_, err = NewSlot(1, valueobject.Role("CHEFE"), "Mentor", "", false, nil, nil, t0)
	assert.True(t, apperror.IsValidation(err))
}

func TestSlot_AssignCandidateFromAnyState(t *testing.T) {
	for _, status := range []valueobject.SlotStatus{
		valueobject.SlotStatusPendingIdealizer,
		valueobject.SlotStatusPendingCollaborator,
		valueobject.SlotStatusAccepted,
		valueobject.SlotStatusRefused,
		valueobject.SlotStatusFinalized,
	} {
		s := slotIn(status, ptr(3))
		s.AssignCandidate(9, t0.Add(time.Hour))

		assert.Equal(t, valueobject.SlotStatusPendingIdealizer, s.Status, status)
		assert.True(t, s.IsAssignedTo(9))
		assert.Equal(t, t0.Add(time.Hour), s.UpdatedAt)
	}
}

func TestSlot_HappyPath(t *testing.T) {
	s := slotIn(valueobject.SlotStatusPendingIdealizer, nil)
	s.AssignCandidate(5, t0)

	require.NoError(t, s.Invite(t0))
	assert.Equal(t, valueobject.SlotStatusPendingCollaborator, s.Status)

	require.NoError(t, s.Accept(t0))
	assert.Equal(t, valueobject.SlotStatusAccepted, s.Status)

	require.NoError(t, s.Finalize(t0))
	assert.Equal(t, valueobject.SlotStatusFinalized, s.Status)
	assert.True(t, s.IsAssignedTo(5))
}

func TestSlot_InviteRequiresCandidate(t *testing.T) {
	s := slotIn(valueobject.SlotStatusPendingIdealizer, nil)
	err := s.Invite(t0)
	assert.True(t, apperror.IsInvalidTransition(err))
	assert.Equal(t, valueobject.SlotStatusPendingIdealizer, s.Status)
}

func TestSlot_RefuseReopens(t *testing.T) {
	s := slotIn(valueobject.SlotStatusPendingCollaborator, ptr(4))

	refusedBy, err := s.Refuse(t0.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(4), refusedBy)
	assert.Equal(t, valueobject.SlotStatusPendingIdealizer, s.Status)
	assert.True(t, s.IsOpen())
	assert.Equal(t, t0.Add(time.Minute), s.UpdatedAt)
}

func TestSlot_InvalidTransitionsLeaveSlotUnchanged(t *testing.T) {
	tests := []struct {
		name   string
		status valueobject.SlotStatus
		apply  func(s *Slot) error
	}{
		{"accept from PI", valueobject.SlotStatusPendingIdealizer, func(s *Slot) error { return s.Accept(t0) }},
		{"finalize from PC", valueobject.SlotStatusPendingCollaborator, func(s *Slot) error { return s.Finalize(t0) }},
		{"refuse from ACEITO", valueobject.SlotStatusAccepted, func(s *Slot) error { _, err := s.Refuse(t0); return err }},
		{"invite from FINALIZADO", valueobject.SlotStatusFinalized, func(s *Slot) error { return s.Invite(t0) }},
		{"accept from FINALIZADO", valueobject.SlotStatusFinalized, func(s *Slot) error { return s.Accept(t0) }},
		{"finalize twice", valueobject.SlotStatusFinalized, func(s *Slot) error { return s.Finalize(t0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := slotIn(tt.status, ptr(2))
			before := *s

			err := tt.apply(s)
			assert.True(t, apperror.IsInvalidTransition(err))
			assert.Equal(t, before, *s)
		})
	}
}

func TestSlot_ElapsedDaysUsesWallClock(t *testing.T) {
	s := slotIn(valueobject.SlotStatusPendingCollaborator, ptr(2))

	assert.Equal(t, 0, s.ElapsedDays(t0.Add(23*time.Hour)))
	assert.Equal(t, 1, s.ElapsedDays(t0.Add(24*time.Hour)))
	// переход через границу месяца: 30 января → 4 февраля
	assert.Equal(t, 5, s.ElapsedDays(time.Date(2024, time.February, 4, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, s.ElapsedDays(t0.Add(-time.Hour)))
}

func TestSlot_Expire(t *testing.T) {
	s := slotIn(valueobject.SlotStatusPendingCollaborator, ptr(2))

	expired, err := s.Expire(t0.Add(5*24*time.Hour), 5)
	require.NoError(t, err)
	assert.False(t, expired)
	assert.Equal(t, valueobject.SlotStatusPendingCollaborator, s.Status)

	now := t0.Add(6 * 24 * time.Hour)
	expired, err = s.Expire(now, 5)
	require.NoError(t, err)
	assert.True(t, expired)
	assert.Equal(t, valueobject.SlotStatusPendingIdealizer, s.Status)
	assert.True(t, s.IsOpen())
	assert.Equal(t, now, s.UpdatedAt)

	_, err = slotIn(valueobject.SlotStatusAccepted, ptr(2)).Expire(now, 5)
	assert.True(t, apperror.IsInvalidTransition(err))
}

func TestTagList(t *testing.T) {
	tags := TagList(
		[]Skill{{ID: 1, Name: "python"}, {ID: 2, Name: "go"}},
		[]Area{{ID: 1, Description: "saúde"}, {ID: 2, Description: "educação"}},
	)
	assert.Equal(t, []string{"go", "python", "educação", "saúde"}, tags)
	assert.Empty(t, TagList(nil, nil))
}

func TestPerson_CanFill(t *testing.T) {
	p := &Person{Roles: valueobject.NewRoles(true, false, true)}
	assert.True(t, p.CanFill(valueobject.RoleAlly))
	assert.False(t, p.CanFill(valueobject.RoleCollaborator))
	assert.True(t, p.CanFill(valueobject.RoleIdealizer))
}
