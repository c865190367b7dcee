package slot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/conectar-backend/internal/domain/entity"
	"github.com/ignatzorin/conectar-backend/internal/domain/valueobject"
	"github.com/ignatzorin/conectar-backend/internal/pkg/apperror"
	"github.com/ignatzorin/conectar-backend/internal/usecase/notification"
)

func createInput(f *fixture) CreateInput {
	return CreateInput{
		ActorID:   f.owner.ID,
		ProjectID: f.project.ID,
		Role:      string(valueobject.RoleCollaborator),
		Title:     "Backend",
		SkillIDs:  []int64{f.skill.ID},
	}
}

func TestCreate_OpenSlot(t *testing.T) {
	f := newFixture()
	uc := NewCreateUseCase(f.store, f.lifecycle, f.publisher, 0)

	s, err := uc.Execute(context.Background(), createInput(f))
	require.NoError(t, err)
	assert.NotZero(t, s.ID)
	assert.Equal(t, valueobject.SlotStatusPendingIdealizer, s.Status)
	assert.True(t, s.IsOpen())
	assert.Equal(t, []string{"go"}, s.Tags())
	assert.Equal(t, fixedNow, s.CreatedAt)

	stored := f.stored(s.ID)
	require.NotNil(t, stored)
	assert.Equal(t, []string{"go"}, stored.Tags())

	// владелец не может быть подобран на собственную вакансию
	assert.Equal(t, []int64{f.owner.ID}, f.store.IgnoredIDs(s.ID))
	assert.Empty(t, f.publisher.published)
}

func TestCreate_WithPreassignedPerson(t *testing.T) {
	f := newFixture()
	input := createInput(f)
	input.PersonID = &f.collab.ID

	s, err := NewCreateUseCase(f.store, f.lifecycle, f.publisher, 0).Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, valueobject.SlotStatusPendingCollaborator, s.Status)
	assert.True(t, s.IsAssignedTo(f.collab.ID))
	assert.Equal(t, []int64{f.owner.ID, f.collab.ID}, f.store.IgnoredIDs(s.ID))

	require.Len(t, f.publisher.published, 1)
	assert.Equal(t, f.collab.ID, f.publisher.published[0].RecipientID)
	assert.Equal(t, notification.InvitedMessage("Ida", "Horta"), f.publisher.published[0].Message)
}

func TestCreate_RejectsPreassignedPersonWithoutRole(t *testing.T) {
	f := newFixture()
	ally := f.store.AddPerson(&entity.Person{Name: "Ana", Roles: valueobject.NewRoles(true, false, false)})
	input := createInput(f)
	input.PersonID = &ally.ID

	_, err := NewCreateUseCase(f.store, f.lifecycle, f.publisher, 0).Execute(context.Background(), input)
	assert.True(t, apperror.IsValidation(err))
	_, created := f.store.Slot(1)
	assert.False(t, created)
	assert.Empty(t, f.publisher.published)
}

func TestCreate_RejectsPreassignedOwner(t *testing.T) {
	f := newFixture()
	// владелец с ролью колаборатора всё равно не занимает свою вакансию
	f.owner.Roles = valueobject.NewRoles(false, true, true)
	f.store.AddPerson(f.owner)
	input := createInput(f)
	input.PersonID = &f.owner.ID

	_, err := NewCreateUseCase(f.store, f.lifecycle, f.publisher, 0).Execute(context.Background(), input)
	assert.True(t, apperror.IsValidation(err))
	_, created := f.store.Slot(1)
	assert.False(t, created)
	assert.Empty(t, f.publisher.published)
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name  string
		patch func(f *fixture, in *CreateInput)
		check func(error) bool
	}{
		{"bad role", func(f *fixture, in *CreateInput) { in.Role = "CHEFE" }, apperror.IsValidation},
		{"empty title", func(f *fixture, in *CreateInput) { in.Title = "" }, apperror.IsValidation},
		{"unknown skill", func(f *fixture, in *CreateInput) { in.SkillIDs = []int64{f.skill.ID, 999} }, apperror.IsValidation},
		{"unknown area", func(f *fixture, in *CreateInput) { in.AreaIDs = []int64{42} }, apperror.IsValidation},
		{"unknown agreement type", func(f *fixture, in *CreateInput) { id := int64(7); in.AgreementTypeID = &id }, apperror.IsNotFound},
		{"unknown person", func(f *fixture, in *CreateInput) { id := int64(77); in.PersonID = &id }, apperror.IsNotFound},
		{"unknown project", func(f *fixture, in *CreateInput) { in.ProjectID = 55 }, apperror.IsNotFound},
		{"not owner", func(f *fixture, in *CreateInput) { in.ActorID = f.collab.ID }, apperror.IsForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			input := createInput(f)
			tt.patch(f, &input)

			_, err := NewCreateUseCase(f.store, f.lifecycle, f.publisher, 0).Execute(context.Background(), input)
			require.Error(t, err)
			assert.True(t, tt.check(err), err.Error())
			assert.Empty(t, f.store.Notifications())
		})
	}
}

func TestCreate_LimitPerProject(t *testing.T) {
	f := newFixture()
	uc := NewCreateUseCase(f.store, f.lifecycle, f.publisher, 2)

	for i := 0; i < 2; i++ {
		_, err := uc.Execute(context.Background(), createInput(f))
		require.NoError(t, err)
	}

	_, err := uc.Execute(context.Background(), createInput(f))
	assert.True(t, apperror.IsValidation(err))
}

func TestGetAndList(t *testing.T) {
	f := newFixture()
	a := f.slotIn(valueobject.SlotStatusPendingCollaborator)
	b := f.slotIn(valueobject.SlotStatusAccepted)
	ctx := context.Background()

	got, err := NewGetUseCase(f.store).Execute(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	_, err = NewGetUseCase(f.store).Execute(ctx, 999)
	assert.True(t, apperror.IsNotFound(err))

	list, err := NewListByProjectUseCase(f.store).Execute(ctx, f.project.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, b.ID, list[1].ID)

	_, err = NewListByProjectUseCase(f.store).Execute(ctx, 999)
	assert.True(t, apperror.IsNotFound(err))

	invitations, err := NewListInvitationsUseCase(f.store).Execute(ctx, f.collab.ID, 0)
	require.NoError(t, err)
	require.Len(t, invitations, 1)
	assert.Equal(t, a.ID, invitations[0].ID)
}

func TestEdit(t *testing.T) {
	f := newFixture()
	s := f.slotIn(valueobject.SlotStatusPendingCollaborator)
	area := f.store.AddArea("saúde", nil)
	title := "  Backend Go  "
	paid := true
	areaIDs := []int64{area.ID}

	got, err := NewEditUseCase(f.store, f.lifecycle).Execute(context.Background(), s.ID, f.owner.ID, EditCommand{
		Title:   &title,
		Paid:    &paid,
		AreaIDs: &areaIDs,
	})
	require.NoError(t, err)
	assert.Equal(t, "Backend Go", got.Title)
	assert.True(t, got.Paid)
	assert.Equal(t, []string{"go", "saúde"}, got.Tags())

	stored := f.stored(s.ID)
	assert.Equal(t, "Backend Go", stored.Title)
	assert.Equal(t, []string{"go", "saúde"}, stored.Tags())
	// состояние и кандидат не меняются редактированием
	assert.Equal(t, valueobject.SlotStatusPendingCollaborator, stored.Status)
	assert.True(t, stored.IsAssignedTo(f.collab.ID))
}

func TestEdit_Rejects(t *testing.T) {
	f := newFixture()
	s := f.slotIn(valueobject.SlotStatusPendingIdealizer)
	uc := NewEditUseCase(f.store, f.lifecycle)
	ctx := context.Background()

	_, err := uc.Execute(ctx, s.ID, f.owner.ID, EditCommand{})
	assert.True(t, apperror.IsValidation(err))

	blank := " "
	_, err = uc.Execute(ctx, s.ID, f.owner.ID, EditCommand{Title: &blank})
	assert.True(t, apperror.IsValidation(err))

	role := "OUTRO"
	_, err = uc.Execute(ctx, s.ID, f.owner.ID, EditCommand{Role: &role})
	assert.True(t, apperror.IsValidation(err))

	title := "Novo"
	_, err = uc.Execute(ctx, s.ID, f.collab.ID, EditCommand{Title: &title})
	assert.True(t, apperror.IsForbidden(err))

	missing := []int64{500}
	_, err = uc.Execute(ctx, s.ID, f.owner.ID, EditCommand{SkillIDs: &missing})
	assert.True(t, apperror.IsValidation(err))
	assert.Equal(t, []string{"go"}, f.stored(s.ID).Tags())
}

func TestEdit_RoleChangeChecksAssignee(t *testing.T) {
	f := newFixture()
	uc := NewEditUseCase(f.store, f.lifecycle)
	ctx := context.Background()
	ally := string(valueobject.RoleAlly)

	s := f.slotIn(valueobject.SlotStatusAccepted)
	_, err := uc.Execute(ctx, s.ID, f.owner.ID, EditCommand{Role: &ally})
	assert.True(t, apperror.IsValidation(err))
	assert.Equal(t, valueobject.RoleCollaborator, f.stored(s.ID).Role)

	f.collab.Roles = valueobject.NewRoles(true, true, false)
	f.store.AddPerson(f.collab)
	got, err := uc.Execute(ctx, s.ID, f.owner.ID, EditCommand{Role: &ally})
	require.NoError(t, err)
	assert.Equal(t, valueobject.RoleAlly, got.Role)
}

func TestEdit_RoleChangeOnOpenSlot(t *testing.T) {
	f := newFixture()
	s := f.store.PutSlot(&entity.Slot{
		ProjectID: f.project.ID,
		Role:      valueobject.RoleCollaborator,
		Title:     "Aberta",
		Status:    valueobject.SlotStatusPendingIdealizer,
	})
	ally := string(valueobject.RoleAlly)

	got, err := NewEditUseCase(f.store, f.lifecycle).Execute(context.Background(), s.ID, f.owner.ID, EditCommand{Role: &ally})
	require.NoError(t, err)
	assert.Equal(t, valueobject.RoleAlly, got.Role)
}

func TestDelete_RemovesSlotAndAttachments(t *testing.T) {
	f := newFixture()
	s := f.slotIn(valueobject.SlotStatusAccepted)
	storage := &fakeStorage{}

	_, err := NewFinalizeUseCase(f.store, f.lifecycle, f.publisher).Execute(context.Background(), s.ID, f.owner.ID)
	require.NoError(t, err)

	require.NoError(t, NewDeleteUseCase(f.store, storage).Execute(context.Background(), s.ID, f.owner.ID))
	assert.Nil(t, f.stored(s.ID))
	assert.Equal(t, []string{"contrato.pdf"}, storage.deleted)

	// уведомления остаются, но теряют ссылку на вакансию
	for _, n := range f.store.Notifications() {
		assert.Nil(t, n.SlotID)
	}
}

func TestDelete_OnlyOwner(t *testing.T) {
	f := newFixture()
	s := f.slotIn(valueobject.SlotStatusPendingIdealizer)

	err := NewDeleteUseCase(f.store, nil).Execute(context.Background(), s.ID, f.collab.ID)
	assert.True(t, apperror.IsForbidden(err))
	assert.NotNil(t, f.stored(s.ID))
}

func TestEditCommand_IsEmpty(t *testing.T) {
	assert.True(t, EditCommand{}.IsEmpty())
	ids := []int64{}
	assert.False(t, EditCommand{SkillIDs: &ids}.IsEmpty())
}
