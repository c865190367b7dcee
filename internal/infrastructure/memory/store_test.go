package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/conectar-backend/internal/domain/entity"
	"github.com/ignatzorin/conectar-backend/internal/domain/repository"
	"github.com/ignatzorin/conectar-backend/internal/domain/valueobject"
	"github.com/ignatzorin/conectar-backend/internal/pkg/apperror"
)

func seededStore() (*Store, *entity.Slot) {
	store := NewStore()
	owner := store.AddPerson(&entity.Person{Name: "Ida", Roles: valueobject.NewRoles(false, false, true)})
	project := store.AddProject(&entity.Project{Name: "Horta", OwnerID: owner.ID})
	slot := store.PutSlot(&entity.Slot{
		ProjectID: project.ID,
		Role:      valueobject.RoleCollaborator,
		Title:     "Backend",
		Status:    valueobject.SlotStatusPendingIdealizer,
	})
	return store, slot
}

func TestStore_CommitsOnSuccess(t *testing.T) {
	store, slot := seededStore()

	err := store.Do(context.Background(), func(ctx context.Context, repos repository.Repositories) error {
		s, err := repos.Slots.FindByIDForUpdate(ctx, slot.ID)
		if err != nil {
			return err
		}
		s.AssignCandidate(7, s.UpdatedAt)
		if err := repos.Slots.Update(ctx, s); err != nil {
			return err
		}
		_, err = repos.Ignored.Add(ctx, 7, s.ID)
		return err
	})
	require.NoError(t, err)

	stored, ok := store.Slot(slot.ID)
	require.True(t, ok)
	assert.True(t, stored.IsAssignedTo(7))
	assert.Equal(t, []int64{7}, store.IgnoredIDs(slot.ID))
}

func TestStore_RollsBackOnError(t *testing.T) {
	store, slot := seededStore()
	boom := errors.New("boom")

	err := store.Do(context.Background(), func(ctx context.Context, repos repository.Repositories) error {
		s, _ := repos.Slots.FindByIDForUpdate(ctx, slot.ID)
		s.AssignCandidate(7, s.UpdatedAt)
		_ = repos.Slots.Update(ctx, s)
		_, _ = repos.Ignored.Add(ctx, 7, s.ID)
		_ = repos.Notifications.Create(ctx, &entity.Notification{RecipientID: 1, Message: "x"})
		return boom
	})
	assert.ErrorIs(t, err, boom)

	stored, _ := store.Slot(slot.ID)
	assert.True(t, stored.IsOpen())
	assert.Empty(t, store.IgnoredIDs(slot.ID))
	assert.Empty(t, store.Notifications())
}

func TestStore_RollsBackOnPanic(t *testing.T) {
	store, slot := seededStore()

	assert.Panics(t, func() {
		_ = store.Do(context.Background(), func(ctx context.Context, repos repository.Repositories) error {
			_ = repos.Slots.Delete(ctx, slot.ID)
			panic("boom")
		})
	})

	_, ok := store.Slot(slot.ID)
	assert.True(t, ok)

	// мьютекс освобождён
	require.NoError(t, store.Do(context.Background(), func(ctx context.Context, repos repository.Repositories) error {
		return nil
	}))
}

func TestStore_ReturnsCopies(t *testing.T) {
	store, slot := seededStore()

	err := store.Do(context.Background(), func(ctx context.Context, repos repository.Repositories) error {
		s, err := repos.Slots.FindByID(ctx, slot.ID)
		if err != nil {
			return err
		}
		s.Title = "changed"
		return nil
	})
	require.NoError(t, err)

	stored, _ := store.Slot(slot.ID)
	assert.Equal(t, "Backend", stored.Title)
}

func TestStore_NotFound(t *testing.T) {
	store := NewStore()

	err := store.Do(context.Background(), func(ctx context.Context, repos repository.Repositories) error {
		_, err := repos.Slots.FindByID(ctx, 1)
		return err
	})
	assert.True(t, apperror.IsNotFound(err))
}

func TestStore_FindByRoleExcluding(t *testing.T) {
	store := NewStore()
	a := store.AddPerson(&entity.Person{Name: "A", Roles: valueobject.NewRoles(false, true, false)})
	b := store.AddPerson(&entity.Person{Name: "B", Roles: valueobject.NewRoles(true, true, false)})
	store.AddPerson(&entity.Person{Name: "C", Roles: valueobject.NewRoles(true, false, false)})

	err := store.Do(context.Background(), func(ctx context.Context, repos repository.Repositories) error {
		people, err := repos.People.FindByRoleExcluding(ctx, valueobject.RoleCollaborator, []int64{a.ID})
		require.NoError(t, err)
		require.Len(t, people, 1)
		assert.Equal(t, b.ID, people[0].ID)
		return nil
	})
	require.NoError(t, err)
}

func TestStore_AttachmentsBySlot(t *testing.T) {
	store, slot := seededStore()
	ref := "contrato.pdf"

	err := store.Do(context.Background(), func(ctx context.Context, repos repository.Repositories) error {
		for _, recipient := range []int64{1, 2} {
			if err := repos.Notifications.Create(ctx, &entity.Notification{
				RecipientID: recipient,
				SlotID:      &slot.ID,
				Message:     "fim",
				Attachment:  &ref,
			}); err != nil {
				return err
			}
		}
		refs, err := repos.Notifications.AttachmentsBySlot(ctx, slot.ID)
		assert.Equal(t, []string{ref}, refs)
		return err
	})
	require.NoError(t, err)
}
