package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/conectar-backend/internal/domain/valueobject"
	"github.com/ignatzorin/conectar-backend/internal/pkg/apperror"
)

var personRowColumns = []string{
	"id", "name", "email", "profile_photo", "is_ally", "is_collaborator", "is_idealizer", "created_at", "updated_at",
}

const excludingQuery = `FROM people WHERE is_collaborator AND NOT \(id = ANY\(\$1\)\) ORDER BY id`

func TestPersonRepository_FindByRoleExcluding(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now()

	mock.ExpectQuery(excludingQuery).
		WithArgs("{1,3}").
		WillReturnRows(sqlmock.NewRows(personRowColumns).
			AddRow(2, "Alice", "alice@conectar.dev", nil, false, true, false, now, now).
			AddRow(4, "Dora", "dora@conectar.dev", nil, true, true, false, now, now))
	mock.ExpectQuery(`FROM person_skills`).
		WithArgs("{2,4}").
		WillReturnRows(sqlmock.NewRows([]string{"owner_id", "id", "name"}).
			AddRow(2, 1, "python").
			AddRow(4, 1, "python").
			AddRow(4, 2, "sql"))
	mock.ExpectQuery(`FROM person_areas`).
		WithArgs("{2,4}").
		WillReturnRows(sqlmock.NewRows([]string{"owner_id", "id", "description", "parent_id"}).
			AddRow(4, 7, "saúde", nil))

	people, err := NewPersonRepository(db).FindByRoleExcluding(context.Background(), valueobject.RoleCollaborator, []int64{1, 3})
	require.NoError(t, err)
	require.Len(t, people, 2)
	assert.Equal(t, int64(2), people[0].ID)
	assert.Equal(t, []string{"python"}, people[0].Tags())
	assert.Equal(t, []string{"python", "sql", "saúde"}, people[1].Tags())
	assert.True(t, people[1].CanFill(valueobject.RoleAlly))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersonRepository_FindByRoleExcludingNothing(t *testing.T) {
	db, mock := newMockDB(t)

	// пустой список исключений передаётся пустым массивом, не NULL
	mock.ExpectQuery(excludingQuery).
		WithArgs("{}").
		WillReturnRows(sqlmock.NewRows(personRowColumns))

	people, err := NewPersonRepository(db).FindByRoleExcluding(context.Background(), valueobject.RoleCollaborator, nil)
	require.NoError(t, err)
	assert.Empty(t, people)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersonRepository_FindByRoleExcludingUnknownRole(t *testing.T) {
	db, mock := newMockDB(t)

	_, err := NewPersonRepository(db).FindByRoleExcluding(context.Background(), valueobject.Role("CHEFE"), nil)
	assert.True(t, apperror.IsValidation(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
