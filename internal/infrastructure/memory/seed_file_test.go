package memory

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/conectar-backend/internal/domain/repository"
	"github.com/ignatzorin/conectar-backend/internal/domain/valueobject"
)

func TestLoadSeedFile_RepositoryFile(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.LoadSeedFile(filepath.Join("..", "..", "..", "seed", "memory.json")))

	err := s.Do(context.Background(), func(ctx context.Context, repos repository.Repositories) error {
		project, err := repos.Projects.FindByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), project.OwnerID)
		assert.True(t, project.HasRequirements())

		bruno, err := repos.People.FindByID(ctx, 3)
		require.NoError(t, err)
		assert.True(t, bruno.CanFill(valueobject.RoleCollaborator))
		assert.True(t, bruno.CanFill(valueobject.RoleAlly))
		assert.False(t, bruno.CanFill(valueobject.RoleIdealizer))
		assert.Equal(t, []string{"backend", "python"}, bruno.Tags())
		return nil
	})
	require.NoError(t, err)
}

func TestLoadSeed_AreaParent(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.LoadSeed(strings.NewReader(`{
		"areas": [{"description": "agricultura"}, {"description": "horta", "parent": "agricultura"}]
	}`)))

	s.mu.Lock()
	defer s.mu.Unlock()
	var parentID, childParent int64
	for _, a := range s.data.areas {
		switch a.Description {
		case "agricultura":
			parentID = a.ID
		case "horta":
			require.NotNil(t, a.ParentID)
			childParent = *a.ParentID
		}
	}
	assert.NotZero(t, parentID)
	assert.Equal(t, parentID, childParent)
}

func TestLoadSeed_Errors(t *testing.T) {
	cases := map[string]string{
		"unknown field":   `{"pessoas": []}`,
		"duplicate skill": `{"skills": ["go", "go"]}`,
		"unknown parent":  `{"areas": [{"description": "horta", "parent": "nada"}]}`,
		"unknown role":    `{"people": [{"name": "Ana", "roles": ["CHEFE"]}]}`,
		"unknown skill":   `{"people": [{"name": "Ana", "roles": ["ALIADO"], "skills": ["rust"]}]}`,
		"missing owner":   `{"projects": [{"name": "Horta", "owner_id": 7}]}`,
		"broken json":     `{"skills": [`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, NewStore().LoadSeed(strings.NewReader(body)))
		})
	}
}

func TestLoadSeedFile_Missing(t *testing.T) {
	assert.Error(t, NewStore().LoadSeedFile(filepath.Join(t.TempDir(), "none.json")))
}
