package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/conectar-backend/internal/config"
	"github.com/ignatzorin/conectar-backend/internal/domain/valueobject"
	"github.com/ignatzorin/conectar-backend/internal/usecase/slot"
)

func memoryConfig(t *testing.T, seedPath string) *config.Config {
	return &config.Config{
		StorageDriver:         config.StorageDriverMemory,
		MemorySeedPath:        seedPath,
		AttachmentStoragePath: t.TempDir(),
		MaxAttachmentMB:       5,
		InviteExpiryDays:      5,
		MaxSlotsPerProject:    5,
	}
}

func TestBuild_MemorySeedAllowsMatching(t *testing.T) {
	ctx := context.Background()
	c, err := Build(ctx, memoryConfig(t, filepath.Join("..", "..", "seed", "memory.json")), nil)
	require.NoError(t, err)
	defer c.Close()

	created, err := c.CreateSlot.Execute(ctx, slot.CreateInput{
		ActorID:   1,
		ProjectID: 1,
		Role:      string(valueobject.RoleCollaborator),
		Title:     "Desenvolvedor Python",
		SkillIDs:  []int64{1},
	})
	require.NoError(t, err)

	// Alice и Bruno равны по навыку python, выигрывает меньший ID
	best, err := c.SelectBestCandidate.Execute(ctx, created.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), best.ID)
}

func TestBuild_MemorySeedError(t *testing.T) {
	_, err := Build(context.Background(), memoryConfig(t, filepath.Join(t.TempDir(), "none.json")), nil)
	assert.Error(t, err)
}
