package tests

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/wizard/pkg/domain"
	"github.com/aretw0/wizard/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunAnswerRepositoryContract verifies that an AnswerRepository implementation
// honors the interface contract.
func RunAnswerRepositoryContract(t *testing.T, repo ports.AnswerRepository) {
	ctx := context.Background()
	sessionID := "contract-" + time.Now().Format("20060102150405.000000")

	t.Run("Save and Load", func(t *testing.T) {
		answers := domain.AnswerStore{
			"appName":  "MyApp",
			"env":      "dev",
			"features": []any{"bot", "tab"},
		}

		require.NoError(t, repo.Save(ctx, sessionID, answers))

		loaded, err := repo.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, "MyApp", loaded["appName"])
		assert.Equal(t, "dev", loaded["env"])
		// Serializing stores return []any for arrays; check membership, not type.
		assert.ElementsMatch(t, []any{"bot", "tab"}, loaded["features"])
	})

	t.Run("Load returns a copy", func(t *testing.T) {
		loaded, err := repo.Load(ctx, sessionID)
		require.NoError(t, err)
		loaded["appName"] = "Mutated"

		again, err := repo.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, "MyApp", again["appName"])
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, sessionID, domain.AnswerStore{"appName": "Other"}))

		loaded, err := repo.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, "Other", loaded["appName"])
		assert.NotContains(t, loaded, "env")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := repo.Load(ctx, "missing-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrAnswersNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, sessionID))

		_, err := repo.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrAnswersNotFound)
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		require.NoError(t, repo.Save(ctx, id1, domain.AnswerStore{"a": "1"}))
		require.NoError(t, repo.Save(ctx, id2, domain.AnswerStore{"a": "2"}))
		defer func() {
			_ = repo.Delete(ctx, id1)
			_ = repo.Delete(ctx, id2)
		}()

		sessions, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
