package middleware_test

import (
	"context"
	"testing"

	"github.com/aretw0/wizard/pkg/adapters/memory"
	"github.com/aretw0/wizard/pkg/domain"
	"github.com/aretw0/wizard/pkg/persistence/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPIIMiddleware_Masking(t *testing.T) {
	underlying := memory.NewStore()
	secure := middleware.NewPIIMiddleware([]string{"password", "ssn"})(underlying)
	ctx := context.Background()

	answers := domain.AnswerStore{
		"username":      "jdoe",
		"user_password": "secret123",
		"details": map[string]any{
			"address":    "123 St",
			"ssn_number": "999-99-9999",
		},
	}

	require.NoError(t, secure.Save(ctx, "pii", answers))

	// The caller's answers are untouched.
	assert.Equal(t, "secret123", answers["user_password"])
	assert.Equal(t, "999-99-9999", answers["details"].(map[string]any)["ssn_number"])

	stored, err := underlying.Load(ctx, "pii")
	require.NoError(t, err)
	assert.Equal(t, "jdoe", stored["username"])
	assert.NotContains(t, stored, "user_password")

	details := stored["details"].(map[string]any)
	assert.Equal(t, middleware.Mask, details["ssn_number"])
	assert.Equal(t, "123 St", details["address"])
}

func TestChain_Order(t *testing.T) {
	underlying := memory.NewStore()
	key := make([]byte, 32)
	repo := middleware.Chain(underlying,
		middleware.NewPIIMiddleware([]string{"token"}),
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key}),
	)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "s", domain.AnswerStore{"name": "a", "token": "t"}))

	loaded, err := repo.Load(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, domain.AnswerStore{"name": "a"}, loaded)

	stored, err := underlying.Load(ctx, "s")
	require.NoError(t, err)
	assert.Len(t, stored, 1)
	assert.Contains(t, stored, middleware.EnvelopeKey)
}
