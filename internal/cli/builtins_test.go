package cli

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/wizard/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltins(t *testing.T) {
	reg := Builtins()
	answers := domain.AnswerStore{
		"name":     "My Cool App!",
		"features": []any{"bot", "tab"},
	}
	t.Setenv("WIZARD_TEST_ENV", "from-env")

	tests := []struct {
		method string
		params map[string]any
		want   any
	}{
		{"upper", map[string]any{"value": "abc"}, "ABC"},
		{"lower", map[string]any{"answer": "name"}, "my cool app!"},
		{"slug", map[string]any{"answer": "name"}, "my-cool-app"},
		{"join", map[string]any{"answer": "features"}, "bot, tab"},
		{"join", map[string]any{"answer": "features", "sep": "+"}, "bot+tab"},
		{"env", map[string]any{"name": "WIZARD_TEST_ENV"}, "from-env"},
		{"env", map[string]any{"name": "WIZARD_TEST_UNSET", "default": "fallback"}, "fallback"},
		{"now", map[string]any{"format": "2006"}, time.Now().UTC().Format("2006")},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			got, err := reg.Resolve(context.Background(), domain.FuncDescriptor{Method: tt.method, Params: tt.params}, answers)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuiltins_Errors(t *testing.T) {
	reg := Builtins()

	_, err := reg.Resolve(context.Background(), domain.FuncDescriptor{Method: "env"}, nil)
	assert.ErrorContains(t, err, "missing 'name'")

	_, err = reg.Resolve(context.Background(), domain.FuncDescriptor{Method: "nope"}, nil)
	assert.ErrorIs(t, err, domain.ErrFunctionNotFound)

	id, err := reg.Resolve(context.Background(), domain.FuncDescriptor{Method: "uuid"}, nil)
	require.NoError(t, err)
	assert.Len(t, id, 36)
}
