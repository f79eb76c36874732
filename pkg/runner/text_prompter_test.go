package runner

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aretw0/wizard/pkg/domain"
	"github.com/aretw0/wizard/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ask(t *testing.T, input string, req *ports.PromptRequest, opts ...TextOption) (domain.NavigationResult, string) {
	t.Helper()
	var out bytes.Buffer
	p := NewTextPrompter(strings.NewReader(input), &out, opts...)
	res, err := p.Ask(context.Background(), req)
	require.NoError(t, err)
	return res, out.String()
}

func selectRequest(typ domain.QuestionType) *ports.PromptRequest {
	return &ports.PromptRequest{
		Question: &domain.Question{Name: "env", Type: typ, Title: "Environment"},
		Options: []domain.OptionItem{
			{ID: "dev", Label: "Development"},
			{ID: "prod", Label: "Production", Description: "careful"},
			{ID: "qa", Label: "QA"},
		},
		CanGoBack: true,
	}
}

func TestTextPrompter_Text(t *testing.T) {
	req := &ports.PromptRequest{
		Question: &domain.Question{Name: "app", Type: domain.TypeText, Placeholder: "my-app"},
		Default:  "MyApp",
	}

	res, out := ask(t, "\n", req)
	assert.Equal(t, domain.Success("MyApp"), res)
	assert.Contains(t, out, "app\n")
	assert.Contains(t, out, "(my-app, default: MyApp)")
	assert.NotContains(t, out, CommandBack)

	res, _ = ask(t, "  other  \n", req)
	assert.Equal(t, domain.Success("other"), res)
}

func TestTextPrompter_Renderer(t *testing.T) {
	req := &ports.PromptRequest{Question: &domain.Question{Name: "app", Type: domain.TypeText, Title: "**App**"}}
	upper := func(s string) (string, error) { return strings.ToUpper(s) + "\n\n", nil }

	_, out := ask(t, "x\n", req, WithRenderer(upper))

	assert.True(t, strings.HasPrefix(out, "**APP**\n"))
}

func TestTextPrompter_Navigation(t *testing.T) {
	req := &ports.PromptRequest{Question: &domain.Question{Name: "app", Type: domain.TypeText}}

	res, out := ask(t, ":back\n:cancel\n", req)
	assert.Equal(t, domain.Cancel(), res)
	assert.Contains(t, out, "Already at the first question.")

	req.CanGoBack = true
	res, _ = ask(t, ":back\n", req)
	assert.Equal(t, domain.Back(), res)

	res, _ = ask(t, "", req)
	assert.Equal(t, domain.Cancel(), res, "EOF cancels")
}

func TestTextPrompter_RetriesUntilValid(t *testing.T) {
	req := &ports.PromptRequest{
		Question: &domain.Question{Name: "id", Type: domain.TypeText},
		Validate: func(_ context.Context, v any) string {
			if !strings.HasPrefix(v.(string), "ms-") {
				return "must start with ms-"
			}
			return ""
		},
	}

	res, out := ask(t, "abc\nms-abc\n", req)

	assert.Equal(t, domain.Success("ms-abc"), res)
	assert.Equal(t, 1, strings.Count(out, "Error: must start with ms-. Please try again."))
}

func TestTextPrompter_SingleSelect(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		{"2\n", "prod"},
		{"qa\n", "qa"},
		{"development\n", "dev"},
		{"9\nqa\n", "qa"},
	}
	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			res, out := ask(t, tt.input, selectRequest(domain.TypeSingleSelect))
			assert.Equal(t, domain.Success(tt.want), res)
			assert.Contains(t, out, "  2) Production - careful")
		})
	}
}

func TestTextPrompter_SingleSelectDefault(t *testing.T) {
	req := selectRequest(domain.TypeSingleSelect)
	req.Question.ReturnObject = true
	req.Default = "qa"

	res, _ := ask(t, "\n", req)

	assert.Equal(t, domain.Success(req.Options[2]), res)
}

func TestTextPrompter_MultiSelect(t *testing.T) {
	res, out := ask(t, "1, qa\n", selectRequest(domain.TypeMultiSelect))
	assert.Equal(t, domain.Success([]string{"dev", "qa"}), res)
	assert.Contains(t, out, "comma separated")

	req := selectRequest(domain.TypeMultiSelect)
	req.Default = []any{"prod"}
	res, _ = ask(t, "\n", req)
	assert.Equal(t, domain.Success([]string{"prod"}), res)
}

func TestTextPrompter_PasswordReader(t *testing.T) {
	req := &ports.PromptRequest{
		Question: &domain.Question{Name: "token", Type: domain.TypePassword},
		Default:  "hunter2",
	}
	masked := WithPasswordReader(func() (string, error) { return "s3cret", nil })

	res, out := ask(t, "", req, masked)

	assert.Equal(t, domain.Success("s3cret"), res)
	assert.NotContains(t, out, "hunter2")
}

func TestTextPrompter_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	pr, _ := io.Pipe()
	p := NewTextPrompter(pr, &bytes.Buffer{})

	_, err := p.Ask(ctx, &ports.PromptRequest{Question: &domain.Question{Name: "a", Type: domain.TypeText}})

	assert.ErrorIs(t, err, context.Canceled)
}
