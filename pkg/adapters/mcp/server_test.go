package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/wizard/pkg/domain"
	"github.com/aretw0/wizard/pkg/dsl"
	"github.com/aretw0/wizard/pkg/ports"
	"github.com/aretw0/wizard/pkg/registry"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	b := dsl.New("new-app")
	b.Text("appName").Title("App name").Required().Validate(domain.StartsWith{Prefix: "My"})
	env := b.Select("env", "dev", "prod")
	env.Text("devUrl").If(domain.Equals{Value: "dev"})
	b.MultiSelect("features", "bot", "tab").Validate(domain.ContainsAny{Values: []string{"bot"}})
	tree := b.MustBuild()

	reg := registry.NewRegistry()
	reg.Register("upper", func(_ context.Context, params map[string]any, _ domain.AnswerStore) (any, error) {
		return map[string]any{"got": params["s"]}, nil
	})

	loader := ports.TreeLoaderFunc(func(context.Context) (*domain.Node, error) { return tree, nil })
	return NewServer(loader, WithResolver(reg), WithVersion("test"))
}

func TestServer_ListQuestions(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.handleListQuestions(context.Background(), mcp.CallToolRequest{}, nil)

	require.NoError(t, err)
	var names []string
	for _, q := range resp.Questions {
		names = append(names, q.Name)
	}
	assert.Equal(t, []string{"appName", "env", "devUrl", "features"}, names)
	assert.Equal(t, "App name", resp.Questions[0].Title)
	assert.Len(t, resp.Questions[1].Options, 2)
	assert.False(t, resp.Questions[1].Conditional)
	assert.True(t, resp.Questions[2].Conditional)
}

func TestServer_ValidateAnswer(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		args     map[string]any
		valid    bool
		contains string
	}{
		{"valid text", map[string]any{"question": "appName", "value": "MyApp"}, true, ""},
		{"empty", map[string]any{"question": "appName", "value": ""}, false, "required"},
		{"prefix", map[string]any{"question": "appName", "value": "App"}, false, "My"},
		{"multi json", map[string]any{"question": "features", "value": `["bot","tab"]`}, true, ""},
		{"multi missing", map[string]any{"question": "features", "value": `["tab"]`}, false, "bot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := s.handleValidate(ctx, mcp.CallToolRequest{}, tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, resp.Valid)
			assert.Contains(t, resp.Message, tt.contains)
		})
	}

	_, err := s.handleValidate(ctx, mcp.CallToolRequest{}, map[string]any{"question": "nope", "value": "x"})
	assert.ErrorContains(t, err, "unknown question")

	_, err = s.handleValidate(ctx, mcp.CallToolRequest{}, map[string]any{"question": "appName", "value": "x", "answers": "{"})
	assert.ErrorContains(t, err, "invalid JSON object")
}

func callResolve(t *testing.T, s *Server, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = "resolve_function"
	req.Params.Arguments = args
	res, err := s.handleResolve(context.Background(), req)
	require.NoError(t, err)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := mcp.AsTextContent(res.Content[0])
	require.True(t, ok)
	return text.Text
}

func TestServer_ResolveFunction(t *testing.T) {
	s := newTestServer(t)

	res := callResolve(t, s, map[string]any{"method": "upper", "params": `{"s":"abc"}`})
	assert.False(t, res.IsError)
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
	assert.Equal(t, "abc", out["got"])

	res = callResolve(t, s, map[string]any{"method": "missing"})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), `unknown function "missing"`)
}

func TestServer_ResolveWithoutResolver(t *testing.T) {
	loader := ports.TreeLoaderFunc(func(context.Context) (*domain.Node, error) { return dsl.New("x").MustBuild(), nil })
	s := NewServer(loader)

	res := callResolve(t, s, map[string]any{"method": "upper"})

	assert.True(t, res.IsError)
}
