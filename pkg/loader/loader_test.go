package loader_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/wizard/pkg/domain"
	"github.com/aretw0/wizard/pkg/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lowercase(_ context.Context, value any, _ domain.AnswerStore) string {
	s, _ := value.(string)
	if s != strings.ToLower(s) {
		return "must be lowercase"
	}
	return ""
}

func TestLoader_LoadFile(t *testing.T) {
	l := loader.New(loader.WithPredicate("lowercase", lowercase))

	root, err := l.LoadFile(filepath.Join("testdata", "new-app.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "new-app", root.Name)
	assert.True(t, root.IsGroup())
	require.Len(t, root.Children, 5)

	app := root.Children[0].Question
	assert.Equal(t, domain.TypeText, app.Type)
	assert.Equal(t, "MyApp", app.Default)
	assert.Equal(t, domain.Rules{
		domain.Required{},
		domain.Pattern{Expr: "^[A-Za-z][A-Za-z0-9-]*$"},
		domain.MaxLength{N: 32},
	}, app.Validation)

	env := root.Children[0+1]
	assert.Equal(t, []domain.OptionItem{
		{ID: "dev", Label: "dev"},
		{ID: "prod", Label: "Production", Description: "Customer facing"},
	}, env.Question.Options)
	require.Len(t, env.Children, 2)
	assert.Equal(t, domain.Rules{domain.Equals{Value: "dev"}}, env.Children[0].Condition)

	prod := env.Children[1]
	assert.True(t, prod.IsGroup())
	assert.Equal(t, domain.Rules{domain.RemoteFunc{Func: domain.FuncDescriptor{Method: "checkTenant"}}},
		prod.Children[0].Question.Validation)
	assert.Equal(t, &domain.FuncDescriptor{Method: "listRegions", Params: map[string]any{"provider": "azure"}},
		prod.Children[1].Question.OptionsFunc)

	features := root.Children[2].Question
	assert.Equal(t, domain.Rules{domain.TypeOf{Name: "[string]"}, domain.MinLength{N: 1}}, features.Validation)

	folder := root.Children[3].Question
	assert.Equal(t, domain.ParentRef, folder.Default)
	require.Len(t, folder.Validation, 2)
	assert.IsType(t, domain.LocalFunc{}, folder.Validation[0])
	assert.Equal(t, domain.FileNotExist{}, folder.Validation[1])

	assert.True(t, root.Children[4].IsFunction())
}

func TestLoader_File(t *testing.T) {
	l := loader.New(loader.WithPredicate("lowercase", lowercase))

	root, err := l.File(filepath.Join("testdata", "new-app.yaml")).LoadTree(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "new-app", root.Label())
}

func TestLoader_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"empty", "", "empty document"},
		{"unknown field", "name: x\nchildren:\n  - name: a\n    type: text\n    tittle: A\n", "tittle"},
		{"unknown type", "name: x\ntype: slider\n", "slider"},
		{"unknown rule", "name: x\ntype: text\nvalidation:\n  startWith: a\n", "startWith"},
		{"unknown predicate", "name: x\ntype: text\nvalidation:\n  local: nope\n", "unknown predicate"},
		{"group with title", "name: g\ntitle: G\n", "has question fields"},
		{"root condition", "name: x\ntype: text\nwhen:\n  equals: a\n", "no parent"},
		{"missing func", "name: f\ntype: function\n", "has no func"},
		{"bad option", "name: s\ntype: single_select\noptions:\n  - label: nope\n", "missing id"},
		{"bad type rule", "name: x\ntype: text\nvalidation:\n  type: [a, b]\n", "single element"},
		{"nested path", "children:\n  - children:\n      - name: x\n        type: nope\n", "root.children[0].children[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.New().Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoader_ConditionVocabulary(t *testing.T) {
	doc := `
name: stack
type: multi_select
options: [bot, tab]
children:
  - name: botName
    type: text
    when:
      containsAny: [bot]
  - name: both
    type: text
    when:
      containsAll: [bot, tab]
`
	root, err := loader.New().Parse([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, domain.Rules{domain.ContainsAny{Values: []string{"bot"}}}, root.Children[0].Condition)
	assert.Equal(t, domain.Rules{domain.ContainsAll{Values: []string{"bot", "tab"}}}, root.Children[1].Condition)
}
