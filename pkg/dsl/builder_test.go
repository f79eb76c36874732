package dsl

import (
	"testing"

	"github.com/aretw0/wizard/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Tree(t *testing.T) {
	b := New("new-app")

	env := b.Select("env", "dev", "prod").Title("Environment")
	env.Text("devUrl").If(domain.Equals{Value: "dev"}).Required().Default("http://localhost")
	env.Group("prod").If(domain.Equals{Value: "prod"}).
		Password("token").Validate(domain.MinLength{N: 8})
	b.Func("createdAt", "now", map[string]any{"layout": "2006"})

	root, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, domain.KindGroup, root.Kind)
	require.Len(t, root.Children, 2)

	envNode := root.Children[0]
	assert.Equal(t, "Environment", envNode.Question.Title)
	assert.Equal(t, domain.Options("dev", "prod"), envNode.Question.Options)
	require.Len(t, envNode.Children, 2)

	dev := envNode.Children[0]
	assert.Equal(t, domain.Rules{domain.Equals{Value: "dev"}}, dev.Condition)
	assert.Equal(t, domain.Rules{domain.Required{}}, dev.Question.Validation)
	assert.Equal(t, "http://localhost", dev.Question.Default)

	prod := envNode.Children[1]
	assert.True(t, prod.IsGroup())
	assert.Equal(t, domain.TypePassword, prod.Children[0].Question.Type)

	fn := root.Children[1]
	assert.True(t, fn.IsFunction())
	assert.Equal(t, "now", fn.Question.Func.Method)
}

func TestBuilder_QuestionSetterOnGroup(t *testing.T) {
	b := New("root")
	b.Group("g").Title("oops")

	_, err := b.Build()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Title: group 'g' has no question")
}

func TestBuilder_ChecksTree(t *testing.T) {
	b := New("root")
	b.Func("f", "", nil).Node().Question.Func = nil

	_, err := b.Build()

	assert.ErrorIs(t, err, domain.ErrInvalidTree)
}

func TestBuilder_MustBuildPanics(t *testing.T) {
	b := New("root")
	b.Title("x")

	assert.Panics(t, func() { b.MustBuild() })
}

func TestBuilder_OptionsFunc(t *testing.T) {
	b := New("root")
	b.MultiSelect("features").OptionsFunc("listFeatures", nil).ReturnObject()

	root := b.MustBuild()
	q := root.Children[0].Question
	assert.Empty(t, q.Options)
	assert.Equal(t, "listFeatures", q.OptionsFunc.Method)
	assert.True(t, q.ReturnObject)
}
