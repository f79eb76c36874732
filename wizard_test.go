package wizard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/wizard"
	"github.com/aretw0/wizard/pkg/domain"
	"github.com/aretw0/wizard/pkg/dsl"
	"github.com/aretw0/wizard/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scripted(results ...domain.NavigationResult) ports.Prompter {
	i := 0
	return ports.PrompterFunc(func(context.Context, *ports.PromptRequest) (domain.NavigationResult, error) {
		if i >= len(results) {
			return domain.Cancel(), nil
		}
		res := results[i]
		i++
		return res, nil
	})
}

func TestNew_RequiresPrompter(t *testing.T) {
	_, err := wizard.New(nil)
	assert.Error(t, err)
}

func TestWizard_Run(t *testing.T) {
	b := dsl.New("app")
	b.Text("name")
	b.Text("owner")
	root := b.MustBuild()

	var left []string
	w, err := wizard.New(scripted(domain.Success("svc")),
		wizard.WithName("app"),
		wizard.WithLifecycleHooks(domain.LifecycleHooks{
			OnQuestionLeave: func(_ context.Context, e *domain.QuestionEvent) {
				if e.Question != "" {
					left = append(left, e.Question)
				}
			},
		}),
	)
	require.NoError(t, err)

	loader := ports.TreeLoaderFunc(func(context.Context) (*domain.Node, error) { return root, nil })
	answers, err := w.Run(context.Background(), loader, domain.AnswerStore{"owner": "me"})

	require.NoError(t, err)
	assert.Equal(t, domain.AnswerStore{"name": "svc", "owner": "me"}, answers)
	assert.Equal(t, []string{"name", "owner"}, left)
}

func TestWizard_RunLoaderError(t *testing.T) {
	boom := errors.New("no file")
	w, err := wizard.New(scripted())
	require.NoError(t, err)

	_, err = w.Run(context.Background(), ports.TreeLoaderFunc(func(context.Context) (*domain.Node, error) {
		return nil, boom
	}), nil)

	assert.ErrorIs(t, err, boom)
}

func TestWizard_Outcomes(t *testing.T) {
	b := dsl.New("app")
	b.Text("a")
	root := b.MustBuild()

	w, err := wizard.New(scripted(domain.Cancel()))
	require.NoError(t, err)
	_, err = w.Traverse(context.Background(), root, nil)
	assert.True(t, wizard.IsCancelled(err))
	assert.False(t, wizard.IsBack(err))

	var te *wizard.TraversalError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "a", te.Question)

	w, err = wizard.New(scripted(domain.Back()))
	require.NoError(t, err)
	_, err = w.Traverse(context.Background(), root, nil)
	assert.True(t, wizard.IsBack(err))
	assert.ErrorIs(t, err, domain.ErrBackUnderflow)
}

func TestQuestionsAndCheck(t *testing.T) {
	b := dsl.New("app")
	env := b.Select("env", "dev", "prod")
	env.Text("url")
	root := b.MustBuild()

	require.NoError(t, wizard.Check(root))

	names := []string{}
	for _, q := range wizard.Questions(root) {
		names = append(names, q.Name)
	}
	assert.Equal(t, []string{"env", "url"}, names)

	shared := domain.NewLeaf(&domain.Question{Name: "x", Type: domain.TypeText})
	bad := domain.NewGroup("bad", shared, domain.NewGroup("g", shared))
	assert.ErrorIs(t, wizard.Check(bad), domain.ErrInvalidTree)
}
