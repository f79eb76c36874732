package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/wizard/internal/presentation/graph"
	"github.com/aretw0/wizard/pkg/domain"
	"github.com/aretw0/wizard/pkg/dsl"
	"github.com/stretchr/testify/assert"
)

func sampleTree() *domain.Node {
	b := dsl.New("new-app")
	env := b.Select("env", "dev", "prod").Title(`The "env"`)
	env.Text("devUrl").If(domain.Equals{Value: "dev"})
	env.Group("prodSettings").If(domain.OneOf{Values: []any{"prod"}}, domain.MinLength{N: 2}).
		Password("token")
	b.Func("createdAt", "now", nil)
	return b.MustBuild()
}

func TestGenerateMermaid(t *testing.T) {
	out := graph.GenerateMermaid(sampleTree(), nil)

	for _, want := range []string{
		"graph TD\n",
		`n0(("new-app"))`,
		`n1{{"The 'env'"}}`,
		`n2[/"devUrl"/]`,
		`n3["prodSettings"]`,
		`n4[/"token"/]`,
		`n5[["createdAt"]]`,
		`n1 -- "= dev" --> n2`,
		`n1 -- "in [prod] and len >= 2" --> n3`,
		"n3 --> n4",
		"n0 --> n5",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "classDef")
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	out := graph.GenerateMermaid(sampleTree(), &graph.Overlay{Answers: domain.AnswerStore{"env": "dev", "devUrl": "x"}})

	assert.Contains(t, out, "classDef answered")
	assert.Contains(t, out, "class n1 answered;")
	assert.Contains(t, out, "class n2 answered;")
	assert.Equal(t, 2, strings.Count(out, " answered;"))
}

func TestDescribeRules(t *testing.T) {
	assert.Equal(t, "answered and starts http", graph.DescribeRules(domain.Rules{domain.Required{}, domain.StartsWith{Prefix: "http"}}))
	assert.Equal(t, "check()", graph.DescribeRules(domain.Rules{domain.RemoteFunc{Func: domain.FuncDescriptor{Method: "check"}}}))
}
