package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/wizard/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tree = `
name: app
children:
  - name: env
    type: single_select
    options: [dev, prod]
    children:
      - name: url
        type: text
        when:
          equals: prod
        validation:
          func:
            method: checkUrl
  - name: createdAt
    type: function
    func:
      method: now
`

func writeTree(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tree.yaml")
	require.NoError(t, os.WriteFile(path, []byte(tree), 0644))
	return path
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestValidate(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runValidate(&out, writeTree(t)))

	assert.Contains(t, out.String(), "- env (single_select)")
	assert.Contains(t, out.String(), "- url (text)")
	assert.Contains(t, out.String(), "External functions: [checkUrl]")
	assert.NotContains(t, out.String(), "[now")
}

func TestValidate_InvalidTree(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: bad\ntype: spinner\n"), 0644))

	assert.Error(t, runValidate(&bytes.Buffer{}, path))
}

func TestFunctionsOf(t *testing.T) {
	q := &domain.Question{
		Name:        "region",
		DefaultFunc: &domain.FuncDescriptor{Method: "defaultRegion"},
		OptionsFunc: &domain.FuncDescriptor{Method: "listRegions"},
		Validation:  domain.Rules{domain.Required{}, domain.RemoteFunc{Func: domain.FuncDescriptor{Method: "checkRegion"}}},
	}
	assert.Equal(t, []string{"defaultRegion", "listRegions", "checkRegion"}, functionsOf(q))
}

func TestGraphCommand(t *testing.T) {
	answers := filepath.Join(t.TempDir(), "answers.yaml")
	require.NoError(t, os.WriteFile(answers, []byte("env: prod\n"), 0644))

	out := execute(t, "graph", writeTree(t), "--answers", answers)

	assert.Contains(t, out, "graph TD")
	assert.Contains(t, out, "env")
}

func TestVersionCommand(t *testing.T) {
	assert.Contains(t, execute(t, "version"), "wizard version dev")
}
