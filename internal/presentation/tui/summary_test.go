package tui

import (
	"bytes"
	"errors"
	"testing"

	"github.com/aretw0/wizard/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestSummary(t *testing.T) {
	questions := []*domain.Question{
		{Name: "appName", Type: domain.TypeText},
		{Name: "token", Type: domain.TypePassword},
		{Name: "features", Type: domain.TypeMultiSelect},
		{Name: "env", Type: domain.TypeSingleSelect, ReturnObject: true},
	}
	answers := domain.AnswerStore{
		"appName":  "MyApp",
		"token":    "hunter2",
		"features": []string{"bot", "tab"},
		"env":      domain.OptionItem{ID: "dev", Label: "Development"},
		"extra":    42,
	}

	out := Summary(answers, questions)

	assert.Contains(t, out, "MyApp")
	assert.Contains(t, out, "********")
	assert.NotContains(t, out, "hunter2")
	assert.Contains(t, out, "bot, tab")
	assert.Contains(t, out, "Development")
	assert.Contains(t, out, "42")
	assert.Less(t, bytes.Index([]byte(out), []byte("appName")), bytes.Index([]byte(out), []byte("extra")))
}

func TestError(t *testing.T) {
	assert.Contains(t, Error(errors.New("boom")), "boom")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)
	assert.Contains(t, buf.String(), "_|")
}

func TestRenderer(t *testing.T) {
	out, err := NewRenderer()("**Environment**")
	assert.NoError(t, err)
	assert.Contains(t, out, "Environment")
}
