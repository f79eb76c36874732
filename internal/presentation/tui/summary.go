package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/wizard/pkg/domain"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#a78bfa"))
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#818cf8"))
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#fb7185"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// Summary renders the collected answers as a bordered key/value table, in
// question order. Password answers are masked.
func Summary(answers domain.AnswerStore, questions []*domain.Question) string {
	secret := map[string]bool{}
	order := make([]string, 0, len(answers))
	seen := map[string]bool{}
	for _, q := range questions {
		if q.Type == domain.TypePassword {
			secret[q.Name] = true
		}
		if answers.Has(q.Name) && !seen[q.Name] {
			seen[q.Name] = true
			order = append(order, q.Name)
		}
	}
	// Seeded answers for questions outside the tree.
	for _, name := range answers.Names() {
		if !seen[name] {
			order = append(order, name)
		}
	}

	width := 0
	for _, name := range order {
		width = max(width, lipgloss.Width(name))
	}

	lines := []string{titleStyle.Render("Answers")}
	for _, name := range order {
		value := formatValue(answers[name])
		if secret[name] {
			value = "********"
		}
		lines = append(lines, fmt.Sprintf("%s  %s", keyStyle.Width(width).Render(name), value))
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

// Error renders an error line.
func Error(err error) string {
	return errorStyle.Render("✗ " + err.Error())
}

func formatValue(v any) string {
	switch x := v.(type) {
	case domain.OptionItem:
		return x.Title()
	case []domain.OptionItem:
		titles := make([]string, len(x))
		for i, it := range x {
			titles[i] = it.Title()
		}
		return strings.Join(titles, ", ")
	case []string:
		return strings.Join(x, ", ")
	case nil:
		return "-"
	}
	return fmt.Sprint(v)
}
