package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/wizard/pkg/domain"
)

// Overlay marks answered questions on the graph.
type Overlay struct {
	Answers domain.AnswerStore
}

// GenerateMermaid renders a question tree as a Mermaid flowchart.
// Shapes:
// - Root: ((Circle))
// - Group: [Rectangle]
// - Function: [[Subroutine]]
// - Select: {{Hexagon}}
// - Other questions: [/Parallelogram/]
// Guarded edges carry their condition as a label.
func GenerateMermaid(root *domain.Node, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	var answered []string
	ids := map[*domain.Node]string{}
	next := 0
	var walk func(n *domain.Node, isRoot bool)
	walk = func(n *domain.Node, isRoot bool) {
		id := fmt.Sprintf("n%d", next)
		next++
		ids[n] = id

		opener, closer := shape(n, isRoot)
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", id, opener, label(n), closer)

		if overlay != nil && n.Question != nil && overlay.Answers.Has(n.Question.Name) {
			answered = append(answered, id)
		}

		for _, c := range n.Children {
			if c == nil {
				continue
			}
			walk(c, false)
			arrow := "-->"
			if len(c.Condition) > 0 {
				arrow = fmt.Sprintf("-- \"%s\" -->", escape(DescribeRules(c.Condition)))
			}
			fmt.Fprintf(&sb, "    %s %s %s\n", id, arrow, ids[c])
		}
	}
	if root != nil {
		walk(root, true)
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef answered fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		for _, id := range answered {
			fmt.Fprintf(&sb, "    class %s answered;\n", id)
		}
	}

	return sb.String()
}

func shape(n *domain.Node, isRoot bool) (string, string) {
	switch {
	case isRoot:
		return "((", "))"
	case n.IsGroup():
		return "[", "]"
	case n.IsFunction():
		return "[[", "]]"
	case n.Question != nil && n.Question.Type.IsSelect():
		return "{{", "}}"
	}
	return "[/", "/]"
}

func label(n *domain.Node) string {
	text := n.Label()
	if n.Question != nil && n.Question.Title != "" {
		text = n.Question.Title
	}
	return escape(text)
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

// DescribeRules renders a rule list as a short human-readable expression.
func DescribeRules(rules domain.Rules) string {
	parts := make([]string, 0, len(rules))
	for _, r := range rules {
		parts = append(parts, describe(r))
	}
	return strings.Join(parts, " and ")
}

func describe(rule domain.Rule) string {
	switch r := rule.(type) {
	case domain.Required:
		return "answered"
	case domain.RemoteFunc:
		return r.Func.Method + "()"
	case domain.LocalFunc:
		return "check"
	case domain.FileExists:
		return "exists"
	case domain.FileNotExist:
		return "not exists"
	case domain.Equals:
		return fmt.Sprintf("= %v", r.Value)
	case domain.OneOf:
		return fmt.Sprintf("in %v", r.Values)
	case domain.TypeOf:
		return "is " + r.Name
	case domain.Pattern:
		return "~ " + r.Expr
	case domain.MinLength:
		return fmt.Sprintf("len >= %d", r.N)
	case domain.MaxLength:
		return fmt.Sprintf("len <= %d", r.N)
	case domain.StartsWith:
		return "starts " + r.Prefix
	case domain.EndsWith:
		return "ends " + r.Suffix
	case domain.Contains:
		return "contains " + r.Substring
	case domain.ContainsAll:
		return "has all " + strings.Join(r.Values, ",")
	case domain.ContainsAny:
		return "has any " + strings.Join(r.Values, ",")
	}
	return fmt.Sprintf("%T", rule)
}
