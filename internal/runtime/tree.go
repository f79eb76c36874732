package runtime

import (
	"fmt"
	"strings"

	"github.com/aretw0/wizard/pkg/domain"
)

// CheckTree verifies that root is a well-formed strict tree.
func CheckTree(root *domain.Node) error {
	_, err := indexTree(root)
	return err
}

// indexTree crawls the tree breadth-first, collecting every structural problem,
// and returns the child-to-parent map. A node reachable through two parents
// (including cycles) is rejected: descendant checks during backtracking rely
// on each node having exactly one parent.
func indexTree(root *domain.Node) (map[*domain.Node]*domain.Node, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: nil root", domain.ErrInvalidTree)
	}

	parent := make(map[*domain.Node]*domain.Node)
	seen := map[*domain.Node]bool{root: true}
	queue := []*domain.Node{root}

	var problems []string
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		problems = append(problems, checkNode(n)...)

		for i, child := range n.Children {
			if child == nil {
				problems = append(problems, fmt.Sprintf("%s: child %d is nil", n.Label(), i))
				continue
			}
			if seen[child] {
				problems = append(problems, fmt.Sprintf("%s: node '%s' has more than one parent", n.Label(), child.Label()))
				continue
			}
			seen[child] = true
			parent[child] = n
			queue = append(queue, child)
		}
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("%w:\n- %s", domain.ErrInvalidTree, strings.Join(problems, "\n- "))
	}
	return parent, nil
}

func checkNode(n *domain.Node) []string {
	var problems []string
	switch n.Kind {
	case domain.KindGroup:
		if n.Question != nil {
			problems = append(problems, fmt.Sprintf("group '%s' must not carry a question", n.Label()))
		}
	case domain.KindLeaf:
		q := n.Question
		if q == nil {
			return append(problems, fmt.Sprintf("leaf '%s' has no question", n.Label()))
		}
		if q.Name == "" {
			problems = append(problems, "leaf question has an empty name")
		}
		if q.Type == domain.TypeFunction && q.Func == nil {
			problems = append(problems, fmt.Sprintf("function question '%s' has no func", q.Name))
		}
	}
	// Unknown kinds and question types are reported when visited.
	return problems
}

// Flatten returns the questions of all leaves in pre-order (parent before
// children, siblings in declaration order), ignoring conditions.
func Flatten(root *domain.Node) []*domain.Question {
	var out []*domain.Question
	stack := []*domain.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == nil {
			continue
		}
		if n.Kind == domain.KindLeaf && n.Question != nil {
			out = append(out, n.Question)
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
	return out
}
