package domain

// NodeKind distinguishes routing nodes from question-bearing nodes.
type NodeKind string

const (
	// KindGroup carries no value and is never prompted. Its children are
	// expanded as if they hung from the group's nearest valued ancestor.
	KindGroup NodeKind = "group"
	// KindLeaf carries a Question.
	KindLeaf NodeKind = "leaf"
)

// Node is a vertex of a static question tree.
// Trees are built once and never mutated by the engine, so the same tree
// can back any number of traversals.
type Node struct {
	// Name labels the node for logs and graphs. Leaves default to their question name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	Kind     NodeKind  `json:"kind" yaml:"kind"`
	Question *Question `json:"question,omitempty" yaml:"question,omitempty"`

	// Children are visited in declaration order.
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`

	// Condition guards the edge from the parent to this node. It is evaluated
	// against the parent's resolved value; the subtree is skipped when any rule fails.
	Condition Rules `json:"-" yaml:"-"`
}

// NewGroup creates a group node with the given children.
func NewGroup(name string, children ...*Node) *Node {
	return &Node{Name: name, Kind: KindGroup, Children: children}
}

// NewLeaf creates a leaf node for the question.
func NewLeaf(q *Question, children ...*Node) *Node {
	return &Node{Name: q.Name, Kind: KindLeaf, Question: q, Children: children}
}

// AddChild appends a child, optionally guarded by condition rules.
func (n *Node) AddChild(child *Node, condition ...Rule) *Node {
	if len(condition) > 0 {
		child.Condition = append(child.Condition, condition...)
	}
	n.Children = append(n.Children, child)
	return child
}

// Label returns the display name of the node.
func (n *Node) Label() string {
	if n.Name != "" {
		return n.Name
	}
	if n.Question != nil {
		return n.Question.Name
	}
	return string(n.Kind)
}

// IsGroup reports whether the node is a routing group.
func (n *Node) IsGroup() bool {
	return n.Kind == KindGroup
}

// IsFunction reports whether the node is a leaf computed without user interaction.
func (n *Node) IsFunction() bool {
	return n.Kind == KindLeaf && n.Question != nil && n.Question.Type == TypeFunction
}
