package dsl

import "github.com/aretw0/wizard/pkg/domain"

// NodeBuilder provides a fluent API for configuring a node and adding children.
type NodeBuilder struct {
	node    *domain.Node
	builder *Builder
}

func (n *NodeBuilder) child(node *domain.Node) *NodeBuilder {
	n.node.AddChild(node)
	return &NodeBuilder{node: node, builder: n.builder}
}

func (n *NodeBuilder) leaf(name string, typ domain.QuestionType) *NodeBuilder {
	return n.child(domain.NewLeaf(&domain.Question{Name: name, Type: typ}))
}

// Group adds a routing group.
func (n *NodeBuilder) Group(name string) *NodeBuilder {
	return n.child(domain.NewGroup(name))
}

// Text adds a free-text question.
func (n *NodeBuilder) Text(name string) *NodeBuilder {
	return n.leaf(name, domain.TypeText)
}

// Password adds a masked text question.
func (n *NodeBuilder) Password(name string) *NodeBuilder {
	return n.leaf(name, domain.TypePassword)
}

// Folder adds a folder-path question.
func (n *NodeBuilder) Folder(name string) *NodeBuilder {
	return n.leaf(name, domain.TypeFolder)
}

// Select adds a single-select question with static options.
func (n *NodeBuilder) Select(name string, options ...string) *NodeBuilder {
	nb := n.leaf(name, domain.TypeSingleSelect)
	nb.node.Question.Options = domain.Options(options...)
	return nb
}

// MultiSelect adds a multi-select question with static options.
func (n *NodeBuilder) MultiSelect(name string, options ...string) *NodeBuilder {
	nb := n.leaf(name, domain.TypeMultiSelect)
	nb.node.Question.Options = domain.Options(options...)
	return nb
}

// Func adds a question answered by the resolver without prompting.
func (n *NodeBuilder) Func(name, method string, params map[string]any) *NodeBuilder {
	nb := n.leaf(name, domain.TypeFunction)
	nb.node.Question.Func = &domain.FuncDescriptor{Method: method, Params: params}
	return nb
}

// If guards the edge from the parent to this node.
func (n *NodeBuilder) If(rules ...domain.Rule) *NodeBuilder {
	n.node.Condition = append(n.node.Condition, rules...)
	return n
}

// question returns the leaf payload, recording an error on groups.
func (n *NodeBuilder) question(method string) *domain.Question {
	if n.node.Question == nil {
		n.builder.fail("%s: group '%s' has no question", method, n.node.Label())
		return &domain.Question{}
	}
	return n.node.Question
}

// Title sets the prompt title.
func (n *NodeBuilder) Title(title string) *NodeBuilder {
	n.question("Title").Title = title
	return n
}

// Placeholder sets the input hint.
func (n *NodeBuilder) Placeholder(text string) *NodeBuilder {
	n.question("Placeholder").Placeholder = text
	return n
}

// Default sets a literal or "$parent" default.
func (n *NodeBuilder) Default(v any) *NodeBuilder {
	n.question("Default").Default = v
	return n
}

// DefaultFunc computes the default through the resolver.
func (n *NodeBuilder) DefaultFunc(method string, params map[string]any) *NodeBuilder {
	n.question("DefaultFunc").DefaultFunc = &domain.FuncDescriptor{Method: method, Params: params}
	return n
}

// Options replaces the static option list.
func (n *NodeBuilder) Options(items ...domain.OptionItem) *NodeBuilder {
	n.question("Options").Options = items
	return n
}

// OptionsFunc resolves the option list at visit time.
func (n *NodeBuilder) OptionsFunc(method string, params map[string]any) *NodeBuilder {
	n.question("OptionsFunc").OptionsFunc = &domain.FuncDescriptor{Method: method, Params: params}
	return n
}

// Validate appends validation rules.
func (n *NodeBuilder) Validate(rules ...domain.Rule) *NodeBuilder {
	q := n.question("Validate")
	q.Validation = append(q.Validation, rules...)
	return n
}

// Required is shorthand for Validate(domain.Required{}).
func (n *NodeBuilder) Required() *NodeBuilder {
	return n.Validate(domain.Required{})
}

// ReturnObject stores whole option items instead of their IDs.
func (n *NodeBuilder) ReturnObject() *NodeBuilder {
	n.question("ReturnObject").ReturnObject = true
	return n
}

// Node returns the underlying domain node.
func (n *NodeBuilder) Node() *domain.Node {
	return n.node
}
