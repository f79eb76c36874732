package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/wizard/internal/runtime"
	"github.com/aretw0/wizard/pkg/domain"
	"github.com/aretw0/wizard/pkg/ports"
	"gopkg.in/yaml.v3"
)

// Loader decodes YAML tree definitions.
type Loader struct {
	locals map[string]func(ctx context.Context, value any, answers domain.AnswerStore) string
}

// Option configures the Loader.
type Option func(*Loader)

// WithPredicate makes a named Go predicate available to "local:" rules.
func WithPredicate(name string, fn func(ctx context.Context, value any, answers domain.AnswerStore) string) Option {
	return func(l *Loader) {
		l.locals[name] = fn
	}
}

// New creates a loader.
func New(opts ...Option) *Loader {
	l := &Loader{locals: make(map[string]func(context.Context, any, domain.AnswerStore) string)}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Parse decodes a YAML document into a checked tree.
func (l *Loader) Parse(data []byte) (*domain.Node, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var def NodeDefinition
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", domain.ErrInvalidTree)
		}
		return nil, fmt.Errorf("failed to parse tree: %w", err)
	}
	return l.Build(def)
}

// Build converts a decoded definition into a checked tree.
func (l *Loader) Build(def NodeDefinition) (*domain.Node, error) {
	root, err := l.convert(def, "root")
	if err != nil {
		return nil, err
	}
	if len(root.Condition) > 0 {
		return nil, fmt.Errorf("%w: root: 'when' has no parent to test", domain.ErrInvalidTree)
	}
	if err := runtime.CheckTree(root); err != nil {
		return nil, err
	}
	return root, nil
}

// LoadFile reads and parses a YAML file.
func (l *Loader) LoadFile(path string) (*domain.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tree: %w", err)
	}
	root, err := l.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}

// File returns a TreeLoader that re-reads path on every call.
func (l *Loader) File(path string) ports.TreeLoader {
	return ports.TreeLoaderFunc(func(ctx context.Context) (*domain.Node, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return l.LoadFile(path)
	})
}

func (l *Loader) convert(def NodeDefinition, path string) (*domain.Node, error) {
	var n *domain.Node
	if def.Type == "" || def.Type == string(domain.KindGroup) {
		n = domain.NewGroup(def.Name)
		if def.hasQuestionFields() {
			return nil, fmt.Errorf("%s: group '%s' has question fields; set a type", path, def.Name)
		}
	} else {
		q, err := l.question(def)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		n = domain.NewLeaf(q)
	}

	cond, err := l.decodeRules(def.When)
	if err != nil {
		return nil, fmt.Errorf("%s.when: %w", path, err)
	}
	n.Condition = cond

	for i, childDef := range def.Children {
		child, err := l.convert(childDef, fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, child)
	}
	return n, nil
}

func (l *Loader) question(def NodeDefinition) (*domain.Question, error) {
	q := &domain.Question{
		Name:         def.Name,
		Type:         domain.QuestionType(def.Type),
		Title:        def.Title,
		Placeholder:  def.Placeholder,
		Default:      def.Default,
		DefaultFunc:  def.DefaultFunc,
		OptionsFunc:  def.OptionsFunc,
		Func:         def.Func,
		ReturnObject: def.ReturnObject,
	}
	if !q.Type.Known() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedNodeType, def.Type)
	}

	if len(def.Options) > 0 {
		items, err := domain.ToOptionItems(def.Options)
		if err != nil {
			return nil, fmt.Errorf("options: %w", err)
		}
		q.Options = items
	}

	rules, err := l.decodeRules(def.Validation)
	if err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	q.Validation = rules
	return q, nil
}

func (d NodeDefinition) hasQuestionFields() bool {
	return d.Title != "" || d.Placeholder != "" || d.Default != nil || d.DefaultFunc != nil ||
		len(d.Options) > 0 || d.OptionsFunc != nil || d.Func != nil || len(d.Validation) > 0 || d.ReturnObject
}
