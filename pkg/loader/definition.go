package loader

import "github.com/aretw0/wizard/pkg/domain"

// NodeDefinition is the YAML shape of one tree node.
// A node without a type (or with type "group") is a group.
type NodeDefinition struct {
	Name        string                 `yaml:"name"`
	Type        string                 `yaml:"type"`
	Title       string                 `yaml:"title"`
	Placeholder string                 `yaml:"placeholder"`
	Default     any                    `yaml:"default"`
	DefaultFunc *domain.FuncDescriptor `yaml:"defaultFunc"`
	Options     []any                  `yaml:"options"`
	OptionsFunc *domain.FuncDescriptor `yaml:"optionsFunc"`
	Func        *domain.FuncDescriptor `yaml:"func"`
	// ReturnObject stores whole option items instead of IDs.
	ReturnObject bool `yaml:"returnObject"`

	Validation map[string]any `yaml:"validation"`
	// When guards the edge from the parent, using the validation vocabulary.
	When map[string]any `yaml:"when"`

	Children []NodeDefinition `yaml:"children"`
}

// ruleFields is the decoded form of a validation or condition map.
// Pointer fields distinguish "absent" from zero values.
type ruleFields struct {
	Required    bool                   `mapstructure:"required"`
	Func        *domain.FuncDescriptor `mapstructure:"func"`
	Local       string                 `mapstructure:"local"`
	Exists      bool                   `mapstructure:"exists"`
	NotExist    bool                   `mapstructure:"notExist"`
	Equals      any                    `mapstructure:"equals"`
	Enum        []any                  `mapstructure:"enum"`
	Type        any                    `mapstructure:"type"`
	Pattern     string                 `mapstructure:"pattern"`
	MinLength   *int                   `mapstructure:"minLength"`
	MaxLength   *int                   `mapstructure:"maxLength"`
	StartsWith  *string                `mapstructure:"startsWith"`
	EndsWith    *string                `mapstructure:"endsWith"`
	Contains    *string                `mapstructure:"contains"`
	ContainsAll []string               `mapstructure:"containsAll"`
	ContainsAny []string               `mapstructure:"containsAny"`
}
