package loader

import (
	"fmt"

	"github.com/aretw0/wizard/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// decodeRules turns a validation/condition map into rules.
// Unknown keys are rejected so that typos do not silently disable a check.
func (l *Loader) decodeRules(raw map[string]any) (domain.Rules, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var def ruleFields
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &def,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, err
	}

	var rules domain.Rules
	if def.Required {
		rules = append(rules, domain.Required{})
	}
	if def.Func != nil {
		if def.Func.Method == "" {
			return nil, fmt.Errorf("func: method is required")
		}
		rules = append(rules, domain.RemoteFunc{Func: *def.Func})
	}
	if def.Local != "" {
		fn, ok := l.locals[def.Local]
		if !ok {
			return nil, fmt.Errorf("local: unknown predicate %q", def.Local)
		}
		rules = append(rules, domain.LocalFunc{Fn: fn})
	}
	if def.Exists {
		rules = append(rules, domain.FileExists{})
	}
	if def.NotExist {
		rules = append(rules, domain.FileNotExist{})
	}
	if _, ok := raw["equals"]; ok {
		rules = append(rules, domain.Equals{Value: def.Equals})
	}
	if len(def.Enum) > 0 {
		rules = append(rules, domain.OneOf{Values: def.Enum})
	}
	if def.Type != nil {
		name, err := formatType(def.Type)
		if err != nil {
			return nil, fmt.Errorf("type: %w", err)
		}
		rules = append(rules, domain.TypeOf{Name: name})
	}
	if def.Pattern != "" {
		rules = append(rules, domain.Pattern{Expr: def.Pattern})
	}
	if def.MinLength != nil {
		rules = append(rules, domain.MinLength{N: *def.MinLength})
	}
	if def.MaxLength != nil {
		rules = append(rules, domain.MaxLength{N: *def.MaxLength})
	}
	if def.StartsWith != nil {
		rules = append(rules, domain.StartsWith{Prefix: *def.StartsWith})
	}
	if def.EndsWith != nil {
		rules = append(rules, domain.EndsWith{Suffix: *def.EndsWith})
	}
	if def.Contains != nil {
		rules = append(rules, domain.Contains{Substring: *def.Contains})
	}
	if len(def.ContainsAll) > 0 {
		rules = append(rules, domain.ContainsAll{Values: def.ContainsAll})
	}
	if len(def.ContainsAny) > 0 {
		rules = append(rules, domain.ContainsAny{Values: def.ContainsAny})
	}
	return rules, nil
}

// formatType accepts "string" or the list form [string] for slices.
func formatType(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []any:
		if len(v) != 1 {
			return "", fmt.Errorf("expected single element list for slice type")
		}
		inner, err := formatType(v[0])
		if err != nil {
			return "", err
		}
		return "[" + inner + "]", nil
	default:
		return "", fmt.Errorf("expected string or list, got %T", value)
	}
}
