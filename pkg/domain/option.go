package domain

import (
	"fmt"
	"slices"
)

// OptionItem is one entry of a select question.
type OptionItem struct {
	ID          string `json:"id" yaml:"id" mapstructure:"id"`
	Label       string `json:"label" yaml:"label" mapstructure:"label"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Detail      string `json:"detail,omitempty" yaml:"detail,omitempty" mapstructure:"detail"`
	Data        any    `json:"data,omitempty" yaml:"data,omitempty" mapstructure:"data"`
}

// Option builds an item whose id and label are the same string.
func Option(id string) OptionItem {
	return OptionItem{ID: id, Label: id}
}

// Options builds items from plain strings.
func Options(ids ...string) []OptionItem {
	items := make([]OptionItem, 0, len(ids))
	for _, id := range ids {
		items = append(items, Option(id))
	}
	return items
}

// Title returns the label, falling back to the ID.
func (o OptionItem) Title() string {
	if o.Label != "" {
		return o.Label
	}
	return o.ID
}

// ToOptionItems converts a resolver result into option items.
// Accepted shapes: []OptionItem, []string, []any of strings or maps, and
// []map[string]any with at least an "id" key.
func ToOptionItems(v any) ([]OptionItem, error) {
	switch items := v.(type) {
	case nil:
		return nil, nil
	case []OptionItem:
		return slices.Clone(items), nil
	case []string:
		return Options(items...), nil
	case []map[string]any:
		out := make([]OptionItem, 0, len(items))
		for i, m := range items {
			item, err := optionFromMap(m)
			if err != nil {
				return nil, fmt.Errorf("option %d: %w", i, err)
			}
			out = append(out, item)
		}
		return out, nil
	case []any:
		out := make([]OptionItem, 0, len(items))
		for i, raw := range items {
			switch e := raw.(type) {
			case string:
				out = append(out, Option(e))
			case OptionItem:
				out = append(out, e)
			case map[string]any:
				item, err := optionFromMap(e)
				if err != nil {
					return nil, fmt.Errorf("option %d: %w", i, err)
				}
				out = append(out, item)
			default:
				return nil, fmt.Errorf("option %d: unsupported type %T", i, raw)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported option list type %T", v)
	}
}

func optionFromMap(m map[string]any) (OptionItem, error) {
	id, _ := m["id"].(string)
	if id == "" {
		return OptionItem{}, fmt.Errorf("missing id")
	}
	item := OptionItem{ID: id, Data: m["data"]}
	item.Label, _ = m["label"].(string)
	item.Description, _ = m["description"].(string)
	item.Detail, _ = m["detail"].(string)
	if item.Label == "" {
		item.Label = id
	}
	return item, nil
}

// FindOption returns the item with the given ID.
func FindOption(items []OptionItem, id string) (OptionItem, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return OptionItem{}, false
}
