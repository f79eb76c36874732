package runner

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/wizard/pkg/domain"
	"github.com/aretw0/wizard/pkg/ports"
	"github.com/spf13/cast"
)

// Navigation commands understood by the line-based prompters.
const (
	CommandBack   = ":back"
	CommandCancel = ":cancel"
)

// parseAnswer turns a raw line into the answer value for req.
// An empty line selects the default when there is one.
func parseAnswer(req *ports.PromptRequest, line string) (any, error) {
	q := req.Question
	switch q.Type {
	case domain.TypeSingleSelect:
		if line == "" {
			return defaultSelection(req)
		}
		item, err := pickOption(req.Options, line)
		if err != nil {
			return nil, err
		}
		return singleValue(q, item), nil

	case domain.TypeMultiSelect:
		if line == "" {
			return defaultSelection(req)
		}
		var items []domain.OptionItem
		for _, token := range strings.Split(line, ",") {
			token = strings.TrimSpace(token)
			if token == "" {
				continue
			}
			item, err := pickOption(req.Options, token)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return multiValue(q, items), nil
	}

	if line == "" && req.Default != nil {
		return req.Default, nil
	}
	return line, nil
}

// pickOption accepts a 1-based index, an ID or a label.
func pickOption(options []domain.OptionItem, token string) (domain.OptionItem, error) {
	if n, err := strconv.Atoi(token); err == nil && n >= 1 && n <= len(options) {
		return options[n-1], nil
	}
	if item, ok := domain.FindOption(options, token); ok {
		return item, nil
	}
	for _, item := range options {
		if strings.EqualFold(item.Label, token) {
			return item, nil
		}
	}
	return domain.OptionItem{}, fmt.Errorf("unknown option %q", token)
}

func optionByID(options []domain.OptionItem, id string) (domain.OptionItem, error) {
	if item, ok := domain.FindOption(options, id); ok {
		return item, nil
	}
	return domain.OptionItem{}, fmt.Errorf("unknown option %q", id)
}

// defaultSelection maps a default (IDs or option items) onto the offered options.
func defaultSelection(req *ports.PromptRequest) (any, error) {
	q := req.Question
	ids := defaultIDs(req.Default)
	if len(ids) == 0 {
		if q.Type == domain.TypeMultiSelect {
			return multiValue(q, nil), nil
		}
		return nil, fmt.Errorf("choose an option")
	}

	items := make([]domain.OptionItem, 0, len(ids))
	for _, id := range ids {
		item, ok := domain.FindOption(req.Options, id)
		if !ok {
			return nil, fmt.Errorf("default %q is not an option", id)
		}
		items = append(items, item)
	}
	if q.Type == domain.TypeSingleSelect {
		return singleValue(q, items[0]), nil
	}
	return multiValue(q, items), nil
}

func defaultIDs(def any) []string {
	switch v := def.(type) {
	case nil:
		return nil
	case domain.OptionItem:
		return []string{v.ID}
	case []domain.OptionItem:
		ids := make([]string, 0, len(v))
		for _, it := range v {
			ids = append(ids, it.ID)
		}
		return ids
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	}
	return cast.ToStringSlice(def)
}

func singleValue(q *domain.Question, item domain.OptionItem) any {
	if q.ReturnObject {
		return item
	}
	return item.ID
}

func multiValue(q *domain.Question, items []domain.OptionItem) any {
	if q.ReturnObject {
		if items == nil {
			return []domain.OptionItem{}
		}
		return items
	}
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	return ids
}

func checkAnswer(ctx context.Context, req *ports.PromptRequest, value any) string {
	if req.Validate == nil {
		return ""
	}
	return req.Validate(ctx, value)
}
