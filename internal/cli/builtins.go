package cli

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/aretw0/wizard/pkg/domain"
	"github.com/aretw0/wizard/pkg/registry"
	"github.com/google/uuid"
	"github.com/spf13/cast"
)

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Builtins returns a registry with the functions every CLI command can call.
//
//	now     params: format (Go layout, default RFC3339)
//	env     params: name, default
//	upper   params: value | answer
//	lower   params: value | answer
//	slug    params: value | answer
//	join    params: answer, sep (default ", ")
//	uuid    no params
func Builtins() *registry.Registry {
	reg := registry.NewRegistry()

	reg.Register("now", func(_ context.Context, params map[string]any, _ domain.AnswerStore) (any, error) {
		layout := cast.ToString(params["format"])
		if layout == "" {
			layout = time.RFC3339
		}
		return time.Now().UTC().Format(layout), nil
	})

	reg.Register("env", func(_ context.Context, params map[string]any, _ domain.AnswerStore) (any, error) {
		name := cast.ToString(params["name"])
		if name == "" {
			return nil, fmt.Errorf("env: missing 'name' param")
		}
		if v, ok := os.LookupEnv(name); ok {
			return v, nil
		}
		return params["default"], nil
	})

	reg.Register("upper", stringFunc(strings.ToUpper))
	reg.Register("lower", stringFunc(strings.ToLower))
	reg.Register("slug", stringFunc(func(s string) string {
		return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
	}))

	reg.Register("join", func(_ context.Context, params map[string]any, answers domain.AnswerStore) (any, error) {
		name := cast.ToString(params["answer"])
		items, err := cast.ToStringSliceE(answers[name])
		if err != nil {
			return nil, fmt.Errorf("join: answer %q: %w", name, err)
		}
		sep := ", "
		if s, ok := params["sep"]; ok {
			sep = cast.ToString(s)
		}
		return strings.Join(items, sep), nil
	})

	reg.Register("uuid", func(context.Context, map[string]any, domain.AnswerStore) (any, error) {
		return uuid.NewString(), nil
	})

	return reg
}

// stringFunc adapts a string transform to a registry function reading either
// the literal "value" param or the answer named by "answer".
func stringFunc(fn func(string) string) registry.Function {
	return func(_ context.Context, params map[string]any, answers domain.AnswerStore) (any, error) {
		v, ok := params["value"]
		if !ok {
			v = answers[cast.ToString(params["answer"])]
		}
		s, err := cast.ToStringE(v)
		if err != nil {
			return nil, err
		}
		return fn(s), nil
	}
}
