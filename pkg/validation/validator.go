package validation

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"reflect"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/wizard/internal/logging"
	"github.com/aretw0/wizard/pkg/domain"
	"github.com/aretw0/wizard/pkg/ports"
	"github.com/spf13/cast"
)

// Validator evaluates rule lists against candidate answers.
type Validator struct {
	resolver ports.RemoteResolver
	logger   *slog.Logger
}

// Option configures the Validator.
type Option func(*Validator)

// WithResolver enables RemoteFunc rules. Without a resolver they always pass.
func WithResolver(r ports.RemoteResolver) Option {
	return func(v *Validator) {
		v.resolver = r
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) {
		v.logger = logger
	}
}

// New creates a Validator.
func New(opts ...Option) *Validator {
	v := &Validator{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate returns an empty string when value satisfies every rule, otherwise
// the message of the first failing rule. Rules run in stage order (required,
// remote, local, file, schema, string, array) regardless of declaration order.
func (v *Validator) Validate(ctx context.Context, rules domain.Rules, value any, answers domain.AnswerStore) string {
	if len(rules) == 0 {
		return ""
	}
	ordered := slices.Clone(rules)
	slices.SortStableFunc(ordered, func(a, b domain.Rule) int {
		return cmp.Compare(a.Stage(), b.Stage())
	})

	for _, rule := range ordered {
		if msg := v.check(ctx, rule, value, answers); msg != "" {
			return msg
		}
	}
	return ""
}

// Passes is Validate reported as a boolean, used for edge conditions.
func (v *Validator) Passes(ctx context.Context, rules domain.Rules, value any, answers domain.AnswerStore) bool {
	return v.Validate(ctx, rules, value, answers) == ""
}

func (v *Validator) check(ctx context.Context, rule domain.Rule, value any, answers domain.AnswerStore) string {
	// Comparison rules see a selected option as its ID.
	scalar := optionIDs(value)
	switch r := rule.(type) {
	case domain.Required:
		if isEmpty(value) {
			return msgRequired
		}
	case domain.RemoteFunc:
		return v.remote(ctx, r, value, answers)
	case domain.LocalFunc:
		if r.Fn != nil {
			return r.Fn(ctx, value, answers)
		}
	case domain.FileExists:
		path := cast.ToString(value)
		if path == "" {
			return msgEmptyPath
		}
		if _, err := os.Stat(path); err != nil {
			return fmt.Sprintf(msgPathMissing, path)
		}
	case domain.FileNotExist:
		path := cast.ToString(value)
		if path == "" {
			return msgEmptyPath
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Sprintf(msgPathExists, path)
		}
	case domain.Equals:
		if !equalValues(scalar, r.Value) {
			return violation(scalar, "equals", r.Value)
		}
	case domain.OneOf:
		if !slices.ContainsFunc(r.Values, func(want any) bool { return equalValues(scalar, want) }) {
			return violation(scalar, "enum", r.Values)
		}
	case domain.TypeOf:
		t, err := ParseType(r.Name)
		if err != nil {
			return fmt.Sprintf(msgBadRule, "type", err)
		}
		if err := t.Check(value); err != nil {
			return fmt.Sprintf(msgTypeMismatch, value, t.Name(), err)
		}
	case domain.Pattern:
		re, err := regexp.Compile(r.Expr)
		if err != nil {
			return fmt.Sprintf(msgBadRule, "pattern", err)
		}
		if !re.MatchString(cast.ToString(scalar)) {
			return violation(scalar, "pattern", r.Expr)
		}
	case domain.MinLength:
		if length(scalar) < r.N {
			return violation(scalar, "minLength", r.N)
		}
	case domain.MaxLength:
		if length(scalar) > r.N {
			return violation(scalar, "maxLength", r.N)
		}
	case domain.StartsWith:
		if !strings.HasPrefix(cast.ToString(scalar), r.Prefix) {
			return violation(scalar, "startsWith", r.Prefix)
		}
	case domain.EndsWith:
		if !strings.HasSuffix(cast.ToString(scalar), r.Suffix) {
			return violation(scalar, "endsWith", r.Suffix)
		}
	case domain.Contains:
		if !strings.Contains(cast.ToString(scalar), r.Substring) {
			return violation(scalar, "contains", r.Substring)
		}
	case domain.ContainsAll:
		have := toStrings(value)
		for _, want := range r.Values {
			if !slices.Contains(have, want) {
				return violation(value, "containsAll", r.Values)
			}
		}
	case domain.ContainsAny:
		have := toStrings(value)
		if !slices.ContainsFunc(r.Values, func(want string) bool { return slices.Contains(have, want) }) {
			return violation(value, "containsAny", r.Values)
		}
	default:
		return fmt.Sprintf(msgBadRule, "unknown", fmt.Sprintf("%T", rule))
	}
	return ""
}

// remote runs a RemoteFunc rule. Resolver failures pass: a broken remote check
// must not block the user.
func (v *Validator) remote(ctx context.Context, r domain.RemoteFunc, value any, answers domain.AnswerStore) string {
	if v.resolver == nil {
		return ""
	}
	fn := domain.FuncDescriptor{Method: r.Func.Method, Params: make(map[string]any, len(r.Func.Params)+1)}
	maps.Copy(fn.Params, r.Func.Params)
	fn.Params["value"] = value

	res, err := v.resolver.Resolve(ctx, fn, answers)
	if err != nil {
		v.logger.Warn("remote validation failed, accepting value", "method", fn.Method, "err", err)
		return ""
	}
	switch msg := res.(type) {
	case nil:
		return ""
	case string:
		return msg
	case bool:
		if !msg {
			return violation(value, fn.Method, true)
		}
		return ""
	default:
		return cast.ToString(msg)
	}
}

// isEmpty reports falsy values: nil, false, zero numbers, empty strings and
// empty collections.
func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return s == ""
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return rv.IsZero()
	}
	return false
}

// optionIDs replaces option items with their IDs and leaves other values as is.
func optionIDs(value any) any {
	switch v := value.(type) {
	case domain.OptionItem:
		return v.ID
	case *domain.OptionItem:
		if v == nil {
			return nil
		}
		return v.ID
	case []domain.OptionItem:
		ids := make([]string, 0, len(v))
		for _, it := range v {
			ids = append(ids, it.ID)
		}
		return ids
	}
	return value
}

func equalValues(a, b any) bool {
	if reflect.DeepEqual(a, b) {
		return true
	}
	// Loaded definitions may disagree on scalar types ("8080" vs 8080).
	sa, errA := cast.ToStringE(a)
	sb, errB := cast.ToStringE(b)
	return errA == nil && errB == nil && sa == sb
}

func length(value any) int {
	if s, ok := value.(string); ok {
		return utf8.RuneCountInString(s)
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len()
	}
	return utf8.RuneCountInString(cast.ToString(value))
}

// toStrings treats the candidate as an array. A scalar is a one-element array
// and option items contribute their IDs.
func toStrings(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		return []string{v}
	case domain.OptionItem:
		return []string{v.ID}
	case []domain.OptionItem:
		ids := make([]string, 0, len(v))
		for _, it := range v {
			ids = append(ids, it.ID)
		}
		return ids
	}
	out, err := cast.ToStringSliceE(value)
	if err != nil {
		return []string{cast.ToString(value)}
	}
	return out
}
