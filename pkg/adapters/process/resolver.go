// Package process resolves tree functions by running allow-listed local commands.
//
// Descriptor params reach the command as WIZARD_ARG_<NAME> environment
// variables, never as command-line flags. The answers collected so far are
// written to stdin as a JSON object. Stdout is the result: a JSON object or
// array when it parses as one, the trimmed text otherwise.
package process

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"os/exec"
	"strings"

	"github.com/aretw0/wizard/pkg/domain"
)

// EnvPrefix prefixes the environment variables carrying descriptor params.
const EnvPrefix = "WIZARD_ARG_"

// Resolver implements ports.RemoteResolver over local processes.
// Only registered functions can run.
type Resolver struct {
	registry map[string]FunctionConfig
	baseDir  string
}

// Option configures the Resolver.
type Option func(*Resolver)

// WithFunctions registers every function of a loaded config.
func WithFunctions(functions map[string]FunctionConfig) Option {
	return func(r *Resolver) {
		maps.Copy(r.registry, functions)
	}
}

// WithBaseDir sets the working directory of executed commands.
func WithBaseDir(dir string) Option {
	return func(r *Resolver) {
		r.baseDir = dir
	}
}

// NewResolver creates a process resolver.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{registry: make(map[string]FunctionConfig)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register allow-lists command under name.
func (r *Resolver) Register(name, command string, args ...string) {
	r.registry[name] = FunctionConfig{Name: name, Command: command, Args: args}
}

// Resolve runs the command registered for fn.Method.
func (r *Resolver) Resolve(ctx context.Context, fn domain.FuncDescriptor, answers domain.AnswerStore) (any, error) {
	cfg, ok := r.registry[fn.Method]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrFunctionNotFound, fn.Method)
	}

	stdin, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("failed to encode answers: %w", err)
	}

	cmd := exec.CommandContext(ctx, cfg.Command, cfg.Args...)
	cmd.Dir = r.baseDir
	cmd.Env = cmd.Environ()
	for k, v := range cfg.Environment {
		cmd.Env = append(cmd.Env, k+"="+v)
	}
	for k, v := range fn.Params {
		cmd.Env = append(cmd.Env, EnvPrefix+strings.ToUpper(k)+"="+envValue(v))
	}
	cmd.Stdin = bytes.NewReader(stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: execution failed: %w: %s", fn.Method, err, strings.TrimSpace(stderr.String()))
	}
	return parseOutput(stdout.String()), nil
}

// envValue formats scalars as text and everything else as JSON.
func envValue(v any) string {
	switch v.(type) {
	case string, int, int64, float64, bool:
		return fmt.Sprint(v)
	case nil:
		return ""
	}
	if data, err := json.Marshal(v); err == nil {
		return string(data)
	}
	return fmt.Sprint(v)
}

func parseOutput(out string) any {
	trimmed := strings.TrimSpace(out)
	if (strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}")) ||
		(strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]")) {
		var v any
		if err := json.Unmarshal([]byte(trimmed), &v); err == nil {
			return v
		}
	}
	return trimmed
}
