// Package mcp exposes a question tree to MCP clients: questions can be listed,
// candidate answers validated and tree functions resolved.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/aretw0/wizard/internal/logging"
	"github.com/aretw0/wizard/internal/runtime"
	"github.com/aretw0/wizard/pkg/domain"
	"github.com/aretw0/wizard/pkg/ports"
	"github.com/aretw0/wizard/pkg/runner"
	"github.com/aretw0/wizard/pkg/validation"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// TreeURI addresses the question list resource.
const TreeURI = "wizard://questions"

// QuestionInfo describes one question of the tree.
type QuestionInfo struct {
	Name         string              `json:"name" jsonschema_description:"Key under which the answer is stored"`
	Type         domain.QuestionType `json:"type"`
	Title        string              `json:"title,omitempty"`
	Placeholder  string              `json:"placeholder,omitempty"`
	Default      any                 `json:"default,omitempty"`
	Options      []domain.OptionItem `json:"options,omitempty" jsonschema_description:"Static options; dynamic lists are resolved at traversal time"`
	DynamicItems bool                `json:"dynamic_options,omitempty"`
	Conditional  bool                `json:"conditional,omitempty" jsonschema_description:"Asked only when its branch condition holds"`
}

// QuestionsResponse is the output of list_questions.
type QuestionsResponse struct {
	Questions []QuestionInfo `json:"questions"`
}

// ValidationResponse is the output of validate_answer.
type ValidationResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// Server serves a question tree over MCP.
type Server struct {
	loader    ports.TreeLoader
	resolver  ports.RemoteResolver
	validator *validation.Validator
	logger    *slog.Logger
	version   string
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithResolver enables resolve_function and remote validation rules.
func WithResolver(r ports.RemoteResolver) Option {
	return func(s *Server) {
		s.resolver = r
	}
}

// WithLogger configures the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithVersion sets the version advertised to clients.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = v
	}
}

// NewServer creates a new MCP server over the tree produced by loader.
// The tree is reloaded on every request.
func NewServer(loader ports.TreeLoader, opts ...Option) *Server {
	s := &Server{
		loader:  loader,
		logger:  logging.NewNop(),
		version: "dev",
	}
	for _, opt := range opts {
		opt(s)
	}

	vopts := []validation.Option{validation.WithLogger(s.logger)}
	if s.resolver != nil {
		vopts = append(vopts, validation.WithResolver(s.resolver))
	}
	s.validator = validation.New(vopts...)

	s.mcpServer = server.NewMCPServer("wizard-mcp", s.version)
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves over SSE on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{Addr: addr, Handler: mux}
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_questions",
		mcp.WithDescription("List every question of the tree in traversal order, ignoring branch conditions."),
		mcp.WithOutputSchema[QuestionsResponse](),
	), mcp.NewStructuredToolHandler(s.handleListQuestions))

	s.mcpServer.AddTool(mcp.NewTool("validate_answer",
		mcp.WithDescription("Check a candidate answer against a question's validation rules."),
		mcp.WithString("question", mcp.Required(), mcp.Description("Question name")),
		mcp.WithString("value", mcp.Required(), mcp.Description("Candidate answer. Select answers may be JSON (e.g. [\"a\",\"b\"])")),
		mcp.WithString("answers", mcp.Description("JSON object of answers collected so far")),
		mcp.WithOutputSchema[ValidationResponse](),
	), mcp.NewStructuredToolHandler(s.handleValidate))

	s.mcpServer.AddTool(mcp.NewTool("resolve_function",
		mcp.WithDescription("Call a tree function (defaults, option lists, computed answers)."),
		mcp.WithString("method", mcp.Required(), mcp.Description("Function name")),
		mcp.WithString("params", mcp.Description("JSON object of parameters")),
		mcp.WithString("answers", mcp.Description("JSON object of answers collected so far")),
	), s.handleResolve)
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(TreeURI, "Question list",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		resp, err := s.questions(ctx)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(resp)
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{URI: TreeURI, MIMEType: "application/json", Text: string(data)},
		}, nil
	})
}

func (s *Server) handleListQuestions(ctx context.Context, _ mcp.CallToolRequest, _ map[string]any) (QuestionsResponse, error) {
	return s.questions(ctx)
}

func (s *Server) questions(ctx context.Context) (QuestionsResponse, error) {
	root, err := s.loader.LoadTree(ctx)
	if err != nil {
		return QuestionsResponse{}, fmt.Errorf("load tree: %w", err)
	}

	conditional := map[*domain.Question]bool{}
	markConditional(root, false, conditional)

	resp := QuestionsResponse{Questions: []QuestionInfo{}}
	for _, q := range runtime.Flatten(root) {
		resp.Questions = append(resp.Questions, QuestionInfo{
			Name:         q.Name,
			Type:         q.Type,
			Title:        q.Title,
			Placeholder:  q.Placeholder,
			Default:      q.Default,
			Options:      q.Options,
			DynamicItems: q.OptionsFunc != nil,
			Conditional:  conditional[q],
		})
	}
	return resp, nil
}

func markConditional(n *domain.Node, inherited bool, out map[*domain.Question]bool) {
	if n == nil {
		return
	}
	guarded := inherited || len(n.Condition) > 0
	if n.Question != nil {
		out[n.Question] = guarded
	}
	for _, c := range n.Children {
		markConditional(c, guarded, out)
	}
}

func (s *Server) handleValidate(ctx context.Context, _ mcp.CallToolRequest, args map[string]any) (ValidationResponse, error) {
	name, _ := args["question"].(string)
	raw, _ := args["value"].(string)

	answers, err := decodeObject(args, "answers")
	if err != nil {
		return ValidationResponse{}, err
	}

	root, err := s.loader.LoadTree(ctx)
	if err != nil {
		return ValidationResponse{}, fmt.Errorf("load tree: %w", err)
	}
	questions := runtime.Flatten(root)
	idx := slices.IndexFunc(questions, func(q *domain.Question) bool { return q.Name == name })
	if idx < 0 {
		return ValidationResponse{}, fmt.Errorf("unknown question %q", name)
	}
	q := questions[idx]

	clean, err := runner.SanitizeInput(raw)
	if err != nil {
		s.logger.Warn("MCP validate: input rejected", "err", err, "size", len(raw))
		return ValidationResponse{}, fmt.Errorf("input rejected: %w", err)
	}

	msg := s.validator.Validate(ctx, q.Validation, candidate(q, clean), domain.AnswerStore(answers))
	return ValidationResponse{Valid: msg == "", Message: msg}, nil
}

// candidate decodes JSON for select answers; other types take the raw text.
func candidate(q *domain.Question, raw string) any {
	if !q.Type.IsSelect() {
		return raw
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	if items, ok := v.([]any); ok {
		out := make([]string, 0, len(items))
		for _, it := range items {
			out = append(out, fmt.Sprint(it))
		}
		return out
	}
	return v
}

func (s *Server) handleResolve(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.resolver == nil {
		return mcp.NewToolResultError("no resolver configured"), nil
	}
	args := request.GetArguments()
	method, _ := args["method"].(string)

	params, err := decodeObject(args, "params")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	answers, err := decodeObject(args, "answers")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.resolver.Resolve(ctx, domain.FuncDescriptor{Method: method, Params: params}, answers)
	if err != nil {
		if errors.Is(err, domain.ErrFunctionNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("unknown function %q", method)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("function %s failed: %v", method, err)), nil
	}

	data, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// decodeObject reads an optional JSON object argument.
func decodeObject(args map[string]any, key string) (map[string]any, error) {
	out := map[string]any{}
	switch v := args[key].(type) {
	case nil:
	case string:
		if v == "" {
			break
		}
		if err := json.Unmarshal([]byte(v), &out); err != nil {
			return nil, fmt.Errorf("%s: invalid JSON object: %w", key, err)
		}
	case map[string]any:
		out = v
	default:
		return nil, fmt.Errorf("%s: expected a JSON object", key)
	}
	return out, nil
}
