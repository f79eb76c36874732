package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"

	"github.com/aretw0/wizard"
	"github.com/aretw0/wizard/internal/presentation/tui"
	"github.com/aretw0/wizard/internal/runtime"
	"github.com/aretw0/wizard/pkg/domain"
	"github.com/aretw0/wizard/pkg/loader"
	"github.com/aretw0/wizard/pkg/observability"
	"github.com/aretw0/wizard/pkg/ports"
	"github.com/aretw0/wizard/pkg/runner"
	"github.com/aretw0/wizard/pkg/session"
	"golang.org/x/term"
)

// Message types written after the last question in JSON mode.
const (
	MessageDone  = "done"
	MessageError = "error"
)

// ResultMessage is the final NDJSON line of a JSON-mode run.
type ResultMessage struct {
	Type    string             `json:"type"`
	Result  domain.ResultKind  `json:"result"`
	Answers domain.AnswerStore `json:"answers,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	TreePath string
	Plain    bool
	JSON     bool
	Debug    bool

	SeedPath   string
	SessionID  string
	Checkpoint bool
	OutputPath string

	Store    StoreOptions
	Resolver ResolverOptions

	Stdin  io.Reader
	Stdout io.Writer
	// Prompter overrides the prompter chosen from Plain/JSON.
	Prompter ports.Prompter
}

// Run loads the tree, traverses it and reports the answers.
func Run(ctx context.Context, opts RunOptions) (domain.AnswerStore, error) {
	logger := createLogger(opts.Debug)
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	out := opts.Stdout

	root, err := loader.New().LoadFile(opts.TreePath)
	if err != nil {
		return nil, err
	}

	var seed domain.AnswerStore
	if opts.SeedPath != "" {
		if seed, err = LoadAnswers(opts.SeedPath); err != nil {
			return nil, err
		}
	}

	resolver, err := NewResolver(opts.Resolver, logger)
	if err != nil {
		return nil, err
	}

	prompter := opts.Prompter
	if prompter == nil {
		prompter = newPrompter(opts)
	}

	hooks := observability.LogHooks(logger)
	var manager *session.Manager
	if opts.SessionID != "" {
		p, err := OpenRepository(opts.Store)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := p.Close(); err != nil {
				logger.Warn("failed to close store", "err", err)
			}
		}()

		managerOpts := []session.Option{
			session.WithLogger(logger),
			session.WithCheckpoint(opts.Checkpoint),
		}
		if p.Locker != nil {
			managerOpts = append(managerOpts, session.WithLocker(p.Locker))
		}
		manager = session.NewManager(p.Repo, managerOpts...)
		hooks = hooks.Merge(manager.Hooks())
	} else if opts.Checkpoint {
		logger.Warn("--checkpoint has no effect without --session")
	}

	w, err := wizard.New(prompter,
		wizard.WithResolver(resolver),
		wizard.WithLifecycleHooks(hooks),
		wizard.WithLogger(logger),
		wizard.WithName(root.Label()),
	)
	if err != nil {
		return nil, err
	}

	if !opts.JSON {
		tui.PrintBanner(out)
		if manager != nil {
			printSystemMessage(out, "Session '%s' active.", opts.SessionID)
		}
	}

	var answers domain.AnswerStore
	if manager != nil {
		answers, err = manager.Run(ctx, opts.SessionID, root, seededTraverser{w: w, seed: seed})
	} else {
		answers, err = w.Traverse(ctx, root, seed)
	}
	if err != nil {
		reportFailure(out, opts.JSON, err)
		return nil, err
	}

	if opts.OutputPath != "" {
		if err := WriteAnswers(opts.OutputPath, answers); err != nil {
			return nil, err
		}
		logger.Info("answers written", "path", opts.OutputPath)
	}

	if opts.JSON {
		writeResult(out, ResultMessage{Type: MessageDone, Result: domain.ResultSuccess, Answers: answers}, logger)
	} else {
		fmt.Fprintln(out, tui.Summary(answers, wizard.Questions(root)))
	}
	return answers, nil
}

func newPrompter(opts RunOptions) ports.Prompter {
	switch {
	case opts.JSON:
		return runner.NewJSONPrompter(opts.Stdin, opts.Stdout)
	case opts.Plain || !isTerminal(opts.Stdin):
		return runner.NewTextPrompter(opts.Stdin, opts.Stdout, runner.WithRenderer(tui.NewRenderer()))
	default:
		return runner.NewFormPrompter(runner.WithFormIO(opts.Stdin, opts.Stdout))
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func reportFailure(out io.Writer, jsonMode bool, err error) {
	var te *wizard.TraversalError
	question := ""
	if errors.As(err, &te) {
		question = te.Question
	}

	if jsonMode {
		writeResult(out, ResultMessage{Type: MessageError, Result: runtime.ResultOf(err), Error: err.Error()}, nil)
		return
	}

	switch {
	case wizard.IsCancelled(err):
		printSystemMessage(out, "Cancelled at '%s'.", question)
	case wizard.IsBack(err):
		printSystemMessage(out, "Went back past the first question.")
	case errors.Is(err, context.Canceled):
		printSystemMessage(out, "Interrupted.")
	default:
		fmt.Fprintln(out, tui.Error(err))
	}
}

func writeResult(out io.Writer, msg ResultMessage, logger *slog.Logger) {
	if err := json.NewEncoder(out).Encode(msg); err != nil && logger != nil {
		logger.Warn("failed to write result", "err", err)
	}
}

// seededTraverser layers file seeds under the answers stored for a session.
type seededTraverser struct {
	w    *wizard.Wizard
	seed domain.AnswerStore
}

func (s seededTraverser) Traverse(ctx context.Context, root *domain.Node, stored domain.AnswerStore) (domain.AnswerStore, error) {
	merged := s.seed.Clone()
	maps.Copy(merged, stored)
	return s.w.Traverse(ctx, root, merged)
}
