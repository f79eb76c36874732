package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/wizard"
	"github.com/aretw0/wizard/internal/logging"
	"github.com/aretw0/wizard/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Exit codes of the run command.
const (
	ExitOK        = 0
	ExitError     = 1
	ExitBack      = 2
	ExitCancelled = 130
)

// ExitCode maps the result of Run to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case wizard.IsCancelled(err), errors.Is(err, context.Canceled):
		return ExitCancelled
	case wizard.IsBack(err):
		return ExitBack
	default:
		return ExitError
	}
}

// createLogger configures the application logger.
// In debug mode, it writes to Stderr (to separate from Stdout flow UI).
func createLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// NewLogger is createLogger for the commands.
func NewLogger(debug bool) *slog.Logger {
	return createLogger(debug)
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// LoadAnswers reads an answer set from a YAML or JSON file.
func LoadAnswers(path string) (domain.AnswerStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read answers: %w", err)
	}

	answers := domain.NewAnswerStore()
	// YAML is a superset of JSON.
	if err := yaml.Unmarshal(data, &answers); err != nil {
		return nil, fmt.Errorf("failed to parse answers %s: %w", path, err)
	}
	return answers, nil
}

// WriteAnswers writes answers to path, as YAML for .yaml/.yml and JSON otherwise.
func WriteAnswers(path string, answers domain.AnswerStore) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(answers)
	default:
		data, err = json.MarshalIndent(answers, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("failed to encode answers: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}
	return os.WriteFile(path, data, 0644)
}
