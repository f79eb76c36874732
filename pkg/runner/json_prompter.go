package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aretw0/wizard/pkg/domain"
	"github.com/aretw0/wizard/pkg/ports"
	"github.com/spf13/cast"
)

// Message types written by the JSONPrompter.
const (
	MessageQuestion = "question"
	MessageInvalid  = "invalid"
)

// QuestionMessage is one NDJSON line announcing a question.
type QuestionMessage struct {
	Type         string              `json:"type"`
	Name         string              `json:"name"`
	QuestionType domain.QuestionType `json:"question_type"`
	Title        string              `json:"title,omitempty"`
	Placeholder  string              `json:"placeholder,omitempty"`
	Options      []domain.OptionItem `json:"options,omitempty"`
	Default      any                 `json:"default,omitempty"`
	CanGoBack    bool                `json:"can_go_back"`
	// Message is set on "invalid" lines.
	Message string `json:"message,omitempty"`
}

// Reply is one NDJSON line read by the JSONPrompter. Action is "back" or
// "cancel"; otherwise Value is the answer.
type Reply struct {
	Value  any    `json:"value,omitempty"`
	Action string `json:"action,omitempty"`
}

// JSONPrompter exchanges questions and answers as JSON lines, for driving the
// engine from another process.
type JSONPrompter struct {
	mu      sync.Mutex
	reader  *bufio.Reader
	encoder *json.Encoder
}

// NewJSONPrompter creates a prompter over r and w (stdin/stdout when nil).
func NewJSONPrompter(r io.Reader, w io.Writer) *JSONPrompter {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONPrompter{
		reader:  bufio.NewReader(r),
		encoder: json.NewEncoder(w),
	}
}

// Ask implements ports.Prompter.
func (p *JSONPrompter) Ask(ctx context.Context, req *ports.PromptRequest) (domain.NavigationResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	q := req.Question
	msg := QuestionMessage{
		Type:         MessageQuestion,
		Name:         q.Name,
		QuestionType: q.Type,
		Title:        q.Title,
		Placeholder:  q.Placeholder,
		Options:      req.Options,
		CanGoBack:    req.CanGoBack,
	}
	if q.Type != domain.TypePassword {
		msg.Default = req.Default
	}
	if err := p.encoder.Encode(msg); err != nil {
		return domain.NavigationResult{}, fmt.Errorf("failed to write question: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return domain.NavigationResult{}, err
		}
		reply, err := p.readReply()
		if errors.Is(err, io.EOF) {
			return domain.Cancel(), nil
		}
		if err != nil {
			if invalid := p.invalid(q.Name, err.Error()); invalid != nil {
				return domain.NavigationResult{}, invalid
			}
			continue
		}

		switch reply.Action {
		case "cancel":
			return domain.Cancel(), nil
		case "back":
			if req.CanGoBack {
				return domain.Back(), nil
			}
			if err := p.invalid(q.Name, "already at the first question"); err != nil {
				return domain.NavigationResult{}, err
			}
			continue
		case "":
		default:
			if err := p.invalid(q.Name, fmt.Sprintf("unknown action %q", reply.Action)); err != nil {
				return domain.NavigationResult{}, err
			}
			continue
		}

		value, err := decodeValue(req, reply.Value)
		if err == nil {
			if m := checkAnswer(ctx, req, value); m != "" {
				err = errors.New(m)
			}
		}
		if err != nil {
			if werr := p.invalid(q.Name, err.Error()); werr != nil {
				return domain.NavigationResult{}, werr
			}
			continue
		}
		return domain.Success(value), nil
	}
}

func (p *JSONPrompter) invalid(name, message string) error {
	return p.encoder.Encode(QuestionMessage{Type: MessageInvalid, Name: name, Message: message})
}

// readReply reads one line. Bare JSON strings and arrays, and plain text, are
// taken as the answer.
func (p *JSONPrompter) readReply() (Reply, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return Reply{}, err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return Reply{}, nil
	}
	if strings.HasPrefix(line, "{") {
		var r Reply
		if err := json.Unmarshal([]byte(line), &r); err != nil {
			return Reply{}, fmt.Errorf("malformed reply: %w", err)
		}
		return r, nil
	}
	if strings.HasPrefix(line, `"`) || strings.HasPrefix(line, "[") {
		var v any
		if err := json.Unmarshal([]byte(line), &v); err == nil {
			return Reply{Value: v}, nil
		}
	}
	return Reply{Value: line}, nil
}

// decodeValue maps a JSON value onto the question type. Strings are sanitized
// and select answers are matched against the offered options.
func decodeValue(req *ports.PromptRequest, raw any) (any, error) {
	q := req.Question
	switch q.Type {
	case domain.TypeSingleSelect:
		if raw == nil {
			return defaultSelection(req)
		}
		item, err := optionByID(req.Options, cast.ToString(raw))
		if err != nil {
			return nil, err
		}
		return singleValue(q, item), nil

	case domain.TypeMultiSelect:
		if raw == nil {
			return defaultSelection(req)
		}
		tokens, err := cast.ToStringSliceE(raw)
		if err != nil {
			return nil, fmt.Errorf("expected a list of options")
		}
		items := make([]domain.OptionItem, 0, len(tokens))
		for _, tok := range tokens {
			item, err := optionByID(req.Options, tok)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return multiValue(q, items), nil
	}

	if raw == nil {
		return req.Default, nil
	}
	if s, ok := raw.(string); ok {
		return SanitizeInput(s)
	}
	return raw, nil
}
