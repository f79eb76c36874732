package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/wizard/pkg/domain"
	"github.com/aretw0/wizard/pkg/ports"
	"golang.org/x/term"
)

// ContentRenderer transforms question titles before they are printed
// (e.g. markdown to ANSI).
type ContentRenderer func(string) (string, error)

// TextPrompter asks questions over a line-based stream.
//
// Select options are numbered; answers may be an index, an ID or a label.
// Multi-select answers are comma separated. ":back" and ":cancel" navigate,
// and end of input cancels.
type TextPrompter struct {
	reader   *bufio.Reader
	writer   io.Writer
	renderer ContentRenderer

	// readPassword reads a line without echo. Nil means passwords are read
	// like any other line.
	readPassword func() (string, error)

	pending chan lineResult
}

type lineResult struct {
	text string
	err  error
}

// TextOption configures a TextPrompter.
type TextOption func(*TextPrompter)

// WithRenderer configures the title renderer.
func WithRenderer(renderer ContentRenderer) TextOption {
	return func(p *TextPrompter) {
		p.renderer = renderer
	}
}

// WithPasswordReader overrides how masked input is read.
func WithPasswordReader(fn func() (string, error)) TextOption {
	return func(p *TextPrompter) {
		p.readPassword = fn
	}
}

// NewTextPrompter creates a prompter over r and w (stdin/stdout when nil).
// When r is a terminal, password questions are read without echo.
func NewTextPrompter(r io.Reader, w io.Writer, opts ...TextOption) *TextPrompter {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	p := &TextPrompter{
		reader: bufio.NewReader(r),
		writer: w,
	}
	if f, ok := r.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		p.readPassword = func() (string, error) {
			b, err := term.ReadPassword(fd)
			fmt.Fprintln(p.writer)
			return string(b), err
		}
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Ask implements ports.Prompter.
func (p *TextPrompter) Ask(ctx context.Context, req *ports.PromptRequest) (domain.NavigationResult, error) {
	p.render(req)

	for {
		line, err := p.read(ctx, req.Question.Type == domain.TypePassword)
		if errors.Is(err, io.EOF) {
			return domain.Cancel(), nil
		}
		if err != nil {
			return domain.NavigationResult{}, err
		}

		switch line {
		case CommandCancel:
			return domain.Cancel(), nil
		case CommandBack:
			if req.CanGoBack {
				return domain.Back(), nil
			}
			fmt.Fprintln(p.writer, "Already at the first question.")
			continue
		}

		value, err := parseAnswer(req, line)
		if err != nil {
			fmt.Fprintf(p.writer, "Error: %v. Please try again.\n", err)
			continue
		}
		if msg := checkAnswer(ctx, req, value); msg != "" {
			fmt.Fprintf(p.writer, "Error: %s. Please try again.\n", msg)
			continue
		}
		return domain.Success(value), nil
	}
}

func (p *TextPrompter) render(req *ports.PromptRequest) {
	q := req.Question
	title := q.Title
	if title == "" {
		title = q.Name
	}
	if p.renderer != nil {
		if out, err := p.renderer(title); err == nil {
			title = out
		}
	}
	fmt.Fprintln(p.writer, strings.TrimSpace(title))

	for i, opt := range req.Options {
		line := fmt.Sprintf("  %d) %s", i+1, opt.Title())
		if opt.Description != "" {
			line += " - " + opt.Description
		}
		fmt.Fprintln(p.writer, line)
	}

	var hints []string
	if q.Placeholder != "" {
		hints = append(hints, q.Placeholder)
	}
	if req.Default != nil && q.Type != domain.TypePassword {
		hints = append(hints, fmt.Sprintf("default: %v", displayDefault(req.Default)))
	}
	if q.Type == domain.TypeMultiSelect {
		hints = append(hints, "comma separated")
	}
	if req.CanGoBack {
		hints = append(hints, CommandBack+" to go back")
	}
	if len(hints) > 0 {
		fmt.Fprintf(p.writer, "(%s)\n", strings.Join(hints, ", "))
	}
}

func displayDefault(v any) any {
	switch d := v.(type) {
	case domain.OptionItem:
		return d.Title()
	case []domain.OptionItem:
		titles := make([]string, 0, len(d))
		for _, it := range d {
			titles = append(titles, it.Title())
		}
		return strings.Join(titles, ", ")
	}
	return v
}

// read returns one trimmed, sanitized line. Malformed input is reported and
// read again.
func (p *TextPrompter) read(ctx context.Context, masked bool) (string, error) {
	for {
		fmt.Fprint(p.writer, "> ")

		var (
			text string
			err  error
		)
		if masked && p.readPassword != nil {
			text, err = p.readPassword()
		} else {
			text, err = p.readLine(ctx)
		}
		if err != nil && (text == "" || !errors.Is(err, io.EOF)) {
			return "", err
		}

		clean, serr := SanitizeInput(strings.TrimSpace(text))
		if serr != nil {
			fmt.Fprintf(p.writer, "Error: %v. Please try again.\n", serr)
			continue
		}
		return clean, nil
	}
}

// readLine reads from the underlying reader in a goroutine so that a done
// context unblocks the caller. An abandoned read is picked up by the next call.
func (p *TextPrompter) readLine(ctx context.Context) (string, error) {
	if p.pending == nil {
		ch := make(chan lineResult, 1)
		go func() {
			text, err := p.reader.ReadString('\n')
			ch <- lineResult{text: text, err: err}
		}()
		p.pending = ch
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-p.pending:
		p.pending = nil
		return res.text, res.err
	}
}
