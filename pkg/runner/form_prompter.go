package runner

import (
	"context"
	"errors"
	"io"
	"os"
	"slices"

	"github.com/aretw0/wizard/pkg/domain"
	"github.com/aretw0/wizard/pkg/ports"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cast"
)

// backValue is the option value of the synthetic "Back" entry in selects.
const backValue = "\x00back"

// FormPrompter renders each question as an interactive huh form.
// Selects get a "Back" entry and inputs accept ":back" when going back is allowed.
type FormPrompter struct {
	stdin      io.Reader
	stdout     io.Writer
	accessible bool
	theme      *huh.Theme

	// run executes a built form; replaced in tests.
	run func(ctx context.Context, form *huh.Form) error
}

// FormOption configures a FormPrompter.
type FormOption func(*FormPrompter)

// WithAccessible switches huh to its screen-reader friendly line mode.
func WithAccessible(accessible bool) FormOption {
	return func(p *FormPrompter) {
		p.accessible = accessible
	}
}

// WithTheme sets the form theme.
func WithTheme(theme *huh.Theme) FormOption {
	return func(p *FormPrompter) {
		p.theme = theme
	}
}

// WithFormIO overrides the terminal streams.
func WithFormIO(r io.Reader, w io.Writer) FormOption {
	return func(p *FormPrompter) {
		p.stdin = r
		p.stdout = w
	}
}

// NewFormPrompter creates a prompter backed by huh.
func NewFormPrompter(opts ...FormOption) *FormPrompter {
	p := &FormPrompter{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		theme:  huh.ThemeCharm(),
		run: func(ctx context.Context, form *huh.Form) error {
			return form.RunWithContext(ctx)
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Ask implements ports.Prompter.
func (p *FormPrompter) Ask(ctx context.Context, req *ports.PromptRequest) (domain.NavigationResult, error) {
	field, collect := p.field(ctx, req)

	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(p.theme).
		WithAccessible(p.accessible).
		WithInput(p.stdin).
		WithOutput(p.stdout)

	if err := p.run(ctx, form); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return domain.Cancel(), nil
		}
		return domain.NavigationResult{}, err
	}
	return collect()
}

type collector func() (domain.NavigationResult, error)

func (p *FormPrompter) field(ctx context.Context, req *ports.PromptRequest) (huh.Field, collector) {
	q := req.Question
	title := q.Title
	if title == "" {
		title = q.Name
	}

	switch q.Type {
	case domain.TypeSingleSelect:
		return p.singleSelect(ctx, req, title)
	case domain.TypeMultiSelect:
		return p.multiSelect(ctx, req, title)
	case domain.TypeFolder:
		return p.folder(ctx, req, title)
	}
	return p.input(ctx, req, title)
}

func (p *FormPrompter) input(ctx context.Context, req *ports.PromptRequest, title string) (huh.Field, collector) {
	var value string
	if req.Default != nil {
		value = cast.ToString(req.Default)
	}

	in := huh.NewInput().
		Title(title).
		Placeholder(req.Question.Placeholder).
		Value(&value).
		Validate(func(s string) error {
			if req.CanGoBack && s == CommandBack {
				return nil
			}
			clean, err := SanitizeInput(s)
			if err != nil {
				return err
			}
			if msg := checkAnswer(ctx, req, clean); msg != "" {
				return errors.New(msg)
			}
			return nil
		})
	if req.Question.Type == domain.TypePassword {
		in = in.EchoMode(huh.EchoModePassword)
	}
	if req.CanGoBack {
		in = in.Description("type " + CommandBack + " to go back")
	}

	return in, func() (domain.NavigationResult, error) {
		if req.CanGoBack && value == CommandBack {
			return domain.Back(), nil
		}
		clean, err := SanitizeInput(value)
		if err != nil {
			return domain.NavigationResult{}, err
		}
		return domain.Success(clean), nil
	}
}

func (p *FormPrompter) folder(ctx context.Context, req *ports.PromptRequest, title string) (huh.Field, collector) {
	if req.CanGoBack {
		// The picker has no room for a back entry; fall back to a path input.
		return p.input(ctx, req, title)
	}
	path := cast.ToString(req.Default)
	if path == "" {
		path = "."
	}
	picker := huh.NewFilePicker().
		Title(title).
		CurrentDirectory(path).
		DirAllowed(true).
		FileAllowed(false).
		Value(&path).
		Validate(func(s string) error {
			if msg := checkAnswer(ctx, req, s); msg != "" {
				return errors.New(msg)
			}
			return nil
		})
	return picker, func() (domain.NavigationResult, error) {
		return domain.Success(path), nil
	}
}

func (p *FormPrompter) options(req *ports.PromptRequest) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(req.Options)+1)
	for _, item := range req.Options {
		opts = append(opts, huh.NewOption(item.Title(), item.ID))
	}
	if req.CanGoBack {
		opts = append(opts, huh.NewOption("← Back", backValue))
	}
	return opts
}

func (p *FormPrompter) singleSelect(ctx context.Context, req *ports.PromptRequest, title string) (huh.Field, collector) {
	q := req.Question
	var value string
	if ids := defaultIDs(req.Default); len(ids) > 0 {
		value = ids[0]
	}

	resolve := func(id string) (any, error) {
		item, err := optionByID(req.Options, id)
		if err != nil {
			return nil, err
		}
		return singleValue(q, item), nil
	}

	sel := huh.NewSelect[string]().
		Title(title).
		Options(p.options(req)...).
		Value(&value).
		Validate(func(id string) error {
			if id == backValue {
				return nil
			}
			v, err := resolve(id)
			if err != nil {
				return err
			}
			if msg := checkAnswer(ctx, req, v); msg != "" {
				return errors.New(msg)
			}
			return nil
		})

	return sel, func() (domain.NavigationResult, error) {
		if value == backValue {
			return domain.Back(), nil
		}
		v, err := resolve(value)
		if err != nil {
			return domain.NavigationResult{}, err
		}
		return domain.Success(v), nil
	}
}

func (p *FormPrompter) multiSelect(ctx context.Context, req *ports.PromptRequest, title string) (huh.Field, collector) {
	q := req.Question
	values := defaultIDs(req.Default)

	resolve := func(ids []string) (any, error) {
		items := make([]domain.OptionItem, 0, len(ids))
		for _, id := range ids {
			item, err := optionByID(req.Options, id)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return multiValue(q, items), nil
	}

	ms := huh.NewMultiSelect[string]().
		Title(title).
		Options(p.options(req)...).
		Value(&values).
		Validate(func(ids []string) error {
			if slices.Contains(ids, backValue) {
				return nil
			}
			v, err := resolve(ids)
			if err != nil {
				return err
			}
			if msg := checkAnswer(ctx, req, v); msg != "" {
				return errors.New(msg)
			}
			return nil
		})

	return ms, func() (domain.NavigationResult, error) {
		if slices.Contains(values, backValue) {
			return domain.Back(), nil
		}
		v, err := resolve(values)
		if err != nil {
			return domain.NavigationResult{}, err
		}
		return domain.Success(v), nil
	}
}
