package runtime

import (
	"errors"
	"fmt"

	"github.com/aretw0/wizard/pkg/domain"
)

// TraversalError reports why a traversal stopped before completing.
// Kind is ResultCancel, ResultBack or ResultError.
type TraversalError struct {
	Kind     domain.ResultKind
	Question string
	Err      error
}

func (e *TraversalError) Error() string {
	switch e.Kind {
	case domain.ResultCancel:
		return fmt.Sprintf("traversal cancelled at '%s'", e.Question)
	case domain.ResultBack:
		return fmt.Sprintf("back requested at '%s': %v", e.Question, e.Err)
	}
	if e.Question == "" {
		return fmt.Sprintf("traversal failed: %v", e.Err)
	}
	return fmt.Sprintf("question '%s' failed: %v", e.Question, e.Err)
}

func (e *TraversalError) Unwrap() error {
	return e.Err
}

// ResultOf maps the error returned by Traverse to the outcome kind.
func ResultOf(err error) domain.ResultKind {
	if err == nil {
		return domain.ResultSuccess
	}
	var te *TraversalError
	if errors.As(err, &te) {
		return te.Kind
	}
	return domain.ResultError
}
