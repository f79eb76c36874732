package domain

// ResultKind tags a NavigationResult.
type ResultKind string

const (
	ResultSuccess ResultKind = "success"
	// ResultPass is an answer accepted without prompting, e.g. a single-option select.
	ResultPass   ResultKind = "pass"
	ResultCancel ResultKind = "cancel"
	ResultBack   ResultKind = "back"
	ResultError  ResultKind = "error"
)

// NavigationResult is the outcome of resolving one node.
type NavigationResult struct {
	Kind  ResultKind
	Value any
	Err   error
}

func Success(v any) NavigationResult { return NavigationResult{Kind: ResultSuccess, Value: v} }
func Pass(v any) NavigationResult    { return NavigationResult{Kind: ResultPass, Value: v} }
func Cancel() NavigationResult       { return NavigationResult{Kind: ResultCancel} }
func Back() NavigationResult         { return NavigationResult{Kind: ResultBack} }

// Failure wraps err as an error outcome.
func Failure(err error) NavigationResult { return NavigationResult{Kind: ResultError, Err: err} }

// Accepted reports whether the result carries an answer.
func (r NavigationResult) Accepted() bool {
	return r.Kind == ResultSuccess || r.Kind == ResultPass
}
