package domain

import "context"

// Stage orders rule evaluation. Lower stages run first and the first failing
// rule wins, whatever the order the rules were declared in.
type Stage int

const (
	StageRequired Stage = iota + 1
	StageRemote
	StageLocal
	StageFile
	StageSchema
	StageString
	StageArray
)

// Rule is one validation constraint. The concrete rule types below form a
// closed set; the validator switches on them.
type Rule interface {
	Stage() Stage
}

// Rules is an ordered list of constraints combined with logical AND.
type Rules []Rule

// Required fails on absent or empty values.
type Required struct{}

// RemoteFunc delegates to the RemoteResolver with the candidate bound as the
// "value" parameter. A resolver failure counts as a pass.
type RemoteFunc struct {
	Func FuncDescriptor
}

// LocalFunc returns a non-empty message when the value is invalid.
type LocalFunc struct {
	Fn func(ctx context.Context, value any, answers AnswerStore) string
}

// FileExists fails when the path does not exist.
type FileExists struct{}

// FileNotExist fails when the path already exists.
type FileNotExist struct{}

// Equals requires deep equality with Value.
type Equals struct {
	Value any
}

// TypeOf requires the value to match a type name such as "string", "int",
// "float", "bool" or "[string]".
type TypeOf struct {
	Name string
}

// Pattern requires the string form of the value to match a regular expression.
type Pattern struct {
	Expr string
}

// MinLength bounds the string length (or slice length) from below.
type MinLength struct {
	N int
}

// MaxLength bounds the string length (or slice length) from above.
type MaxLength struct {
	N int
}

// OneOf requires the value to equal one of Values.
type OneOf struct {
	Values []any
}

type StartsWith struct {
	Prefix string
}

type EndsWith struct {
	Suffix string
}

type Contains struct {
	Substring string
}

// ContainsAll requires every listed value to be present in the candidate array.
type ContainsAll struct {
	Values []string
}

// ContainsAny requires at least one listed value to be present in the candidate array.
type ContainsAny struct {
	Values []string
}

func (Required) Stage() Stage     { return StageRequired }
func (RemoteFunc) Stage() Stage   { return StageRemote }
func (LocalFunc) Stage() Stage    { return StageLocal }
func (FileExists) Stage() Stage   { return StageFile }
func (FileNotExist) Stage() Stage { return StageFile }
func (Equals) Stage() Stage       { return StageSchema }
func (TypeOf) Stage() Stage       { return StageSchema }
func (Pattern) Stage() Stage      { return StageSchema }
func (MinLength) Stage() Stage    { return StageSchema }
func (MaxLength) Stage() Stage    { return StageSchema }
func (OneOf) Stage() Stage        { return StageSchema }
func (StartsWith) Stage() Stage   { return StageString }
func (EndsWith) Stage() Stage     { return StageString }
func (Contains) Stage() Stage     { return StageString }
func (ContainsAll) Stage() Stage  { return StageArray }
func (ContainsAny) Stage() Stage  { return StageArray }
