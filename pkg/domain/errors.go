package domain

import "errors"

// ErrCancelled is returned when the user dismisses a question.
var ErrCancelled = errors.New("traversal cancelled")

// ErrBackUnderflow is returned when "back" is requested with no earlier question to return to.
var ErrBackUnderflow = errors.New("no previous question to go back to")

// ErrEmptySelectOption is returned when a select question resolves to no options.
var ErrEmptySelectOption = errors.New("select question has no options")

// ErrUnsupportedNodeType is returned for leaves whose type the engine cannot resolve.
var ErrUnsupportedNodeType = errors.New("unsupported question type")

// ErrInvalidTree is returned when a question tree fails the integrity check.
var ErrInvalidTree = errors.New("invalid question tree")

// ErrAnswersNotFound is returned when no answers are stored under a session ID.
var ErrAnswersNotFound = errors.New("answers not found")

// ErrFunctionNotFound is returned when a resolver has no function for a method.
var ErrFunctionNotFound = errors.New("function not found")
