package domain

import "strings"

// QuestionType defines how a leaf is answered.
type QuestionType string

const (
	TypeText         QuestionType = "text"
	TypePassword     QuestionType = "password"
	TypeSingleSelect QuestionType = "single_select"
	TypeMultiSelect  QuestionType = "multi_select"
	TypeFolder       QuestionType = "folder"
	// TypeFunction is resolved through the RemoteResolver, never prompted.
	TypeFunction QuestionType = "function"
)

// IsSelect reports whether the type takes its answer from an option list.
func (t QuestionType) IsSelect() bool {
	return t == TypeSingleSelect || t == TypeMultiSelect
}

// Known reports whether the engine knows how to resolve the type.
func (t QuestionType) Known() bool {
	switch t {
	case TypeText, TypePassword, TypeSingleSelect, TypeMultiSelect, TypeFolder, TypeFunction:
		return true
	}
	return false
}

// ParentRef is the back-reference prefix for defaults computed from the parent's value.
const ParentRef = "$parent"

// FuncDescriptor names a function resolved by a RemoteResolver.
type FuncDescriptor struct {
	Method string         `json:"method" yaml:"method" mapstructure:"method"`
	Params map[string]any `json:"params,omitempty" yaml:"params,omitempty" mapstructure:"params"`
}

// Question is the payload of a leaf node.
type Question struct {
	// Name is the key under which the answer is stored.
	Name        string       `json:"name" yaml:"name"`
	Type        QuestionType `json:"type" yaml:"type"`
	Title       string       `json:"title,omitempty" yaml:"title,omitempty"`
	Placeholder string       `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`

	// Default is a literal or a "$parent" / "$parent.<property>" expression.
	Default any `json:"default,omitempty" yaml:"default,omitempty"`
	// DefaultFunc, when set, takes precedence over Default.
	DefaultFunc *FuncDescriptor `json:"default_func,omitempty" yaml:"default_func,omitempty"`

	Options     []OptionItem    `json:"options,omitempty" yaml:"options,omitempty"`
	OptionsFunc *FuncDescriptor `json:"options_func,omitempty" yaml:"options_func,omitempty"`

	// Func computes the answer of a TypeFunction question.
	Func *FuncDescriptor `json:"func,omitempty" yaml:"func,omitempty"`

	Validation Rules `json:"-" yaml:"-"`

	// ReturnObject stores whole option items instead of their IDs.
	ReturnObject bool `json:"return_object,omitempty" yaml:"return_object,omitempty"`
}

// ParentProperty parses a "$parent" expression. ok is false for any other default.
// prop is empty for a bare "$parent".
func ParentProperty(v any) (prop string, ok bool) {
	s, isString := v.(string)
	if !isString {
		return "", false
	}
	if s == ParentRef {
		return "", true
	}
	if rest, found := strings.CutPrefix(s, ParentRef+"."); found && rest != "" {
		return rest, true
	}
	return "", false
}
