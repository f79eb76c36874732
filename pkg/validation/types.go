package validation

import (
	"fmt"
	"reflect"
	"strings"
)

// Type checks that a value has an expected shape. It backs the TypeOf rule.
type Type interface {
	// Name returns the type name as written in rules, e.g. "int" or "[string]".
	Name() string
	Check(value any) error
}

type scalarType struct {
	name  string
	check func(any) bool
}

func (t scalarType) Name() string { return t.name }

func (t scalarType) Check(value any) error {
	if !t.check(value) {
		return fmt.Errorf("expected %s, got %T", t.name, value)
	}
	return nil
}

type sliceType struct {
	elem Type
}

func (t sliceType) Name() string { return "[" + t.elem.Name() + "]" }

func (t sliceType) Check(value any) error {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return fmt.Errorf("expected slice, got %T", value)
	}
	for i := 0; i < rv.Len(); i++ {
		if err := t.elem.Check(rv.Index(i).Interface()); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

var scalars = map[string]Type{
	"string": scalarType{"string", func(v any) bool { _, ok := v.(string); return ok }},
	"bool":   scalarType{"bool", func(v any) bool { _, ok := v.(bool); return ok }},
	"int":    scalarType{"int", isWhole},
	"float":  scalarType{"float", isNumber},
	"number": scalarType{"number", isNumber},
}

func isWhole(v any) bool {
	switch n := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case float64:
		// Decoded JSON and YAML numbers arrive as float64.
		return n == float64(int64(n))
	}
	return false
}

func isNumber(v any) bool {
	switch v.(type) {
	case float32, float64:
		return true
	}
	return isWhole(v)
}

// ParseType resolves a type name. Slices are written "[elem]".
func ParseType(name string) (Type, error) {
	name = strings.TrimSpace(name)
	if inner, ok := strings.CutPrefix(name, "["); ok {
		if inner, ok = strings.CutSuffix(inner, "]"); ok {
			elem, err := ParseType(inner)
			if err != nil {
				return nil, err
			}
			return sliceType{elem: elem}, nil
		}
	}
	if t, ok := scalars[name]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("unsupported type: %s", name)
}
