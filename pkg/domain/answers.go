package domain

import (
	"maps"
	"reflect"
	"slices"
)

// AnswerStore maps question names to accepted values.
type AnswerStore map[string]any

// NewAnswerStore returns an empty store.
func NewAnswerStore() AnswerStore {
	return make(AnswerStore)
}

// Get returns the answer for name.
func (a AnswerStore) Get(name string) (any, bool) {
	v, ok := a[name]
	return v, ok
}

// Set records an answer, overwriting any previous one.
func (a AnswerStore) Set(name string, value any) {
	a[name] = value
}

// Has reports whether name was answered.
func (a AnswerStore) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// Clone returns a shallow copy. A nil store clones to an empty one.
func (a AnswerStore) Clone() AnswerStore {
	out := make(AnswerStore, len(a))
	maps.Copy(out, a)
	return out
}

// Names returns the answered question names, sorted.
func (a AnswerStore) Names() []string {
	return slices.Sorted(maps.Keys(a))
}

// DiffAnswers returns the entries of next that are new or changed relative to prev.
// Keys present in prev but missing from next are reported with a nil value.
// It returns nil when nothing changed.
func DiffAnswers(prev, next AnswerStore) map[string]any {
	delta := make(map[string]any)
	for k, v := range next {
		old, ok := prev[k]
		if !ok || !reflect.DeepEqual(old, v) {
			delta[k] = v
		}
	}
	for k := range prev {
		if _, ok := next[k]; !ok {
			delta[k] = nil
		}
	}
	if len(delta) == 0 {
		return nil
	}
	return delta
}
