// Package editor provides reversible text/value editors: a value is set from
// its textual form and rendered back to text, with an explicit empty state.
package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrConfiguration is returned when an editor is built without a mandatory
// collaborator.
var ErrConfiguration = errors.New("configuration error")

// Converter turns text into a value and back.
type Converter[T any] interface {
	// Parse converts non-blank text into a value.
	Parse(ctx context.Context, text string) (T, error)
	// Format renders a value in its canonical textual form.
	Format(value T) string
}

// Editor holds at most one value of type T.
//
// An Editor is not safe for concurrent mutation; confine it to one goroutine
// or guard it externally.
type Editor[T any] struct {
	conv  Converter[T]
	value T
	set   bool
}

// New creates an empty editor over conv.
func New[T any](conv Converter[T]) (*Editor[T], error) {
	if conv == nil {
		return nil, fmt.Errorf("%w: converter is required", ErrConfiguration)
	}
	return &Editor[T]{conv: conv}, nil
}

// SetAsText parses text and stores the result. Blank text empties the editor.
// On error the previous value is kept.
func (e *Editor[T]) SetAsText(text string) error {
	return e.SetAsTextContext(context.Background(), text)
}

// SetAsTextContext is SetAsText with a caller-supplied context for converters
// that reach out to remote storage.
func (e *Editor[T]) SetAsTextContext(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		e.Clear()
		return nil
	}
	v, err := e.conv.Parse(ctx, text)
	if err != nil {
		return err
	}
	e.value, e.set = v, true
	return nil
}

// AsText returns the canonical text of the held value, or "" when empty.
func (e *Editor[T]) AsText() string {
	if !e.set {
		return ""
	}
	return e.conv.Format(e.value)
}

// Value returns the held value and whether there is one.
func (e *Editor[T]) Value() (T, bool) {
	return e.value, e.set
}

// SetValue stores v directly, bypassing text parsing.
func (e *Editor[T]) SetValue(v T) {
	e.value, e.set = v, true
}

// Clear empties the editor.
func (e *Editor[T]) Clear() {
	var zero T
	e.value, e.set = zero, false
}

// IsEmpty reports whether the editor holds no value.
func (e *Editor[T]) IsEmpty() bool {
	return !e.set
}
