package editor

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/holon-run/propedit/pkg/resource"
)

// URLConverter resolves locators into URLs through a resource.Resolver.
type URLConverter struct {
	resolver resource.Resolver
	// opaque accepts unregistered schemes as plain URIs instead of failing.
	opaque bool
}

func (c *URLConverter) Parse(ctx context.Context, text string) (*url.URL, error) {
	u, err := c.resolver.Resolve(ctx, text)
	if err != nil && c.opaque && errors.Is(err, resource.ErrUnknownScheme) {
		return resource.ParseURL(strings.TrimSpace(text))
	}
	return u, err
}

func (c *URLConverter) Format(u *url.URL) string {
	if u == nil {
		return ""
	}
	return u.String()
}

// URLEditor edits a *url.URL. Text is resolved through a resource.Resolver, so
// classpath: locators are turned into the URL of the underlying resource.
type URLEditor struct {
	*Editor[*url.URL]
}

// NewURLEditor creates a URL editor. Only schemes known to the resolver are
// accepted.
func NewURLEditor(r resource.Resolver) (*URLEditor, error) {
	return newURLEditor(r, false)
}

// NewURIEditor creates an editor that also accepts URIs with schemes the
// resolver does not know, as long as they are syntactically valid.
func NewURIEditor(r resource.Resolver) (*URLEditor, error) {
	return newURLEditor(r, true)
}

func newURLEditor(r resource.Resolver, opaque bool) (*URLEditor, error) {
	if isNil(r) {
		return nil, fmt.Errorf("%w: resource resolver is required", ErrConfiguration)
	}
	ed, err := New[*url.URL](&URLConverter{resolver: r, opaque: opaque})
	if err != nil {
		return nil, err
	}
	return &URLEditor{Editor: ed}, nil
}

// Value returns a copy of the held URL and whether there is one.
func (e *URLEditor) Value() (*url.URL, bool) {
	u, ok := e.Editor.Value()
	if !ok || u == nil {
		return nil, false
	}
	cp := *u
	return &cp, true
}

// URL returns a copy of the held URL, or nil when empty.
func (e *URLEditor) URL() *url.URL {
	u, _ := e.Value()
	return u
}

// SetValue stores a copy of u. A nil u empties the editor.
func (e *URLEditor) SetValue(u *url.URL) {
	if u == nil {
		e.Clear()
		return
	}
	cp := *u
	e.Editor.SetValue(&cp)
}

func isNil(r resource.Resolver) bool {
	if r == nil {
		return true
	}
	v := reflect.ValueOf(r)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Func, reflect.Interface, reflect.Slice, reflect.Chan:
		return v.IsNil()
	}
	return false
}
