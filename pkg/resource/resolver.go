// Package resource turns textual locators into concrete URLs.
//
// A locator is either a pseudo-scheme reference such as "classpath:conf/app.yaml",
// an absolute URL with a registered scheme such as "https://example.com" or
// "mailto:someone@example.com", or a plain path. Pseudo-scheme references and
// plain paths are looked up in a SearchPath; the URL handed back always names
// the underlying storage (file:, jar:, mem:, https:), never the pseudo-scheme.
package resource

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	holonlog "github.com/holon-run/propedit/pkg/log"
)

// ClasspathPrefix marks locators that are resolved against the search path.
const ClasspathPrefix = "classpath:"

// Resolver resolves a locator into a concrete URL.
type Resolver interface {
	Resolve(ctx context.Context, locator string) (*url.URL, error)
}

// SchemeResolver handles one class of locators inside a Registry.
type SchemeResolver interface {
	Resolve(ctx context.Context, locator string) (*url.URL, error)
	CanResolve(locator string) bool
}

// Registry classifies locators and dispatches them to the first SchemeResolver
// that accepts them.
type Registry struct {
	resolvers    []SchemeResolver
	schemes      *Schemes
	searchPath   SearchPath
	placeholders bool
	lookupEnv    func(string) (string, bool)
}

// Option configures a Registry.
type Option func(*Registry)

// WithSearchPath sets the search path used for classpath: locators and plain paths.
func WithSearchPath(sp SearchPath) Option {
	return func(r *Registry) {
		r.searchPath = sp
	}
}

// WithSchemes replaces the scheme set accepted for direct URL parsing.
func WithSchemes(s *Schemes) Option {
	return func(r *Registry) {
		r.schemes = s
	}
}

// WithPlaceholders enables ${NAME} expansion using lookup. A nil lookup uses
// the process environment.
func WithPlaceholders(lookup func(string) (string, bool)) Option {
	return func(r *Registry) {
		r.placeholders = true
		r.lookupEnv = lookup
	}
}

// WithResolver inserts an extra resolver ahead of the generic URL resolver.
func WithResolver(sr SchemeResolver) Option {
	return func(r *Registry) {
		r.resolvers = append(r.resolvers, sr)
	}
}

// NewRegistry creates a registry with the classpath, URL and plain-path
// resolvers. Resolvers added through WithResolver are consulted after the
// classpath resolver and before the URL resolver.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{}
	for _, opt := range opts {
		opt(r)
	}
	if r.schemes == nil {
		r.schemes, _ = NewSchemes()
	}
	if r.searchPath == nil {
		r.searchPath = SearchPaths{}
	}

	extra := r.resolvers
	r.resolvers = make([]SchemeResolver, 0, len(extra)+3)
	r.resolvers = append(r.resolvers, &ClasspathResolver{searchPath: r.searchPath})
	r.resolvers = append(r.resolvers, extra...)
	r.resolvers = append(r.resolvers,
		&URLResolver{schemes: r.schemes},
		&PathResolver{searchPath: r.searchPath},
	)
	return r
}

// Schemes returns the scheme set accepted for direct URL parsing.
func (r *Registry) Schemes() *Schemes {
	return r.schemes
}

// Resolve resolves a locator. Every failure matches ErrInvalidLocator.
func (r *Registry) Resolve(ctx context.Context, locator string) (*url.URL, error) {
	original := locator
	if r.placeholders {
		locator = ExpandPlaceholders(locator, r.lookupEnv)
	}
	locator = strings.TrimSpace(locator)
	if locator == "" {
		return nil, invalid(original, errors.New("empty locator"))
	}

	for _, sr := range r.resolvers {
		if !sr.CanResolve(locator) {
			continue
		}
		u, err := sr.Resolve(ctx, locator)
		if err != nil {
			holonlog.Debug("locator resolution failed", "locator", locator, "resolver", fmt.Sprintf("%T", sr), "error", err)
			if errors.Is(err, ErrInvalidLocator) {
				return nil, err
			}
			return nil, invalid(locator, err)
		}
		holonlog.Debug("resolved locator", "locator", locator, "url", u.String())
		return u, nil
	}

	return nil, invalid(locator, errors.New("no resolver accepts locator"))
}

// ClasspathResolver resolves classpath: locators against a search path.
type ClasspathResolver struct {
	searchPath SearchPath
}

// NewClasspathResolver creates a classpath resolver over sp.
func NewClasspathResolver(sp SearchPath) *ClasspathResolver {
	return &ClasspathResolver{searchPath: sp}
}

func (r *ClasspathResolver) CanResolve(locator string) bool {
	return strings.HasPrefix(locator, ClasspathPrefix)
}

func (r *ClasspathResolver) Resolve(ctx context.Context, locator string) (*url.URL, error) {
	return findOnSearchPath(r.searchPath, locator, strings.TrimPrefix(locator, ClasspathPrefix))
}

// URLResolver parses locators that carry a registered scheme. It performs no
// existence check.
type URLResolver struct {
	schemes *Schemes
	// AllowUnregistered accepts any syntactically valid scheme.
	AllowUnregistered bool
}

// NewURLResolver creates a URL resolver accepting the schemes in s.
func NewURLResolver(s *Schemes) *URLResolver {
	return &URLResolver{schemes: s}
}

func (r *URLResolver) CanResolve(locator string) bool {
	_, ok := schemeOf(locator)
	return ok
}

func (r *URLResolver) Resolve(ctx context.Context, locator string) (*url.URL, error) {
	scheme, ok := schemeOf(locator)
	if !ok {
		return nil, invalid(locator, errors.New("missing scheme"))
	}
	if !r.AllowUnregistered && (r.schemes == nil || !r.schemes.Has(scheme)) {
		return nil, invalid(locator, fmt.Errorf("%w %q", ErrUnknownScheme, scheme))
	}
	return ParseURL(locator)
}

// ParseURL parses an absolute URL and normalizes its scheme to lower case.
func ParseURL(locator string) (*url.URL, error) {
	u, err := url.Parse(locator)
	if err != nil {
		return nil, invalid(locator, err)
	}
	if u.Scheme == "" {
		return nil, invalid(locator, errors.New("missing scheme"))
	}
	if u.Opaque == "" && u.Host == "" && u.Path == "" {
		return nil, invalid(locator, errors.New("empty scheme-specific part"))
	}
	return u, nil
}

// PathResolver resolves scheme-less locators against a search path.
type PathResolver struct {
	searchPath SearchPath
}

func (r *PathResolver) CanResolve(locator string) bool {
	_, ok := schemeOf(locator)
	return !ok
}

func (r *PathResolver) Resolve(ctx context.Context, locator string) (*url.URL, error) {
	return findOnSearchPath(r.searchPath, locator, locator)
}

func findOnSearchPath(sp SearchPath, locator, name string) (*url.URL, error) {
	if sp == nil {
		return nil, invalid(locator, fmt.Errorf("%w: no search path configured", ErrNotFound))
	}
	u, err := sp.FindResource(name)
	if err != nil {
		return nil, invalid(locator, err)
	}
	if strings.HasPrefix(strings.ToLower(u.Scheme), strings.TrimSuffix(ClasspathPrefix, ":")) {
		return nil, invalid(locator, fmt.Errorf("search path returned pseudo-scheme URL %s", u))
	}
	return u, nil
}

func isPseudoScheme(name string) bool {
	name = strings.ToLower(name)
	return name+":" == ClasspathPrefix || name+":" == GitHubPrefix
}
