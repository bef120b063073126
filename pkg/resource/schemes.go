package resource

import (
	"fmt"
	"sort"
	"strings"
)

// MemScheme is the scheme of URLs handed out by FSSearchPath.
const MemScheme = "mem"

// DefaultSchemes lists the URL schemes every Schemes set starts with.
var DefaultSchemes = []string{"http", "https", "ftp", "file", "jar", "mailto", MemScheme}

// Schemes is the set of URL schemes a Registry accepts for direct parsing.
// Names are case-insensitive.
type Schemes struct {
	names map[string]struct{}
}

// NewSchemes returns the default scheme set extended with extra.
func NewSchemes(extra ...string) (*Schemes, error) {
	s := &Schemes{names: make(map[string]struct{}, len(DefaultSchemes)+len(extra))}
	for _, name := range DefaultSchemes {
		s.names[name] = struct{}{}
	}
	for _, name := range extra {
		if err := s.Register(name); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Register adds a scheme. Pseudo-schemes cannot be registered since they never
// survive resolution.
func (s *Schemes) Register(name string) error {
	name = strings.ToLower(strings.TrimSpace(strings.TrimSuffix(name, ":")))
	if !isSchemeToken(name) {
		return fmt.Errorf("invalid scheme name %q", name)
	}
	if isPseudoScheme(name) {
		return fmt.Errorf("scheme %q is reserved", name)
	}
	s.names[name] = struct{}{}
	return nil
}

// Has reports whether name is registered.
func (s *Schemes) Has(name string) bool {
	_, ok := s.names[strings.ToLower(name)]
	return ok
}

// Names returns the registered schemes in sorted order.
func (s *Schemes) Names() []string {
	names := make([]string, 0, len(s.names))
	for name := range s.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// isSchemeToken reports whether s matches ALPHA *( ALPHA / DIGIT / "+" / "-" / "." ).
func isSchemeToken(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case i > 0 && ('0' <= c && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return true
}

// schemeOf returns the scheme token of locator, if it has one.
func schemeOf(locator string) (string, bool) {
	i := strings.IndexByte(locator, ':')
	if i <= 0 {
		return "", false
	}
	scheme := locator[:i]
	if !isSchemeToken(scheme) {
		return "", false
	}
	// A single letter followed by ":\" or ":/" is a Windows drive, not a scheme.
	if len(scheme) == 1 && len(locator) > 2 && (locator[2] == '\\' || locator[2] == '/') {
		return "", false
	}
	return scheme, true
}
