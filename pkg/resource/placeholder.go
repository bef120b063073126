package resource

import (
	"os"
	"strings"
)

// ExpandPlaceholders replaces ${NAME} and ${NAME:default} in s using lookup,
// or the process environment when lookup is nil. Placeholders that cannot be
// resolved and have no default are left untouched.
func ExpandPlaceholders(s string, lookup func(string) (string, bool)) string {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if !strings.Contains(s, "${") {
		return s
	}

	var b strings.Builder
	rest := s
	for {
		start := strings.Index(rest, "${")
		if start < 0 {
			b.WriteString(rest)
			break
		}
		end := strings.IndexByte(rest[start+2:], '}')
		if end < 0 {
			b.WriteString(rest)
			break
		}
		end += start + 2

		b.WriteString(rest[:start])
		expr := rest[start+2 : end]
		name, def, hasDefault := strings.Cut(expr, ":")
		if v, ok := lookup(name); ok && name != "" {
			b.WriteString(v)
		} else if hasDefault {
			b.WriteString(def)
		} else {
			b.WriteString(rest[start : end+1])
		}
		rest = rest[end+1:]
	}
	return b.String()
}
