package editor

import (
	"context"
	"fmt"
	"strings"

	"github.com/holon-run/propedit/pkg/resource"
)

// Kind tags the value type an editor produces.
type Kind string

const (
	KindURL Kind = "url"
	KindURI Kind = "uri"
)

// Kinds lists every supported kind.
func Kinds() []Kind {
	return []Kind{KindURL, KindURI}
}

// ParseKind maps a name onto a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: unknown editor kind %q", ErrConfiguration, s)
}

// TextEditor is the text-facing capability shared by all editors.
type TextEditor interface {
	SetAsText(text string) error
	SetAsTextContext(ctx context.Context, text string) error
	AsText() string
	Clear()
	IsEmpty() bool
}

// ForKind builds the editor registered for kind.
func ForKind(kind Kind, r resource.Resolver) (TextEditor, error) {
	var (
		ed  *URLEditor
		err error
	)
	switch kind {
	case KindURL:
		ed, err = NewURLEditor(r)
	case KindURI:
		ed, err = NewURIEditor(r)
	default:
		return nil, fmt.Errorf("%w: unknown editor kind %q", ErrConfiguration, kind)
	}
	if err != nil {
		return nil, err
	}
	return ed, nil
}
