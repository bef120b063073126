package resource

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLocator is matched by every error returned for a locator that
	// does not resolve to a valid URL.
	ErrInvalidLocator = errors.New("invalid locator")
	// ErrNotFound reports that a search path holds no resource under a name.
	ErrNotFound = errors.New("resource not found")
	// ErrUnknownScheme reports a scheme token that is not registered.
	ErrUnknownScheme = errors.New("unknown scheme")
)

// LocatorError describes why a locator could not be resolved.
type LocatorError struct {
	Locator string
	Err     error
}

func (e *LocatorError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid locator %q", e.Locator)
	}
	return fmt.Sprintf("invalid locator %q: %v", e.Locator, e.Err)
}

func (e *LocatorError) Unwrap() error {
	return e.Err
}

// Is makes every LocatorError match ErrInvalidLocator.
func (e *LocatorError) Is(target error) bool {
	return target == ErrInvalidLocator
}

func invalid(locator string, err error) error {
	return &LocatorError{Locator: locator, Err: err}
}
