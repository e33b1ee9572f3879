package goviewset

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPage is returned when a page identifier is neither a valid
	// integer nor the "last" token, or falls outside the valid page range.
	ErrInvalidPage = errors.New("invalid page")

	// ErrEmptyPage is returned when the requested page contains no results
	// and empty pages are disallowed. Callers are expected to translate it
	// into a not-found response. It wraps ErrInvalidPage, mirroring the
	// EmptyPage < InvalidPage exception hierarchy of the source framework,
	// so a single errors.Is(err, ErrInvalidPage) covers both classes.
	ErrEmptyPage = fmt.Errorf("%w: page contains no results", ErrInvalidPage)

	// ErrUnknownStatus is wrapped into the panic raised when an action result
	// carries a status outside the fixed vocabulary.
	ErrUnknownStatus = errors.New("unknown action status")
)
