// File: hotload/errors.go
package hotload

import "errors"

var (
	// ErrNotFound indicates the source locator does not resolve to an
	// existing regular file.
	ErrNotFound = errors.New("hotload: source file not found")

	// ErrInvalidInterval indicates a non-positive polling interval.
	ErrInvalidInterval = errors.New("hotload: polling interval must be positive")

	// ErrUnsupportedType indicates a conversion was requested for a type
	// descriptor with no registered converter.
	ErrUnsupportedType = errors.New("hotload: no converter registered for type")

	// ErrUnknownFormat indicates the source format could not be determined
	// from the file extension or content.
	ErrUnknownFormat = errors.New("hotload: unable to determine source format")
)
