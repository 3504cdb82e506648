package fluri

import "errors"

var (
	// ErrParseStarted is returned by the `HTTPURL#Parse()` when the URL has
	// already been parsed or any of its fields has already been set.
	ErrParseStarted = errors.New(
		"fluri: url cannot be parsed if it is already being built",
	)

	// ErrUnknownScheme is returned when a scheme name matches none of the
	// supported schemes.
	ErrUnknownScheme = errors.New("fluri: unknown scheme")

	// ErrUnsupportedFormat is returned when a file or a record uses an
	// unsupported serialization format.
	ErrUnsupportedFormat = errors.New("fluri: unsupported format")

	// ErrTemplateNotFound is returned by the `Registry` when no template is
	// registered for a name.
	ErrTemplateNotFound = errors.New("fluri: template not found")
)

// BuildError is returned when a URL is built without one of its required
// fields.
type BuildError struct {
	Prefix string
	Field  string
}

// Error implements the `error`.
func (e *BuildError) Error() string {
	return "fluri: " + e.Field + " is required to build a " + e.Prefix +
		" url"
}

// MalformedURLError is returned when a string cannot be parsed as a URL.
type MalformedURLError struct {
	URL string
	Err error
}

// Error implements the `error`.
func (e *MalformedURLError) Error() string {
	return "fluri: malformed url " + e.URL + ": " + e.Err.Error()
}

// Unwrap returns the underlying error of the e.
func (e *MalformedURLError) Unwrap() error {
	return e.Err
}
