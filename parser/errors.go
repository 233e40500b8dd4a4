package parser

import "fmt"

// Kind identifies the grammar rule a malformed input violated.
type Kind int

const (
	// KindMissingScheme means the input had no scheme before "://", or no
	// scheme at all.
	KindMissingScheme Kind = iota
	// KindSchemeSeparator means the scheme was not followed by "//".
	KindSchemeSeparator
	// KindPortCharacter means a non-digit appeared while scanning the port.
	KindPortCharacter
	// KindPortOutOfRange means the port value does not fit in 16 bits.
	KindPortOutOfRange
	// KindInvalidPort means the port digits did not parse as an unsigned
	// integer.
	KindInvalidPort
	// KindInvalidHostname means the final hostname contains a byte outside
	// a-z, 0-9, '-', '.'.
	KindInvalidHostname
	// KindHostnameEncoding means the ASCII-compatible encoding step failed.
	KindHostnameEncoding
)

// ParseError describes why an input string could not be parsed. It aborts
// the whole parse; no partial URL is ever returned next to one.
type ParseError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause, if any, for errors.Is/As chains.
func (e *ParseError) Unwrap() error {
	return e.Err
}

func newParseError(kind Kind, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
