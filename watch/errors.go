package watch

import "errors"

// ErrMalformedWidth is returned when a width message cannot be parsed.
var ErrMalformedWidth = errors.New("malformed width message")

// ErrNotTerminal is returned when the terminal width cannot be read.
var ErrNotTerminal = errors.New("not a terminal")
