package repl

import "errors"

// ErrOutOfBounds is returned for a history index that has no entry.
var ErrOutOfBounds = errors.New("index out of range")
