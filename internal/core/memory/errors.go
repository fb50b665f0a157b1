package memory

import "errors"

var ErrMalformed = errors.New("memory: malformed document")
