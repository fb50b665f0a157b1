package body

import "errors"

var (
	ErrInvalidGroup  = errors.New("body: invalid part group")
	ErrEmptyTemplate = errors.New("body: empty template")
)
