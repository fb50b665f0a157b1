package bus

import "errors"

var (
	ErrNilHandler = errors.New("bus: nil handler")
	ErrEmptyKind  = errors.New("bus: empty event kind")
)
