package rooms

import "errors"

var (
	ErrUnknownRoom    = errors.New("rooms: room is not managed")
	ErrUnknownUnit    = errors.New("rooms: unit not found")
	ErrUnknownJob     = errors.New("rooms: job not in catalog")
	ErrUnknownCommand = errors.New("rooms: unknown command")
	ErrInvalidCommand = errors.New("rooms: invalid command")
)
