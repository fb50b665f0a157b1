package server

import "errors"

var (
	ErrFeedClosed     = errors.New("feed is closed")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidMessage = errors.New("invalid message")
	ErrQueueFull      = errors.New("command queue is full")
)
