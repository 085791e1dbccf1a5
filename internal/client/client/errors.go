package client

import "errors"

var (
	ErrUnavailable           = errors.New("server unavailable")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrLocalDataNotAvailable = errors.New("local data unavailable")
	// ErrRejected wraps server-side validation failures.
	ErrRejected = errors.New("rejected by server")
)
