package usecase

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnknownLeague         = errors.New("unknown league")
	ErrSourceUnavailable     = errors.New("source unavailable")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// UnknownLeagueError lists the rejected keys next to the accepted ones so
// the boundary can echo both back to the caller.
type UnknownLeagueError struct {
	Invalid   []string
	Available []string
}

func (e *UnknownLeagueError) Error() string {
	return fmt.Sprintf("%s: invalid leagues [%s]", ErrUnknownLeague, strings.Join(e.Invalid, ", "))
}

func (e *UnknownLeagueError) Unwrap() error {
	return ErrUnknownLeague
}
