package games

import (
	"errors"
	"fmt"
)

// Structural errors. Handlers treat these as a failed outcome, never as a retry.
var (
	// ErrInvalidShape indicates the extraction layout does not match the game.
	ErrInvalidShape = errors.New("extraction shape does not match game")

	// ErrNoPlayersResolved indicates no extracted player could be placed on the roster.
	ErrNoPlayersResolved = errors.New("no players matched the roster")

	// ErrUnknownGame indicates no processor is registered for the requested game.
	ErrUnknownGame = errors.New("unknown game")

	// ErrDuplicateGame indicates a second processor was registered for the same game.
	ErrDuplicateGame = errors.New("game already registered")
)

// Import error codes surfaced to callers and metrics.
const (
	CodeInvalidShape      = "INVALID_SHAPE"
	CodeNoPlayersResolved = "NO_PLAYERS_RESOLVED"
	CodeUnknownGame       = "UNKNOWN_GAME"
	CodePanic             = "PANIC"
)

// ImportError is a structured error carrying a stable code.
type ImportError struct {
	Code    string
	Message string
	Err     error
}

func (e *ImportError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ImportError) Unwrap() error { return e.Err }

// ErrorCode returns the ImportError code in err's chain, or "" when there is none.
func ErrorCode(err error) string {
	var ie *ImportError
	if errors.As(err, &ie) {
		return ie.Code
	}
	return ""
}
