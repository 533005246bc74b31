// Package xerr defines the closed set of error codes raised by the rules
// engine, shared across internal/board, internal/command, internal/session
// and internal/game so callers can dispatch on a stable code rather than a
// message string.
package xerr

import (
	"errors"
	"fmt"
)

// Code is one member of the closed error set.
type Code string

// The closed error set. No other code is ever produced by this module.
const (
	FENInvalidRankCount     Code = "FEN_INVALID_RANK_COUNT"
	FENInvalidFileCount     Code = "FEN_INVALID_FILE_COUNT"
	FENMismatchParentheses  Code = "FEN_MISMATCH_PARENTHESES"
	FENInvalidPiece         Code = "FEN_INVALID_PIECE"
	FENInvalidFormat        Code = "FEN_INVALID_FORMAT"
	BoardInvalidSquare      Code = "BOARD_INVALID_SQUARE"
	BoardInvalidTerrain     Code = "BOARD_INVALID_TERRAIN"
	CommanderLimitExceeded  Code = "COMMANDER_LIMIT_EXCEEDED"
	CombinationFailed       Code = "COMBINATION_FAILED"
	MovePieceNotFound       Code = "MOVE_PIECE_NOT_FOUND"
	MoveInvalidDestination  Code = "MOVE_INVALID_DESTINATION"
	CaptureInvalidTarget    Code = "CAPTURE_INVALID_TARGET"
	SessionInvalidOperation Code = "SESSION_INVALID_OPERATION"
	InternalInconsistency   Code = "INTERNAL_INCONSISTENCY"
)

// Error is the engine's error type: a closed Code plus a human-readable
// message and an optional wrapped cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds an *Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error that carries an underlying cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether err is an *Error with the given code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
