package board

import (
	"errors"
	"fmt"
)

// Sentinel errors. Use errors.Is to test for them; the concrete error types
// below carry the details.
var (
	ErrMalformedFEN = errors.New("malformed FEN")
	ErrMalformedUCI = errors.New("malformed UCI move")
	ErrIllegalMove  = errors.New("illegal move")
	ErrGameOver     = errors.New("game over")
)

// FENError describes why a FEN string was rejected.
type FENError struct {
	Field  string // placement, side, castling, en passant, halfmove, fullmove
	Value  string
	Reason string
}

func (e *FENError) Error() string {
	switch {
	case e.Field == "":
		return fmt.Sprintf("%v: %s", ErrMalformedFEN, e.Reason)
	case e.Value == "":
		return fmt.Sprintf("%v: %s: %s", ErrMalformedFEN, e.Field, e.Reason)
	default:
		return fmt.Sprintf("%v: %s %q: %s", ErrMalformedFEN, e.Field, e.Value, e.Reason)
	}
}

func (e *FENError) Unwrap() error {
	return ErrMalformedFEN
}

func fenError(field, value, format string, args ...any) error {
	return &FENError{Field: field, Value: value, Reason: fmt.Sprintf(format, args...)}
}

// MoveError reports a move that could not be applied to a position.
type MoveError struct {
	Move Move
	FEN  string
	Err  error // ErrIllegalMove or ErrGameOver
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("%v: %s in %s", e.Err, e.Move, e.FEN)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}
