package board

import "sync"

var startPosition = sync.OnceValue(func() *Position {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return pos
})

// NewPosition returns the starting position with full repetition history.
// The parsed start position is built once; every call returns a fresh copy.
func NewPosition() *Position {
	return startPosition().Copy()
}

// NewPositionWithMode returns the starting position with the given
// repetition mode.
func NewPositionWithMode(mode RepetitionMode) *Position {
	pos := NewPosition()
	pos.mode = mode
	if mode == RepetitionNone {
		pos.history = nil
	}
	return pos
}
