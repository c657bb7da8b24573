package model

import (
	"errors"
	"fmt"
)

// Reasons a move can be refused. Match them with errors.Is.
var (
	ErrEmptyOrigin     = errors.New("no piece at from square")
	ErrWrongSideToMove = errors.New("not your turn")
	ErrIllegalShape    = errors.New("piece cannot move there")
)

// Session level failures.
var (
	ErrGameFull  = errors.New("game is full")
	ErrNotPlayer = errors.New("player not in game")
	ErrGameOver  = errors.New("game is over")
)

// InputError is a malformed or off-board coordinate.
type InputError struct {
	Input  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid square %q: %s", e.Input, e.Reason)
}

// IllegalMoveError is a well formed move the rules refuse. The board it was
// attempted on is left unchanged.
type IllegalMoveError struct {
	From   Position
	To     Position
	Reason error
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s-%s: %v", e.From, e.To, e.Reason)
}

func (e *IllegalMoveError) Unwrap() error {
	return e.Reason
}
