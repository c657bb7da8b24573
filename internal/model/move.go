package model

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// SimpleMove is an origin and destination pair.
type SimpleMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// Ply describes an applied move for clients.
type Ply struct {
	Piece         Occupant  `json:"piece"`
	From          Position  `json:"from"`
	To            Position  `json:"to"`
	CapturedPiece *Occupant `json:"capturedPiece"`
	Notation      string    `json:"notation"`
}

// AttemptMove moves the piece on from to to if it belongs to turn and to is
// one of its generated destinations. It returns the new board on success.
// On failure it returns b unchanged and an *IllegalMoveError, or an
// *InputError when a coordinate is off the board.
//
// Leaving the mover's own king attacked is not checked.
func AttemptMove(b Board, turn Side, from, to Position) (Board, error) {
	for _, pos := range []Position{from, to} {
		if !pos.Valid() {
			return b, &InputError{Input: pos.String(), Reason: "off the board"}
		}
	}

	origin := b.At(from)
	if origin.Occupant.IsEmpty() {
		return b, &IllegalMoveError{From: from, To: to, Reason: ErrEmptyOrigin}
	}
	if origin.Occupant.Side != turn {
		return b, &IllegalMoveError{From: from, To: to, Reason: ErrWrongSideToMove}
	}
	if !slices.Contains(Generate(b, origin), to) {
		return b, &IllegalMoveError{From: from, To: to, Reason: ErrIllegalShape}
	}

	next := b
	next.set(to, origin.Occupant)
	next.set(from, Empty)
	return next, nil
}

func makePly(before Board, move SimpleMove) Ply {
	piece := before.At(move.From).Occupant
	ply := Ply{
		Piece:    piece,
		From:     move.From,
		To:       move.To,
		Notation: getNotation(before, move),
	}
	if captured := before.At(move.To).Occupant; !captured.IsEmpty() {
		ply.CapturedPiece = &captured
	}
	return ply
}

// getNotation renders a move like "Nb1-c3" or "e4xd5".
func getNotation(before Board, move SimpleMove) string {
	piece := before.At(move.From).Occupant
	sep := "-"
	if !before.At(move.To).Occupant.IsEmpty() {
		sep = "x"
	}
	return fmt.Sprintf("%s%s%s%s", piece.Type.getPieceNotation(), move.From, sep, move.To)
}
