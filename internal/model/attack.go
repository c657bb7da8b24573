package model

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
)

// ErrKingNotFound means a board is missing a king. No move can legitimately
// produce such a board except capturing the king itself.
var ErrKingNotFound = errors.New("king not found")

// AttackedBy returns the union of the destinations of every piece of side,
// ignoring whose turn it is.
func AttackedBy(b Board, side Side) map[Position]struct{} {
	attacked := make(map[Position]struct{})
	for _, piece := range b.Pieces(side) {
		for _, pos := range Generate(b, piece) {
			attacked[pos] = struct{}{}
		}
	}
	return attacked
}

// IsAttacked reports whether any piece of side could move to target.
func IsAttacked(b Board, side Side, target Position) bool {
	for _, piece := range b.Pieces(side) {
		if slices.Contains(Generate(b, piece), target) {
			return true
		}
	}
	return false
}

// FindKing locates the king of side.
func FindKing(b Board, side Side) (Position, error) {
	pieces := b.Pieces(side)
	idx := slices.IndexFunc(pieces, func(p PlacedPiece) bool { return p.Occupant.Type == King })
	if idx < 0 {
		return Position{}, fmt.Errorf("%s: %w", side, ErrKingNotFound)
	}
	return pieces[idx].Position, nil
}

// IsInCheck reports whether the king of side is attacked by the other side.
func IsInCheck(b Board, side Side) (bool, error) {
	king, err := FindKing(b, side)
	if err != nil {
		return false, err
	}
	return IsAttacked(b, side.Reverse(), king), nil
}

// AttackedSquares is AttackedBy as a row-major ordered slice.
func AttackedSquares(b Board, side Side) []Position {
	attacked := AttackedBy(b, side)
	positions := make([]Position, 0, len(attacked))
	for pos := range attacked {
		positions = append(positions, pos)
	}
	sortPositions(positions)
	return positions
}

func sortPositions(positions []Position) {
	slices.SortFunc(positions, func(a, b Position) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Col - b.Col
	})
}
