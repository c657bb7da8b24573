package model

var (
	diagonalDirs = []Position{{Row: 1, Col: 1}, {Row: 1, Col: -1}, {Row: -1, Col: 1}, {Row: -1, Col: -1}}
	straightDirs = []Position{{Row: 1, Col: 0}, {Row: -1, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: -1}}
	knightDirs   = []Position{{Row: 2, Col: 1}, {Row: 2, Col: -1}, {Row: -2, Col: 1}, {Row: -2, Col: -1}, {Row: 1, Col: 2}, {Row: 1, Col: -2}, {Row: -1, Col: 2}, {Row: -1, Col: -2}}
	kingDirs     = append(append([]Position{}, diagonalDirs...), straightDirs...)
)

// spot classifies a target square relative to the moving side.
type spot int

const (
	spotOffBoard spot = iota
	spotEmpty
	spotFriendly
	spotEnemy
)

func classify(b Board, side Side, pos Position) spot {
	if !pos.Valid() {
		return spotOffBoard
	}
	o := b[pos.Row][pos.Col]
	switch {
	case o.IsEmpty():
		return spotEmpty
	case o.Side == side:
		return spotFriendly
	default:
		return spotEnemy
	}
}

// Generate returns every square the piece could move to on b, judged only
// by its movement shape and the occupancy of b. Whose turn it is and whether
// the mover's king is left exposed are not considered. The result has no
// particular order. An empty PlacedPiece yields nil.
func Generate(b Board, p PlacedPiece) []Position {
	switch p.Occupant.Type {
	case Pawn:
		return pawnMoves(b, p)
	case Knight:
		return stepMoves(b, p, knightDirs)
	case Bishop:
		return slideMoves(b, p, diagonalDirs)
	case Rook:
		return slideMoves(b, p, straightDirs)
	case Queen:
		return append(slideMoves(b, p, diagonalDirs), slideMoves(b, p, straightDirs)...)
	case King:
		return stepMoves(b, p, kingDirs)
	default:
		return nil
	}
}

// slideMoves walks each direction until the board edge or a piece. An enemy
// piece ends the ray but is itself reachable.
func slideMoves(b Board, p PlacedPiece, dirs []Position) []Position {
	moves := []Position{}
	for _, dir := range dirs {
		target := p.Position.offset(dir.Row, dir.Col)
		for {
			s := classify(b, p.Occupant.Side, target)
			if s == spotOffBoard || s == spotFriendly {
				break
			}
			moves = append(moves, target)
			if s == spotEnemy {
				break
			}
			target = target.offset(dir.Row, dir.Col)
		}
	}
	return moves
}

// stepMoves tries each offset once, as knights and kings do.
func stepMoves(b Board, p PlacedPiece, offsets []Position) []Position {
	moves := []Position{}
	for _, dir := range offsets {
		target := p.Position.offset(dir.Row, dir.Col)
		if s := classify(b, p.Occupant.Side, target); s == spotEmpty || s == spotEnemy {
			moves = append(moves, target)
		}
	}
	return moves
}

func pawnMoves(b Board, p PlacedPiece) []Position {
	moves := []Position{}
	side := p.Occupant.Side
	dir := side.pawnDirection()

	// forward 1, then forward 2 from the home row over an empty square
	one := p.Position.offset(dir, 0)
	if classify(b, side, one) == spotEmpty {
		moves = append(moves, one)
		two := p.Position.offset(2*dir, 0)
		if p.Position.Row == side.pawnHomeRow() && classify(b, side, two) == spotEmpty {
			moves = append(moves, two)
		}
	}
	// captures only, no en passant
	for _, dCol := range []int{-1, 1} {
		target := p.Position.offset(dir, dCol)
		if classify(b, side, target) == spotEnemy {
			moves = append(moves, target)
		}
	}
	return moves
}
