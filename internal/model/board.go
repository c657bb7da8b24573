package model

import (
	"fmt"
	"strings"
)

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

func (p PieceType) getPieceNotation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return ""
	}
	return ""
}

// Side is one of the two movers.
type Side string

const (
	White Side = "white"
	Black Side = "black"
)

// Reverse returns the opposing side.
func (s Side) Reverse() Side {
	if s == White {
		return Black
	}
	return White
}

func (s Side) Valid() bool {
	return s == White || s == Black
}

// pawnDirection is the row delta a pawn of this side advances by.
func (s Side) pawnDirection() int {
	if s == White {
		return 1
	}
	return -1
}

// pawnHomeRow is the row pawns of this side start on.
func (s Side) pawnHomeRow() int {
	if s == White {
		return 1
	}
	return 6
}

// Occupant is what stands on a square. The zero value is an empty square.
type Occupant struct {
	Type PieceType `json:"type"`
	Side Side      `json:"color"`
}

var Empty = Occupant{}

func (o Occupant) IsEmpty() bool {
	return o.Type == ""
}

func (o Occupant) String() string {
	if o.IsEmpty() {
		return "empty"
	}
	return fmt.Sprintf("%s %s", o.Side, o.Type)
}

var glyphs = map[Occupant]string{
	{King, White}: "♔", {Queen, White}: "♕", {Rook, White}: "♖",
	{Bishop, White}: "♗", {Knight, White}: "♘", {Pawn, White}: "♙",
	{King, Black}: "♚", {Queen, Black}: "♛", {Rook, Black}: "♜",
	{Bishop, Black}: "♝", {Knight, Black}: "♞", {Pawn, Black}: "♟",
}

// Glyph is the unicode symbol for the occupant, "." for an empty square.
func (o Occupant) Glyph() string {
	if g, ok := glyphs[o]; ok {
		return g
	}
	return "."
}

// fenLetter is the FEN piece letter, upper case for white.
func (o Occupant) fenLetter() string {
	letter := o.Type.getPieceNotation()
	if o.Type == Pawn {
		letter = "P"
	}
	if o.Side == Black {
		return strings.ToLower(letter)
	}
	return letter
}

// Position is a (row, column) coordinate. Row 0 is rank 1, column 0 is file a.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Valid reports whether the position lies on the 8x8 grid.
func (p Position) Valid() bool {
	return p.Row >= 0 && p.Row < 8 && p.Col >= 0 && p.Col < 8
}

func (p Position) offset(dRow, dCol int) Position {
	return Position{Row: p.Row + dRow, Col: p.Col + dCol}
}

// PlacedPiece bundles a position with the occupant found there when it was read.
type PlacedPiece struct {
	Position Position `json:"position"`
	Occupant Occupant `json:"occupant"`
}

// Board is the 8x8 occupancy grid, indexed [row][col]. It is a value type:
// assigning a Board copies every square.
type Board [8][8]Occupant

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// StartingBoard returns the canonical initial layout with white on rows 0 and 1.
func StartingBoard() Board {
	var b Board
	for col, t := range backRank {
		b[0][col] = Occupant{Type: t, Side: White}
		b[1][col] = Occupant{Type: Pawn, Side: White}
		b[6][col] = Occupant{Type: Pawn, Side: Black}
		b[7][col] = Occupant{Type: t, Side: Black}
	}
	return b
}

// At returns the placed piece at pos. pos must be on the board.
func (b Board) At(pos Position) PlacedPiece {
	return PlacedPiece{Position: pos, Occupant: b[pos.Row][pos.Col]}
}

func (b *Board) set(pos Position, o Occupant) {
	b[pos.Row][pos.Col] = o
}

// Pieces scans the board row by row and returns every piece belonging to side.
func (b Board) Pieces(side Side) []PlacedPiece {
	var pieces []PlacedPiece
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if b[row][col].Side == side && !b[row][col].IsEmpty() {
				pieces = append(pieces, PlacedPiece{Position: Position{Row: row, Col: col}, Occupant: b[row][col]})
			}
		}
	}
	return pieces
}

// Render flattens the board row-major, rank 1 first.
func (b Board) Render() []Occupant {
	squares := make([]Occupant, 0, 64)
	for row := 0; row < 8; row++ {
		squares = append(squares, b[row][:]...)
	}
	return squares
}

// Rows returns the board as nested slices with nil for empty squares,
// the shape the client expects in game state payloads.
func (b Board) Rows() [][]*Occupant {
	rows := make([][]*Occupant, 8)
	for row := 0; row < 8; row++ {
		rows[row] = make([]*Occupant, 8)
		for col := 0; col < 8; col++ {
			if o := b[row][col]; !o.IsEmpty() {
				rows[row][col] = &o
			}
		}
	}
	return rows
}

// String draws the board with rank 8 on top.
func (b Board) String() string {
	var sb strings.Builder
	for row := 7; row >= 0; row-- {
		fmt.Fprintf(&sb, "%d ", row+1)
		for col := 0; col < 8; col++ {
			sb.WriteString(b[row][col].Glyph())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}

// FEN encodes the placement with toMove as the active colour. Castling and
// en passant do not exist in this game so those fields are always "-".
func (b Board) FEN(toMove Side) string {
	var sb strings.Builder
	for row := 7; row >= 0; row-- {
		empty := 0
		for col := 0; col < 8; col++ {
			o := b[row][col]
			if o.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				fmt.Fprintf(&sb, "%d", empty)
				empty = 0
			}
			sb.WriteString(o.fenLetter())
		}
		if empty > 0 {
			fmt.Fprintf(&sb, "%d", empty)
		}
		if row > 0 {
			sb.WriteByte('/')
		}
	}
	active := "w"
	if toMove == Black {
		active = "b"
	}
	return fmt.Sprintf("%s %s - - 0 1", sb.String(), active)
}
