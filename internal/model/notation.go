package model

import (
	"fmt"
	"strings"
)

// String renders the position in coordinate notation, e.g. "e2".
func (p Position) String() string {
	if !p.Valid() {
		return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
	}
	return fmt.Sprintf("%c%d", 'a'+p.Col, p.Row+1)
}

// ParsePosition decodes coordinate notation such as "e2" or "E2".
func ParsePosition(text string) (Position, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	if len(s) != 2 {
		return Position{}, &InputError{Input: text, Reason: "expected a file and a rank like e2"}
	}
	file, rank := s[0], s[1]
	if file < 'a' || file > 'h' {
		return Position{}, &InputError{Input: text, Reason: "file must be a to h"}
	}
	if rank < '1' || rank > '8' {
		return Position{}, &InputError{Input: text, Reason: "rank must be 1 to 8"}
	}
	return Position{Row: int(rank - '1'), Col: int(file - 'a')}, nil
}

// ParseMoveLine decodes "e2, e4", "e2 e4" or "e2,e4".
func ParseMoveLine(line string) (SimpleMove, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\r' || r == '\n'
	})
	if len(fields) != 2 {
		return SimpleMove{}, &InputError{Input: strings.TrimSpace(line), Reason: "expected two squares like e2, e4"}
	}
	from, err := ParsePosition(fields[0])
	if err != nil {
		return SimpleMove{}, err
	}
	to, err := ParsePosition(fields[1])
	if err != nil {
		return SimpleMove{}, err
	}
	return SimpleMove{From: from, To: to}, nil
}

// Resolve decodes text and returns what stands on that square of b.
func Resolve(b Board, text string) (PlacedPiece, error) {
	pos, err := ParsePosition(text)
	if err != nil {
		return PlacedPiece{}, err
	}
	return b.At(pos), nil
}
