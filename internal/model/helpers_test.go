package model

import "testing"

// boardWith builds a board holding only the given pieces, keyed by square name.
func boardWith(t *testing.T, pieces map[string]Occupant) Board {
	t.Helper()
	var b Board
	for square, o := range pieces {
		pos, err := ParsePosition(square)
		if err != nil {
			t.Fatalf("bad square %q: %v", square, err)
		}
		b.set(pos, o)
	}
	return b
}

func sq(t *testing.T, square string) Position {
	t.Helper()
	pos, err := ParsePosition(square)
	if err != nil {
		t.Fatalf("bad square %q: %v", square, err)
	}
	return pos
}

func squares(t *testing.T, names ...string) []Position {
	t.Helper()
	positions := make([]Position, len(names))
	for i, name := range names {
		positions[i] = sq(t, name)
	}
	return positions
}

func names(positions []Position) []string {
	out := make([]string, len(positions))
	for i, pos := range positions {
		out[i] = pos.String()
	}
	return out
}

var (
	wp = Occupant{Pawn, White}
	wr = Occupant{Rook, White}
	wn = Occupant{Knight, White}
	wb = Occupant{Bishop, White}
	wq = Occupant{Queen, White}
	wk = Occupant{King, White}
	bp = Occupant{Pawn, Black}
	br = Occupant{Rook, Black}
	bn = Occupant{Knight, Black}
	bq = Occupant{Queen, Black}
	bk = Occupant{King, Black}
)
