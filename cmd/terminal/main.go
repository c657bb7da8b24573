// Command terminal is a two player hot-seat game on one terminal. Moves are
// typed as "e2, e4".
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/benbeisheim/shapechess-backend/internal/model"
	"github.com/gofiber/fiber/v2/log"
)

func main() {
	if err := run(os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(in io.Reader, out io.Writer) error {
	board := model.StartingBoard()
	turn := model.White

	fmt.Fprintf(out, "\n%s\n\n", centered("TERMINAL CHESS", 40))
	fmt.Fprintln(out, board.String())

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "%s to move: ", turn)
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "quit", "exit":
			return nil
		}

		move, err := model.ParseMoveLine(line)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}

		next, err := model.AttemptMove(board, turn, move.From, move.To)
		switch {
		case errors.Is(err, model.ErrEmptyOrigin):
			fmt.Fprintln(out, "Choose a square with a piece on it")
			continue
		case errors.Is(err, model.ErrWrongSideToMove):
			fmt.Fprintln(out, "It is not your turn")
			continue
		case err != nil:
			fmt.Fprintln(out, "Illegal move")
			continue
		}

		captured := board.At(move.To).Occupant
		board = next
		fmt.Fprintln(out, board.String())
		if captured.Type == model.King {
			fmt.Fprintf(out, "%s captured the king, %s wins\n", turn, turn)
			return nil
		}

		turn = turn.Reverse()
		check, err := model.IsInCheck(board, turn)
		if err != nil {
			return fmt.Errorf("board lost a king: %w", err)
		}
		if check {
			fmt.Fprintf(out, "Check! %s king is attacked\n", turn)
		}
	}
}

func centered(title string, width int) string {
	pad := width - len(title) - 2
	if pad < 0 {
		return title
	}
	left := pad / 2
	return strings.Repeat("-", left) + " " + title + " " + strings.Repeat("-", pad-left)
}
