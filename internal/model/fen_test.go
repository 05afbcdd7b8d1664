package model

import (
	"strings"
	"testing"

	"github.com/dylhunn/dragontoothmg"
)

func TestInitialFEN(t *testing.T) {
	g := NewGame("test")
	want := "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	if got := g.FEN(); got != want {
		t.Errorf("FEN() = %q, want %q", got, want)
	}
}

func TestFENEnPassantSquare(t *testing.T) {
	g := NewGame("test")
	mustMove(t, g, sq("e2"), sq("e4"))

	fen := g.FEN()
	if !strings.Contains(fen, " b KQkq e3 ") {
		t.Errorf("FEN after e4 = %q, want black to move with e3 en passant", fen)
	}
}

func TestFENCastlingRightsFollowRookMoves(t *testing.T) {
	g := NewGame("test")
	mustMove(t, g, sq("h2"), sq("h4"))
	mustMove(t, g, sq("a7"), sq("a5"))
	mustMove(t, g, sq("h1"), sq("h3"))
	mustMove(t, g, sq("a8"), sq("a6"))

	fen := g.FEN()
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		t.Fatalf("FEN has %d fields: %q", len(fields), fen)
	}
	if fields[2] != "Qk" {
		t.Errorf("castling field = %q, want Qk after both h/a rooks moved", fields[2])
	}
}

// Cross-check against an independent move generator: positions reached through
// the engine must yield the same legal move count when re-read from FEN, as
// long as no modifiers are active.
func TestFENCrossCheck(t *testing.T) {
	lines := []struct {
		name  string
		moves [][2]string
	}{
		{"start", nil},
		{"open game", [][2]string{{"e2", "e4"}, {"e7", "e5"}, {"g1", "f3"}, {"b8", "c6"}}},
		{"queen out early", [][2]string{{"e2", "e4"}, {"e7", "e5"}, {"d1", "h5"}, {"b8", "c6"}}},
	}
	for _, line := range lines {
		t.Run(line.name, func(t *testing.T) {
			g := NewGame("test")
			for _, m := range line.moves {
				mustMove(t, g, sq(m[0]), sq(m[1]))
			}

			board := dragontoothmg.ParseFen(g.FEN())
			want := len(board.GenerateLegalMoves())
			got := len(g.legalMovesForColor(g.GetState().ToMove))
			if got != want {
				t.Errorf("legal move count = %d, reference says %d for %q", got, want, g.FEN())
			}
		})
	}
}
