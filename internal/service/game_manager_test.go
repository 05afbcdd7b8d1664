package service

import (
	"errors"
	"testing"

	"github.com/powerchess/powerchess-backend/internal/model"
	"github.com/powerchess/powerchess-backend/internal/powerup"
	"github.com/powerchess/powerchess-backend/internal/store"
)

func TestCreateGame(t *testing.T) {
	gm := NewGameManager(nil)

	if err := gm.CreateGame("g1"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := gm.CreateGame("g1"); err == nil {
		t.Error("duplicate create succeeded")
	}

	state, err := gm.GetGameState("g1")
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if state.ToMove != model.ColorWhite {
		t.Errorf("new game toMove = %v, want white", state.ToMove)
	}
}

func TestGetGameStateNotFound(t *testing.T) {
	gm := NewGameManager(nil)

	if _, err := gm.GetGameState("missing"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("get state = %v, want ErrGameNotFound", err)
	}
}

func TestChoosePowerUpWithoutOffer(t *testing.T) {
	gm := NewGameManager(nil)
	if err := gm.CreateGame("g1"); err != nil {
		t.Fatalf("create: %v", err)
	}

	err := gm.ChoosePowerUp("g1", powerup.Choice{Kind: model.ModifierForwardCapture})
	if !errors.Is(err, powerup.ErrNoOffer) {
		t.Errorf("choose without offer = %v, want ErrNoOffer", err)
	}
}

func TestOfferSurfacesThroughManager(t *testing.T) {
	gm := NewGameManager(nil)
	if err := gm.CreateGame("g1"); err != nil {
		t.Fatalf("create: %v", err)
	}

	moves := []struct{ from, to model.Position }{
		{model.Position{X: 7, Y: 6}, model.Position{X: 7, Y: 5}},
		{model.Position{X: 0, Y: 1}, model.Position{X: 0, Y: 2}},
		{model.Position{X: 7, Y: 5}, model.Position{X: 7, Y: 4}},
		{model.Position{X: 0, Y: 2}, model.Position{X: 0, Y: 3}},
		{model.Position{X: 7, Y: 4}, model.Position{X: 7, Y: 3}},
	}
	for _, m := range moves {
		if err := gm.MakeMove("g1", "", model.WSMove{From: m.from, To: m.to}); err != nil {
			t.Fatalf("move %v -> %v: %v", m.from, m.to, err)
		}
	}

	state, err := gm.GetGameState("g1")
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if !state.PowerUpOffer {
		t.Fatal("no offer after white's third move")
	}

	if err := gm.ChoosePowerUp("g1", powerup.Choice{Kind: model.ModifierExtendedKnight}); err != nil {
		t.Fatalf("choose: %v", err)
	}
	state, _ = gm.GetGameState("g1")
	if state.PowerUpOffer {
		t.Error("offer flag not cleared after choosing")
	}
	if len(state.ActiveModifiers) != 1 || state.ActiveModifiers[0] != model.ModifierExtendedKnight {
		t.Errorf("active modifiers = %v, want extended knight", state.ActiveModifiers)
	}
}

func TestLoadRecordWithoutArchive(t *testing.T) {
	gm := NewGameManager(nil)

	if _, err := gm.LoadRecord("g1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("load record = %v, want ErrNotFound", err)
	}
}

func TestArchiveOnResolve(t *testing.T) {
	archive, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	t.Cleanup(func() { archive.Close() })

	gm := NewGameManager(archive)
	if err := gm.CreateGame("g1"); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Fool's mate resolves the game in four plies.
	foolsMate := []struct{ from, to model.Position }{
		{model.Position{X: 5, Y: 6}, model.Position{X: 5, Y: 5}},
		{model.Position{X: 4, Y: 1}, model.Position{X: 4, Y: 3}},
		{model.Position{X: 6, Y: 6}, model.Position{X: 6, Y: 4}},
		{model.Position{X: 3, Y: 0}, model.Position{X: 7, Y: 4}},
	}
	for _, m := range foolsMate {
		if err := gm.MakeMove("g1", "", model.WSMove{From: m.from, To: m.to}); err != nil {
			t.Fatalf("move %v -> %v: %v", m.from, m.to, err)
		}
	}

	record, err := gm.LoadRecord("g1")
	if err != nil {
		t.Fatalf("load record: %v", err)
	}
	if record.Result != "checkmate" {
		t.Errorf("archived result = %q, want checkmate", record.Result)
	}
	if len(record.Moves) != 4 {
		t.Errorf("archived moves = %v, want 4 plies", record.Moves)
	}
	if record.FinalFEN == "" {
		t.Error("archived record missing final position")
	}
}
