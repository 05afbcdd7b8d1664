package service

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/powerchess/powerchess-backend/internal/model"
	"github.com/powerchess/powerchess-backend/internal/powerup"
	"github.com/powerchess/powerchess-backend/internal/store"
)

var ErrGameNotFound = errors.New("game not found")

// GameManager owns the live game registry, the matchmaking queue, and the
// archive of finished games. Each game gets its own power-up system,
// registered as a move observer so offers surface in the broadcast state.
type GameManager struct {
	games            map[string]*model.Game
	systems          map[string]*powerup.System
	archived         map[string]bool
	queue            *model.Queue
	matchingChannels map[string]chan string
	archive          *store.Store
	mu               sync.RWMutex
}

// NewGameManager starts the matchmaking processor. The archive store may be
// nil, in which case finished games are simply not persisted.
func NewGameManager(archive *store.Store) *GameManager {
	gm := &GameManager{
		games:            make(map[string]*model.Game),
		systems:          make(map[string]*powerup.System),
		archived:         make(map[string]bool),
		queue:            model.NewQueue(),
		matchingChannels: make(map[string]chan string),
		archive:          archive,
	}

	go gm.processMatchmaking()

	return gm
}

func (gm *GameManager) CreateGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return errors.New("game already exists")
	}

	gm.newGame(gameID)
	return nil
}

// newGame wires a fresh game to its power-up system. Caller holds gm.mu.
func (gm *GameManager) newGame(gameID string) *model.Game {
	game := model.NewGame(gameID)
	system := powerup.NewSystem()
	game.AddMoveObserver(system)
	gm.games[gameID] = game
	gm.systems[gameID] = system
	return game
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.Color, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return game.AddPlayer(playerID)
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	return gm.queue.AddPlayer(model.Player{ID: playerID})
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) MakeMove(gameID string, playerID string, move model.WSMove) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	if err := game.MakeMove(move); err != nil {
		return err
	}
	gm.archiveIfFinished(game)
	return nil
}

func (gm *GameManager) HandleSquareSelect(gameID string, position model.Position) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	game.HandleSquareSelect(position)
	gm.archiveIfFinished(game)
	return nil
}

// ChoosePowerUp consumes the pending offer for the game and activates the
// chosen modifier.
func (gm *GameManager) ChoosePowerUp(gameID string, choice powerup.Choice) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	gm.mu.RLock()
	system := gm.systems[gameID]
	gm.mu.RUnlock()
	if system == nil {
		return ErrGameNotFound
	}
	modifier, err := system.Choose(choice)
	if err != nil {
		return err
	}
	game.ActivateModifier(modifier)
	gm.archiveIfFinished(game)
	return nil
}

// ApplySuggestion re-validates an oracle proposal on the game and plays
// either it or the fallback move.
func (gm *GameManager) ApplySuggestion(gameID string, suggestion model.SimpleMove) (model.SimpleMove, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.SimpleMove{}, err
	}
	played, err := game.ApplySuggestion(suggestion.From, suggestion.To)
	if err != nil {
		return model.SimpleMove{}, err
	}
	gm.archiveIfFinished(game)
	return played, nil
}

func (gm *GameManager) LoadRecord(gameID string) (*store.GameRecord, error) {
	if gm.archive == nil {
		return nil, store.ErrNotFound
	}
	return gm.archive.LoadGame(gameID)
}

// archiveIfFinished persists a game record the first time a game resolves.
func (gm *GameManager) archiveIfFinished(game *model.Game) {
	if gm.archive == nil {
		return
	}
	state := game.GetState()
	if state.Resolve == nil {
		return
	}

	gm.mu.Lock()
	if gm.archived[game.ID] {
		gm.mu.Unlock()
		return
	}
	gm.archived[game.ID] = true
	gm.mu.Unlock()

	moves := []string{}
	for _, move := range state.MoveHistory {
		if move.WhitePly.Notation != "" {
			moves = append(moves, move.WhitePly.Notation)
		}
		if move.BlackPly.Notation != "" {
			moves = append(moves, move.BlackPly.Notation)
		}
	}
	record := store.GameRecord{
		ID:          game.ID,
		Result:      *state.Resolve,
		FinalFEN:    game.FEN(),
		Moves:       moves,
		Modifiers:   state.ActiveModifiers,
		CompletedAt: time.Now(),
	}
	if err := gm.archive.SaveGame(record); err != nil {
		log.Printf("archive game %s: %v", game.ID, err)
	}
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID)
}

func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	// Replace any channel left over from a dropped long-poll.
	if existing, exists := gm.matchingChannels[playerID]; exists {
		delete(gm.matchingChannels, playerID)
		close(existing)
	}
	gm.matchingChannels[playerID] = ch
	return nil
}

func (gm *GameManager) UnregisterMatchmakingChannel(playerID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	delete(gm.matchingChannels, playerID)
}

func (gm *GameManager) processMatchmaking() {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		gm.mu.Lock()
		for gm.queue.Size() >= 2 {
			player1, player2 := gm.queue.GetNextPair()

			gameID := uuid.New().String()
			game := gm.newGame(gameID)

			p1Color, err := game.AddPlayer(player1.ID)
			if err != nil {
				log.Printf("matchmaking: add player: %v", err)
				continue
			}
			p2Color, err := game.AddPlayer(player2.ID)
			if err != nil {
				log.Printf("matchmaking: add player: %v", err)
				continue
			}

			gm.sendMatchFound(player1.ID, model.MatchFoundEvent{GameID: gameID, Color: p1Color})
			gm.sendMatchFound(player2.ID, model.MatchFoundEvent{GameID: gameID, Color: p2Color})
		}
		gm.mu.Unlock()
	}
}

// sendMatchFound delivers a match event and retires the player's channel.
// Caller holds gm.mu.
func (gm *GameManager) sendMatchFound(playerID string, event model.MatchFoundEvent) {
	ch, ok := gm.matchingChannels[playerID]
	if !ok {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("matchmaking: marshal event: %v", err)
		return
	}
	select {
	case ch <- string(payload):
		delete(gm.matchingChannels, playerID)
		close(ch)
	default:
		log.Printf("matchmaking: player %s not listening", playerID)
	}
}
