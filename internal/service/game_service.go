package service

import (
	"fmt"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/powerchess/powerchess-backend/internal/ai"
	"github.com/powerchess/powerchess-backend/internal/model"
	"github.com/powerchess/powerchess-backend/internal/powerup"
	"github.com/powerchess/powerchess-backend/internal/store"
)

type GameService struct {
	gameManager *GameManager
	oracle      ai.Oracle
}

func NewGameService(gameManager *GameManager, oracle ai.Oracle) *GameService {
	return &GameService{
		gameManager: gameManager,
		oracle:      oracle,
	}
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.Color, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) CreateGame() (string, error) {
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateGame(gameID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	return gameID, nil
}

func (gs *GameService) JoinMatchmaking(playerID string) error {
	return gs.gameManager.JoinMatchmaking(playerID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) GetGameRecord(gameID string) (*store.GameRecord, error) {
	return gs.gameManager.LoadRecord(gameID)
}

func (gs *GameService) HandleMove(gameID string, playerID string, move model.WSMove) error {
	return gs.gameManager.MakeMove(gameID, playerID, move)
}

func (gs *GameService) HandleSquareSelect(gameID string, position model.Position) error {
	return gs.gameManager.HandleSquareSelect(gameID, position)
}

func (gs *GameService) ChoosePowerUp(gameID string, choice powerup.Choice) error {
	return gs.gameManager.ChoosePowerUp(gameID, choice)
}

// HandleSuggestion asks the oracle for a move and plays it through the
// engine's re-validation path. The move actually played is returned; it may
// differ from the oracle's proposal when the fallback policy kicks in.
func (gs *GameService) HandleSuggestion(gameID string) (model.SimpleMove, error) {
	state, err := gs.gameManager.GetGameState(gameID)
	if err != nil {
		return model.SimpleMove{}, err
	}
	suggestion, err := gs.oracle.Suggest(state)
	if err != nil {
		return model.SimpleMove{}, err
	}
	return gs.gameManager.ApplySuggestion(gameID, suggestion)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string) {
	gs.gameManager.UnregisterConnection(gameID, playerID)
}

func (gs *GameService) RegisterMatchmakingChannel(playerID string, ch chan string) error {
	return gs.gameManager.RegisterMatchmakingChannel(playerID, ch)
}

func (gs *GameService) UnregisterMatchmakingChannel(playerID string) {
	gs.gameManager.UnregisterMatchmakingChannel(playerID)
}
