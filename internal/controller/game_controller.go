package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/powerchess/powerchess-backend/internal/service"
	"github.com/powerchess/powerchess-backend/internal/store"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, err := gc.gameService.CreateGame()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, service.ErrGameNotFound) {
			status = fiber.StatusNotFound
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	gameState, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch game state",
		})
	}

	return c.JSON(gameState)
}

func (gc *GameController) GetGameRecord(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	record, err := gc.gameService.GetGameRecord(gameID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch game record",
		})
	}

	return c.JSON(record)
}

// Suggest plays one oracle move for the side to move. The engine re-validates
// the proposal; the response carries the move actually played.
func (gc *GameController) Suggest(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	played, err := gc.gameService.HandleSuggestion(gameID)
	if err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, service.ErrGameNotFound) {
			status = fiber.StatusNotFound
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Move played",
		"move":    played,
	})
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	if err := gc.gameService.JoinMatchmaking(playerID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to join matchmaking",
		})
	}

	return c.JSON(fiber.Map{
		"status": "queued",
	})
}

// MatchmakingEvents long-polls for a match. The response is the match-found
// event payload, or 204 when the wait times out.
func (gc *GameController) MatchmakingEvents(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	ch := make(chan string, 1)
	if err := gc.gameService.RegisterMatchmakingChannel(playerID, ch); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to register for matchmaking events",
		})
	}
	defer gc.gameService.UnregisterMatchmakingChannel(playerID)

	select {
	case payload, ok := <-ch:
		if !ok {
			return c.SendStatus(fiber.StatusNoContent)
		}
		c.Set("Content-Type", "application/json")
		return c.SendString(payload)
	case <-time.After(25 * time.Second):
		return c.SendStatus(fiber.StatusNoContent)
	}
}
