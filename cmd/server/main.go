package main

import (
	"flag"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/powerchess/powerchess-backend/internal/ai"
	"github.com/powerchess/powerchess-backend/internal/controller"
	"github.com/powerchess/powerchess-backend/internal/middleware"
	"github.com/powerchess/powerchess-backend/internal/service"
	"github.com/powerchess/powerchess-backend/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	addr := flag.String("addr", envOr("POWERCHESS_ADDR", ":3000"), "listen address")
	dataDir := flag.String("data", envOr("POWERCHESS_DATA", "data"), "archive database directory")
	origin := flag.String("origin", envOr("POWERCHESS_ORIGIN", "http://localhost:5173"), "allowed CORS origin")
	flag.Parse()

	archive, err := store.Open(*dataDir)
	if err != nil {
		log.Fatalf("open archive: %v", err)
	}
	defer archive.Close()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     *origin,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))

	gameManager := service.NewGameManager(archive)
	gameService := service.NewGameService(gameManager, ai.NewRandomOracle())

	gameController := controller.NewGameController(gameService)
	wsController := controller.NewWebSocketController(gameService)

	app.Use("/ws/*", middleware.EnsurePlayerID())
	app.Get("/ws/game/:gameId", middleware.WebSocketUpgrade(), websocket.New(func(c *websocket.Conn) {
		wsController.HandleConnection(c)
	}, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         []string{*origin},
	}))

	api := app.Group("/api", middleware.EnsurePlayerID())

	gameRoutes := api.Group("/game")
	gameRoutes.Post("/matchmaking/join", gameController.JoinMatchmaking)
	gameRoutes.Get("/matchmaking/events", gameController.MatchmakingEvents)
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Post("/join/:gameId", gameController.JoinGame)
	gameRoutes.Post("/:gameId/suggest", gameController.Suggest)
	gameRoutes.Get("/:gameId/record", gameController.GetGameRecord)
	gameRoutes.Get("/:gameId", gameController.GetGameState)

	log.Fatal(app.Listen(*addr))
}
