package model

import (
	"encoding/json"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"golang.org/x/exp/slices"

	"github.com/powerchess/powerchess-backend/internal/ws"
)

// GameConnections holds the websocket connections observing one game.
type GameConnections struct {
	connections map[string]*websocket.Conn // playerID -> connection
	mu          sync.RWMutex
}

// Game is the outward-facing state machine for one match: selection, legal
// move queries, move execution and turn flipping. The whole GameState is one
// exclusively-owned unit; g.mu is held for the duration of every
// select-or-move operation, so the legality filter's mutate/restore sequence
// is never observable from outside.
type Game struct {
	ID            string
	mu            sync.Mutex
	state         GameState
	connections   *GameConnections
	whiteClock    *Clock
	blackClock    *Clock
	modifiers     ModifierSet
	moveObservers []MoveObserver

	// randInt backs the deterministic fallback for illegal external
	// suggestions; tests swap it out.
	randInt func(n int) int
}

type GameState struct {
	Sound           string         `json:"sound"`
	Board           *BoardState    `json:"boardState"`
	ToMove          Color          `json:"toMove"`
	MoveHistory     []Move         `json:"moveHistory"`
	CapturedPieces  CapturedPieces `json:"capturedPieces"`
	IsCheck         bool           `json:"isCheck"`
	SelectedSquare  *Position      `json:"selectedSquare"`
	LegalMoves      []Position     `json:"legalMoves"`
	EnPassantTarget *Position      `json:"enPassantTarget"`
	LastMove        *SimpleMove    `json:"lastMove"`
	Resolve         *string        `json:"resolve"`
	ActiveModifiers []ModifierKind `json:"activeModifiers"`
	PowerUpOffer    bool           `json:"powerUpOffer"`
	Players         struct {
		White ClientPlayer `json:"white"`
		Black ClientPlayer `json:"black"`
	} `json:"players"`
}

type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:          id,
		state:       newGameState(),
		connections: NewGameConnections(),
		whiteClock:  NewClock(time.Duration(600) * time.Second),
		blackClock:  NewClock(time.Duration(600) * time.Second),
		randInt:     rand.Intn,
	}
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*websocket.Conn),
	}
}

func newGameState() GameState {
	state := GameState{
		Board:           newBoard(),
		ToMove:          ColorWhite,
		MoveHistory:     make([]Move, 0),
		CapturedPieces:  CapturedPieces{White: make([]Piece, 0), Black: make([]Piece, 0)},
		LegalMoves:      make([]Position, 0),
		ActiveModifiers: make([]ModifierKind, 0),
	}
	state.Players.White = ClientPlayer{TimeLeft: 6000}
	state.Players.Black = ClientPlayer{TimeLeft: 6000}
	return state
}

func (g *Game) AddPlayer(playerID string) (Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.Players.White.ID == "" {
		g.state.Players.White = ClientPlayer{ID: playerID, Color: ColorWhite, TimeLeft: 6000}
		return ColorWhite, nil
	}
	if g.state.Players.Black.ID == "" {
		g.state.Players.Black = ClientPlayer{ID: playerID, Color: ColorBlack, TimeLeft: 6000}
		return ColorBlack, nil
	}
	return "", ErrGameFull
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.isPlayerInGame(playerID)
}

func (g *Game) isPlayerInGame(playerID string) bool {
	if g.state.Players.White.ID != "" && g.state.Players.White.ID == playerID {
		return true
	}
	if g.state.Players.Black.ID != "" && g.state.Players.Black.ID == playerID {
		return true
	}
	return false
}

func (g *Game) CanSpectate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.canSpectate()
}

func (g *Game) canSpectate() bool {
	return g.state.Players.White.ID == "" || g.state.Players.Black.ID == ""
}

// MakeMove validates and executes a move request. On any error the board is
// untouched.
func (g *Game) MakeMove(move WSMove) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.validateMove(move); err != nil {
		return err
	}
	g.playMove(SimpleMove{From: move.From, To: move.To})
	return nil
}

// AttemptMove executes iff the destination is legal for the piece at from and
// it is that color's turn; otherwise it is a no-op returning false.
func (g *Game) AttemptMove(from, to Position) bool {
	return g.MakeMove(WSMove{From: from, To: to}) == nil
}

func (g *Game) validateMove(move WSMove) error {
	if !boundaryCheck(move.From) || !boundaryCheck(move.To) {
		return ErrOutOfBounds
	}
	if g.state.Resolve != nil {
		return ErrGameOver
	}
	piece := g.state.Board.At(move.From)
	if piece == nil {
		return ErrNoPiece
	}
	if piece.Color != g.state.ToMove {
		return ErrNotYourTurn
	}
	legal := g.legalMovesForPiece(piece)
	if !slices.ContainsFunc(legal, func(m SimpleMove) bool { return m.To == move.To }) {
		return ErrIllegalMove
	}
	return nil
}

// playMove commits an already-validated move and advances the turn. Caller
// holds g.mu.
func (g *Game) playMove(move SimpleMove) {
	mover := g.state.ToMove
	switch mover {
	case ColorWhite:
		g.whiteClock.Stop()
	case ColorBlack:
		g.blackClock.Stop()
	}

	g.state.Sound = ""
	result, err := g.executeMove(move)
	if err != nil {
		// validateMove ran under the same lock, so this is unreachable.
		log.Printf("game %s: execute rejected validated move: %v", g.ID, err)
		return
	}
	if g.state.Sound == "" {
		if result.CapturedPiece != nil {
			g.state.Sound = "capture"
		} else {
			g.state.Sound = "move"
		}
	}

	g.clearSelection()
	g.switchTurn()
	g.state.IsCheck = g.isKingInCheck(g.state.ToMove)
	if g.state.IsCheck {
		g.state.Sound = "check"
	}
	if g.state.Resolve == nil && g.hasNoLegalMoves(g.state.ToMove) {
		result := "stalemate"
		if g.state.IsCheck {
			result = "checkmate"
		}
		g.state.Resolve = &result
	}

	if g.state.Resolve == nil {
		switch g.state.ToMove {
		case ColorWhite:
			g.whiteClock.Start()
		case ColorBlack:
			g.blackClock.Start()
		}
	}
	g.state.Players.White.TimeLeft = int(g.whiteClock.GetTimeLeft().Milliseconds() / 100)
	g.state.Players.Black.TimeLeft = int(g.blackClock.GetTimeLeft().Milliseconds() / 100)

	go g.broadcastState()
}

// HandleSquareSelect drives the NoSelection -> PieceSelected -> NoSelection
// machine. Selecting an own-color piece (re)selects it, selecting a legal
// destination executes the move, and anything else deselects; illegal
// selections never mutate the board.
func (g *Game) HandleSquareSelect(position Position) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !boundaryCheck(position) || g.state.Resolve != nil {
		return
	}
	clicked := g.state.Board.At(position)
	if clicked != nil && clicked.Color == g.state.ToMove {
		pos := position
		g.state.SelectedSquare = &pos
		g.state.LegalMoves = destinations(g.legalMovesForPiece(clicked))
		go g.broadcastState()
		return
	}
	if g.state.SelectedSquare == nil {
		// Empty square or enemy piece with nothing selected: ignored.
		return
	}
	if slices.Contains(g.state.LegalMoves, position) {
		g.playMove(SimpleMove{From: *g.state.SelectedSquare, To: position})
		return
	}
	g.clearSelection()
	go g.broadcastState()
}

func (g *Game) clearSelection() {
	g.state.SelectedSquare = nil
	g.state.LegalMoves = []Position{}
}

// LegalMoves is empty when the square is empty, holds the wrong color, or the
// game is over.
func (g *Game) LegalMoves(position Position) []Position {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !boundaryCheck(position) || g.state.Resolve != nil {
		return []Position{}
	}
	piece := g.state.Board.At(position)
	if piece == nil || piece.Color != g.state.ToMove {
		return []Position{}
	}
	return destinations(g.legalMovesForPiece(piece))
}

// Snapshot returns a deep copy of the board for rendering.
func (g *Game) Snapshot() *BoardState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state.Board.Clone()
}

func (g *Game) IsInCheck(color Color) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.isKingInCheck(color)
}

func (g *Game) IsCheckmate(color Color) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.isKingInCheck(color) && g.hasNoLegalMoves(color)
}

func (g *Game) IsStalemate(color Color) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return !g.isKingInCheck(color) && g.hasNoLegalMoves(color)
}

// ApplySuggestion plays an externally proposed move after re-validating it.
// An illegal suggestion falls back to a uniformly random legal move of the
// suggested piece; if that piece has no legal move at all the suggestion is
// rejected and the board is untouched. The move actually played is returned.
func (g *Game) ApplySuggestion(from, to Position) (SimpleMove, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !boundaryCheck(from) || !boundaryCheck(to) {
		return SimpleMove{}, ErrOutOfBounds
	}
	if g.state.Resolve != nil {
		return SimpleMove{}, ErrGameOver
	}
	piece := g.state.Board.At(from)
	if piece == nil {
		return SimpleMove{}, ErrNoPiece
	}
	if piece.Color != g.state.ToMove {
		return SimpleMove{}, ErrNotYourTurn
	}
	legal := g.legalMovesForPiece(piece)
	if len(legal) == 0 {
		return SimpleMove{}, ErrIllegalMove
	}
	chosen := SimpleMove{From: from, To: to}
	if !slices.Contains(legal, chosen) {
		chosen = legal[g.randInt(len(legal))]
	}
	g.playMove(chosen)
	return chosen, nil
}

// ActivateModifier registers a rule modifier and applies its one-shot effect
// if it has one. Activating an already-active generation modifier is a no-op.
func (g *Game) ActivateModifier(m Modifier) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, generates := m.(GenerationModifier); generates && g.modifiers.Contains(m.Kind()) {
		g.state.PowerUpOffer = false
		return
	}
	g.modifiers.Add(m)
	if instant, ok := m.(InstantModifier); ok {
		instant.Apply(Effects{game: g})
	}
	g.state.ActiveModifiers = g.modifiers.Kinds()
	g.state.PowerUpOffer = false
	go g.broadcastState()
}

// MarkPiece flags the piece on the square as carrying a latent effect and
// returns it.
func (g *Game) MarkPiece(position Position) (*Piece, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	piece := g.state.Board.At(position)
	if piece == nil {
		return nil, ErrNoPiece
	}
	piece.Marked = true
	return piece, nil
}

// AddMoveObserver registers an observer called after every committed move,
// with the game lock held.
func (g *Game) AddMoveObserver(observer MoveObserver) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.moveObservers = append(g.moveObservers, observer)
}

// clearSquare is the board-mutation primitive behind Effects.ClearSquare.
// Caller holds g.mu.
func (g *Game) clearSquare(position Position) *Piece {
	if !boundaryCheck(position) {
		return nil
	}
	piece := g.state.Board.remove(position)
	if piece == nil {
		return nil
	}
	g.tallyCapture(piece.Color.Opponent(), piece)
	g.state.Sound = "explosion"
	if piece.Type == King {
		result := "bombmate"
		g.state.Resolve = &result
	}
	return piece
}

func (g *Game) switchTurn() {
	g.state.ToMove = g.state.ToMove.Opponent()
}

func destinations(moves []SimpleMove) []Position {
	out := make([]Position, 0, len(moves))
	for _, move := range moves {
		out = append(out, move.To)
	}
	return out
}

func (g *Game) RegisterConnection(playerID string, conn *websocket.Conn) error {
	g.mu.Lock()
	isAuthorized := g.isPlayerInGame(playerID) || g.canSpectate()
	g.mu.Unlock()

	if !isAuthorized {
		return ErrNotAuthorized
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// Keep the healthy connection and reject the new one.
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "Connection already exists"),
		)
		conn.Close()
		return nil
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()

	go g.broadcastState()
	return nil
}

func (g *Game) UnregisterConnection(playerID string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	delete(g.connections.connections, playerID)
}

func (g *Game) broadcastState() {
	state := g.GetState()
	payload, err := json.Marshal(state)
	if err != nil {
		log.Printf("game %s: marshal state: %v", g.ID, err)
		return
	}

	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	for playerID, conn := range g.connections.connections {
		if err := conn.WriteJSON(ws.Message{
			Type:    ws.MessageTypeGameState,
			Payload: json.RawMessage(payload),
		}); err != nil {
			log.Printf("game %s: send state to %s: %v", g.ID, playerID, err)
			delete(g.connections.connections, playerID)
		}
	}
}
