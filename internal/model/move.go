package model

// WSMove is a move request as it arrives over the wire. Promotion is not part
// of the request: a pawn reaching the far rank always becomes a queen.
type WSMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

type CastleRookMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

type Ply struct {
	Piece          *Piece          `json:"piece"`
	From           Position        `json:"from"`
	To             Position        `json:"to"`
	CapturedPiece  *Piece          `json:"capturedPiece"`
	CastleRookMove *CastleRookMove `json:"castleRookMove"`
	Promotion      bool            `json:"promotion"`
	Notation       string          `json:"notation"`
}

type Move struct {
	WhitePly Ply `json:"whitePly"`
	BlackPly Ply `json:"blackPly"`
}

type SimpleMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// ExecutionResult reports what a committed move turned out to be. The special
// move kind is derived from piece type and geometry at execution time, never
// stored on the move itself.
type ExecutionResult struct {
	CapturedPiece *Piece   `json:"capturedPiece"`
	CapturedAt    Position `json:"capturedAt"`
	WasEnPassant  bool     `json:"wasEnPassant"`
	WasCastle     bool     `json:"wasCastle"`
	WasPromotion  bool     `json:"wasPromotion"`
}
