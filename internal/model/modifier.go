package model

type ModifierKind string

const (
	ModifierForwardCapture ModifierKind = "pawn_forward_capture"
	ModifierExtendedKnight ModifierKind = "knight_extended_range"
	ModifierRandomRemoval  ModifierKind = "random_piece_removal"
	ModifierTimeBomb       ModifierKind = "time_bomb"
)

// Modifier is an externally registered rule variation. Concrete modifiers
// declare their capabilities by additionally implementing GenerationModifier,
// CaptureObserver, TickObserver or InstantModifier; the engine consults or
// notifies only the capabilities a modifier actually has.
type Modifier interface {
	Kind() ModifierKind
}

// GenerationModifier extends a piece's pseudo-legal destinations. It runs
// before the king-safety filter, so extended moves are legality-checked like
// any other candidate, and it is also consulted by attack detection, so an
// extended movement pattern gives check at its extended squares.
type GenerationModifier interface {
	Modifier
	ExtendMoves(piece *Piece, board *BoardState, moves []SimpleMove) []SimpleMove
}

// CaptureObserver is notified synchronously inside move execution, before
// control returns to the caller.
type CaptureObserver interface {
	Modifier
	OnCapture(fx Effects, captured *Piece, square Position)
}

// TickObserver is notified exactly once per completed White-then-Black pair
// of moves.
type TickObserver interface {
	Modifier
	OnTick(fx Effects)
}

// InstantModifier applies a one-shot board effect when activated.
type InstantModifier interface {
	Modifier
	Apply(fx Effects)
}

// MoveObserver is notified after every committed move.
type MoveObserver interface {
	OnMovePlayed(fx Effects, color Color)
}

// ModifierSet is the registry of active modifiers for one game.
type ModifierSet struct {
	active []Modifier
}

func (ms *ModifierSet) Add(m Modifier) {
	ms.active = append(ms.active, m)
}

func (ms *ModifierSet) Contains(kind ModifierKind) bool {
	for _, m := range ms.active {
		if m.Kind() == kind {
			return true
		}
	}
	return false
}

func (ms *ModifierSet) Kinds() []ModifierKind {
	kinds := make([]ModifierKind, 0, len(ms.active))
	for _, m := range ms.active {
		kinds = append(kinds, m.Kind())
	}
	return kinds
}

func (ms *ModifierSet) extendMoves(piece *Piece, board *BoardState, moves []SimpleMove) []SimpleMove {
	for _, m := range ms.active {
		if gm, ok := m.(GenerationModifier); ok {
			moves = gm.ExtendMoves(piece, board, moves)
		}
	}
	return moves
}

func (ms *ModifierSet) notifyCapture(fx Effects, captured *Piece, square Position) {
	for _, m := range ms.active {
		if co, ok := m.(CaptureObserver); ok {
			co.OnCapture(fx, captured, square)
		}
	}
}

func (ms *ModifierSet) notifyTick(fx Effects) {
	for _, m := range ms.active {
		if to, ok := m.(TickObserver); ok {
			to.OnTick(fx)
		}
	}
}
