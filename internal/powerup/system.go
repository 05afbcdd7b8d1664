package powerup

import (
	"errors"
	"sync"

	"github.com/powerchess/powerchess-backend/internal/model"
)

var (
	ErrNoOffer        = errors.New("no power-up offer pending")
	ErrUnknownPowerUp = errors.New("unknown power-up kind")
	ErrTargetRequired = errors.New("power-up requires a target square")
)

// Choice is the wire payload for picking an offered power-up.
type Choice struct {
	Kind   model.ModifierKind `json:"kind"`
	Target *model.Position    `json:"target"`
}

// System counts White's completed moves and raises a power-up offer after
// every third one. It is registered on a game as a move observer; the offer
// flag travels to clients inside the broadcast game state.
type System struct {
	mu         sync.Mutex
	whiteMoves int
	pending    bool
}

func NewSystem() *System {
	return &System{}
}

// OnMovePlayed is invoked by the engine after every committed move, with the
// game lock held.
func (s *System) OnMovePlayed(fx model.Effects, color model.Color) {
	if color != model.ColorWhite {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.whiteMoves++
	if s.whiteMoves%3 == 0 {
		s.pending = true
		fx.SetPowerUpOffer(true)
	}
}

func (s *System) PendingOffer() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Choose consumes the pending offer and constructs the picked modifier. The
// caller activates the result on the game; Choose itself never touches the
// board.
func (s *System) Choose(choice Choice) (model.Modifier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.pending {
		return nil, ErrNoOffer
	}
	var m model.Modifier
	switch choice.Kind {
	case model.ModifierForwardCapture:
		m = ForwardCapture{}
	case model.ModifierExtendedKnight:
		m = NewExtendedKnight()
	case model.ModifierRandomRemoval:
		m = NewRandomRemoval()
	case model.ModifierTimeBomb:
		if choice.Target == nil {
			return nil, ErrTargetRequired
		}
		m = NewTimeBomb(*choice.Target, DefaultFuse)
	default:
		return nil, ErrUnknownPowerUp
	}
	s.pending = false
	return m, nil
}
