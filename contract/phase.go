package contract

import "github.com/pkg/errors"

// Phase classifies a block height against a game's two deadlines.
type Phase uint8

const (
	PhaseCommit Phase = iota // participants may commit guesses
	PhaseReveal              // participants may reveal answers
	PhaseClosed              // winners may claim their share
)

func (p Phase) String() string {
	switch p {
	case PhaseCommit:
		return "commit"
	case PhaseReveal:
		return "reveal"
	case PhaseClosed:
		return "closed"
	}
	return "unknown"
}

// PhaseAt returns the phase of height t for guess deadline g and reveal
// deadline r (g < r).
func PhaseAt(t, g, r uint64) Phase {
	switch {
	case t < g:
		return PhaseCommit
	case t < r:
		return PhaseReveal
	default:
		return PhaseClosed
	}
}

// PhaseAt returns the game's phase at height t.
func (g *Game) PhaseAt(t uint64) Phase {
	return PhaseAt(t, g.GuessDeadline, g.RevealDeadline)
}

// requirePhase fails with ErrPhase unless height t lies in want.
func (g *Game) requirePhase(op string, t uint64, want Phase) error {
	if got := g.PhaseAt(t); got != want {
		return errors.Wrapf(ErrPhase, "game %d: %s requires %s phase, height %d is in %s phase",
			g.ID, op, want, t, got)
	}
	return nil
}
