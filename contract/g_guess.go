package contract

import (
	"github.com/pkg/errors"

	"okinoko-guess_reveal/sdk"
)

// Guess commits the digest of answer for identity; an empty identity means
// the sender. A repeated guess overwrites the earlier commitment.
//
// Guesses outside the commit phase, for the creator, or sent by the creator
// are expected probing and not failures of the call: Guess returns false,
// logs a guessRejected event and changes nothing. The error result is
// reserved for an unknown game and storage failures.
func (c *Contract) Guess(gameID uint64, identity sdk.Address, answer string) (bool, error) {
	cl := c.begin()
	g, err := loadGame(cl.ws, gameID)
	if err != nil {
		return false, err
	}
	if identity == "" {
		identity = cl.sender()
	}

	if reason := guessRejection(g, cl, identity); reason != "" {
		glog.Info("Guess rejected", "id", gameID, "identity", identity, "sender", cl.sender(), "reason", reason)
		c.emitGuessRejected(g.ID, identity, reason)
		return false, nil
	}

	commitments{ws: cl.ws, gameID: g.ID}.set(identity, c.digestOf(answer))
	if err := cl.ws.flush(); err != nil {
		return false, errors.Wrapf(err, "guess of %s in game %d", identity, gameID)
	}
	c.emitGuessed(g.ID, identity)
	return true, nil
}

func guessRejection(g *Game, cl *call, identity sdk.Address) string {
	switch {
	case g.PhaseAt(cl.height()) != PhaseCommit:
		return "guessing closed at height " + UInt64ToString(g.GuessDeadline)
	case identity == g.Creator:
		return "creator cannot guess"
	case cl.sender() == g.Creator:
		return "creator cannot guess for others"
	}
	return ""
}
