package contract

import (
	"github.com/pkg/errors"
)

// RevealProposal discloses the sender's plaintext answer. If it hashes to
// the sender's commitment and that commitment equals the creator's, the
// sender becomes a winner. Revealing again after winning is a no-op.
func (c *Contract) RevealProposal(gameID uint64, answer string) error {
	cl := c.begin()
	g, err := loadGame(cl.ws, gameID)
	if err != nil {
		return err
	}
	who := cl.sender()
	if err := g.requirePhase("reveal_proposal", cl.height(), PhaseReveal); err != nil {
		glog.Error("RevealProposal", "id", gameID, "sender", who, "err", err)
		return err
	}
	if who == g.Creator {
		glog.Error("RevealProposal", "id", gameID, "err", "creator reveal")
		return errors.Wrapf(ErrAuthorization, "game %d: the creator cannot win its own game", gameID)
	}

	cm := commitments{ws: cl.ws, gameID: g.ID}
	if err := c.verifyReveal(cm, g, who, answer); err != nil {
		glog.Error("RevealProposal", "id", gameID, "sender", who, "err", err)
		return err
	}

	added, err := winners{ws: cl.ws, game: g}.register(who)
	if err != nil {
		return err
	}
	if !added {
		glog.Debug("RevealProposal", "id", gameID, "winner", who, "msg", "already registered")
		return nil
	}
	saveState(cl.ws, g)
	if err := cl.ws.flush(); err != nil {
		return errors.Wrapf(err, "register winner %s of game %d", who, gameID)
	}
	c.emitWinnerRegistered(g.ID, who)
	return nil
}
