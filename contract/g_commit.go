package contract

import (
	"github.com/pkg/errors"
)

// SetCommitCreator stores the commitment of the creator's secret answer,
// replacing any commitment given at creation. Only the creator may call it
// and only during the commit phase.
func (c *Contract) SetCommitCreator(gameID uint64, answer string) error {
	cl := c.begin()
	g, err := loadGame(cl.ws, gameID)
	if err != nil {
		return err
	}
	if err := g.requirePhase("set_commit_creator", cl.height(), PhaseCommit); err != nil {
		glog.Error("SetCommitCreator", "id", gameID, "err", err)
		return err
	}
	if cl.sender() != g.Creator {
		glog.Error("SetCommitCreator", "id", gameID, "sender", cl.sender(), "creator", g.Creator)
		return errors.Wrapf(ErrAuthorization, "game %d: only the creator commits the answer", gameID)
	}

	commitments{ws: cl.ws, gameID: g.ID}.set(g.Creator, c.digestOf(answer))
	if err := cl.ws.flush(); err != nil {
		return errors.Wrapf(err, "commit creator answer of game %d", gameID)
	}
	c.emitCreatorCommitted(g.ID)
	return nil
}
