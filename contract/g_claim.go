package contract

import (
	"github.com/pkg/errors"

	"okinoko-guess_reveal/sdk"
)

// Claim pays identity its equal share of the prize once the reveal window
// has closed. Each winner can claim exactly once; the share is the integer
// division of the prize by the final number of winners and the remainder
// stays in the contract as dust. It returns the amount paid.
func (c *Contract) Claim(gameID uint64, identity sdk.Address) (uint64, error) {
	cl := c.begin()
	g, err := loadGame(cl.ws, gameID)
	if err != nil {
		return 0, err
	}
	if identity == "" {
		identity = cl.sender()
	}
	if err := g.requirePhase("claim", cl.height(), PhaseClosed); err != nil {
		glog.Error("Claim", "id", gameID, "identity", identity, "err", err)
		return 0, err
	}

	won, err := winners{ws: cl.ws, game: g}.contains(identity)
	if err != nil {
		return 0, err
	}
	if !won {
		glog.Error("Claim", "id", gameID, "identity", identity, "err", ErrNotWinner)
		return 0, errors.Wrapf(ErrNotWinner, "game %d: %s", gameID, identity)
	}
	ledger := claims{ws: cl.ws, gameID: g.ID}
	done, err := ledger.claimed(identity)
	if err != nil {
		return 0, err
	}
	if done {
		glog.Error("Claim", "id", gameID, "identity", identity, "err", ErrAlreadyClaimed)
		return 0, errors.Wrapf(ErrAlreadyClaimed, "game %d: %s", gameID, identity)
	}

	share := g.Share()
	if g.PaidOut+share > g.TotalPrize || g.PaidOut+share < g.PaidOut {
		glog.Crit("Claim", "id", gameID, "paidOut", g.PaidOut, "share", share, "prize", g.TotalPrize)
		return 0, errors.Wrapf(ErrPayoutExceedsPrize, "game %d: paid %d, share %d, prize %d",
			gameID, g.PaidOut, share, g.TotalPrize)
	}

	ledger.markClaimed(identity)
	g.ClaimedCount++
	g.PaidOut += share
	saveState(cl.ws, g)

	if share > 0 {
		if err := c.host.Transfer(identity, share, g.Asset); err != nil {
			glog.Error("Claim", "id", gameID, "identity", identity, "share", share, "err", err)
			return 0, errors.Wrapf(err, "pay %s in game %d", identity, gameID)
		}
	}
	if err := cl.ws.flush(); err != nil {
		return 0, errors.Wrapf(err, "claim of %s in game %d", identity, gameID)
	}
	c.emitPrizeClaimed(g.ID, identity, share)
	return share, nil
}
