package contract

import (
	"github.com/pkg/errors"

	"okinoko-guess_reveal/sdk"
)

// winners is the ordered, duplicate-free registry of identities that passed
// reveal verification. Membership is a per-identity flag so contains is a
// single lookup; order is kept through indexed keys and only serves
// enumeration.
type winners struct {
	ws   *writeSet
	game *Game
}

func (r winners) contains(who sdk.Address) (bool, error) {
	ok, err := r.ws.has(winnerFlagKey(r.game.ID, who))
	return ok, errors.Wrapf(err, "winner flag of %s", who)
}

// register appends who unless already present and reports whether it did.
// The caller persists the game state carrying the new count.
func (r winners) register(who sdk.Address) (bool, error) {
	ok, err := r.contains(who)
	if err != nil || ok {
		return false, err
	}
	r.ws.set(winnerKey(r.game.ID, r.game.WinnerCount), who.String())
	r.ws.set(winnerFlagKey(r.game.ID, who), flagSet)
	r.game.WinnerCount++
	return true, nil
}

// list returns the winners in registration order.
func (r winners) list() ([]sdk.Address, error) {
	out := make([]sdk.Address, 0, r.game.WinnerCount)
	for n := uint64(0); n < r.game.WinnerCount; n++ {
		v, err := r.ws.get(winnerKey(r.game.ID, n))
		if err != nil {
			return nil, errors.Wrapf(err, "winner %d", n)
		}
		if v == nil || *v == "" {
			return nil, errors.Wrapf(ErrCorruptState, "game %d: winner %d of %d missing", r.game.ID, n, r.game.WinnerCount)
		}
		out = append(out, sdk.Address(*v))
	}
	return out, nil
}
