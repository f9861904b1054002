package contract

import (
	"github.com/pkg/errors"

	"okinoko-guess_reveal/sdk"
)

// claims records which winners already withdrew their share. An absent
// entry means not claimed.
type claims struct {
	ws     *writeSet
	gameID uint64
}

func (l claims) claimed(who sdk.Address) (bool, error) {
	ok, err := l.ws.has(claimedKey(l.gameID, who))
	return ok, errors.Wrapf(err, "claimed flag of %s", who)
}

func (l claims) markClaimed(who sdk.Address) {
	l.ws.set(claimedKey(l.gameID, who), flagSet)
}
