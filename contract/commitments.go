package contract

import (
	"encoding/hex"

	"github.com/pkg/errors"

	"okinoko-guess_reveal/sdk"
)

// commitments maps identities to their commitment digest (lowercase hex).
// The creator's entry is the secret answer's commitment; guarding who may
// write it is left to the operations.
type commitments struct {
	ws     *writeSet
	gameID uint64
}

func (s commitments) set(who sdk.Address, digest string) {
	s.ws.set(commitmentKey(s.gameID, who), digest)
}

func (s commitments) get(who sdk.Address) (string, bool, error) {
	v, err := s.ws.get(commitmentKey(s.gameID, who))
	if err != nil {
		return "", false, errors.Wrapf(err, "commitment of %s", who)
	}
	if v == nil || *v == "" {
		return "", false, nil
	}
	return *v, true, nil
}

// digestOf is the commitment of a plaintext answer.
func (c *Contract) digestOf(answer string) string {
	return hex.EncodeToString(c.hasher.Hash([]byte(answer)))
}

// normalizeDigest validates a hex digest handed in from outside and returns
// its canonical lowercase form.
func normalizeDigest(s string) (string, error) {
	b, err := hex.DecodeString(s)
	if err != nil || len(b) == 0 {
		return "", errors.Wrapf(ErrInvalidArgs, "commitment %q is not a hex digest", s)
	}
	return hex.EncodeToString(b), nil
}
