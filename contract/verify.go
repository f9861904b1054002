package contract

import (
	"github.com/pkg/errors"

	"okinoko-guess_reveal/sdk"
)

// verifyReveal checks a revealed plaintext answer of who. Winning means
// having committed the same digest as the creator; the plaintexts are never
// compared and no other participant's commitment is consulted.
func (c *Contract) verifyReveal(cm commitments, g *Game, who sdk.Address, answer string) error {
	digest := c.digestOf(answer)

	stored, ok, err := cm.get(who)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(ErrNoCommitment, "game %d: %s never committed", g.ID, who)
	}
	if digest != stored {
		return errors.Wrapf(ErrAnswerMismatch, "game %d: answer of %s does not match its commitment", g.ID, who)
	}

	creatorDigest, ok, err := cm.get(g.Creator)
	if err != nil {
		return err
	}
	if !ok || creatorDigest != stored {
		return errors.Wrapf(ErrNotAMatch, "game %d: %s did not guess the creator's answer", g.ID, who)
	}
	return nil
}
