// Package contract implements the commit-reveal guessing game: a creator
// commits to a secret answer, participants commit guesses, reveal them, and
// winners split the escrowed prize.
//
// Every exported operation is a single atomic unit: all guards are evaluated
// against staged state and nothing is written to the host unless the whole
// operation succeeds.
package contract

import (
	log "github.com/inconshreveable/log15"

	"okinoko-guess_reveal/sdk"
)

var glog = log.New("module", "contract.guess")

// Contract binds the game logic to a ledger host and a commitment hasher.
// It holds no game state of its own; each call loads what it needs.
type Contract struct {
	host   sdk.Host
	hasher sdk.Hasher
}

func New(host sdk.Host, hasher sdk.Hasher) *Contract {
	return &Contract{host: host, hasher: hasher}
}

// call is the per-operation context: the environment snapshot and the
// staged writes.
type call struct {
	env sdk.Env
	ws  *writeSet
}

func (c *Contract) begin() *call {
	return &call{env: c.host.GetEnv(), ws: newWriteSet(c.host)}
}

func (cl *call) height() uint64      { return cl.env.BlockHeight }
func (cl *call) sender() sdk.Address { return cl.env.Sender }
