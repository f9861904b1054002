// Package chain is a single-node ledger host for the guess contract: it
// keeps contract state and asset balances in a db.KV, advances a block
// height clock, and executes every call atomically.
package chain

import (
	"encoding/binary"
	"sync"

	"github.com/google/uuid"
	log "github.com/inconshreveable/log15"
	"github.com/pkg/errors"

	"okinoko-guess_reveal/db"
	"okinoko-guess_reveal/sdk"
)

var clog = log.New("module", "chain")

// DefaultSelf is the account holding escrowed prizes.
const DefaultSelf sdk.Address = "contract:guess"

var heightKey = []byte("chain:height")

var ErrInsufficientFunds = errors.New("ErrInsufficientFunds")

// Chain serialises calls against one contract account. Each successful
// Execute seals the current block and moves to the next height; a failed
// call writes nothing but still consumes its block, like an included but
// reverted transaction.
type Chain struct {
	mu     sync.Mutex
	kv     db.KV
	self   sdk.Address
	height uint64
	events []string
}

// New opens the chain stored in kv, resuming at its persisted height.
func New(kv db.KV, self sdk.Address) (*Chain, error) {
	if self == "" {
		self = DefaultSelf
	}
	c := &Chain{kv: kv, self: self}
	v, err := kv.Get(heightKey)
	switch {
	case err == db.ErrNotFoundInDb:
	case err != nil:
		return nil, errors.Wrap(err, "load height")
	case len(v) != 8:
		return nil, errors.Errorf("corrupt height record of %d bytes", len(v))
	default:
		c.height = binary.BigEndian.Uint64(v)
	}
	clog.Info("chain opened", "height", c.height, "self", self)
	return c, nil
}

// Height is the height the next call executes at.
func (c *Chain) Height() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.height
}

// Self is the contract account.
func (c *Chain) Self() sdk.Address { return c.self }

// Mine seals n empty blocks.
func (c *Chain) Mine(n uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.height+n < c.height {
		return errors.New("height overflow")
	}
	if err := c.setHeight(c.height + n); err != nil {
		return err
	}
	clog.Debug("Mine", "blocks", n, "height", c.height)
	return nil
}

func (c *Chain) setHeight(h uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], h)
	if err := c.kv.Set(heightKey, buf[:]); err != nil {
		return errors.Wrap(err, "store height")
	}
	c.height = h
	return nil
}

// Execute runs fn as one transaction signed by sender. State and balance
// changes made through the host are committed only when fn returns nil.
func (c *Chain) Execute(sender sdk.Address, intents []sdk.Intent, fn func(sdk.Host) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	tx := c.newTx(sender, intents)
	callErr := fn(tx)
	c.events = tx.events

	b := c.kv.NewBatch()
	if callErr == nil {
		tx.writeTo(b)
	}
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], c.height+1)
	b.Set(heightKey, buf[:])
	if err := b.Write(); err != nil {
		clog.Error("Execute", "tx", tx.env.TxID, "height", c.height, "err", err)
		return errors.Wrap(err, "commit block")
	}
	clog.Debug("Execute", "tx", tx.env.TxID, "sender", sender, "height", c.height, "writes", len(tx.keys), "ok", callErr == nil)
	c.height++
	if callErr != nil {
		c.events = nil
		return callErr
	}
	return nil
}

// Query runs fn read-only at the current height. Writes are discarded.
func (c *Chain) Query(sender sdk.Address, fn func(sdk.Host) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fn(c.newTx(sender, nil))
}

// Events returns the log lines of the last executed call.
func (c *Chain) Events() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.events...)
}

// Close closes the underlying store.
func (c *Chain) Close() error { return c.kv.Close() }

func (c *Chain) newTx(sender sdk.Address, intents []sdk.Intent) *txHost {
	return &txHost{
		kv: c.kv,
		env: sdk.Env{
			Sender:      sender,
			Caller:      sender,
			Self:        c.self,
			TxID:        uuid.NewString(),
			BlockHeight: c.height,
			Intents:     intents,
		},
		writes: make(map[string][]byte),
	}
}
