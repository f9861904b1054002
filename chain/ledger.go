package chain

import (
	"okinoko-guess_reveal/sdk"
)

// Deposit credits amount to addr out of thin air. It is the faucet of the
// local chain and consumes a block like any other call.
func (c *Chain) Deposit(addr sdk.Address, amount uint64, asset sdk.Asset) error {
	return c.Execute(addr, nil, func(h sdk.Host) error {
		return h.(*txHost).credit(addr, amount, asset)
	})
}

// Balance returns addr's holding of asset.
func (c *Chain) Balance(addr sdk.Address, asset sdk.Asset) (uint64, error) {
	var bal uint64
	err := c.Query(addr, func(h sdk.Host) error {
		var err error
		bal, err = h.(*txHost).balance(addr, asset)
		return err
	})
	return bal, err
}
