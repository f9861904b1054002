// Package sdk describes what the game contract needs from its ledger host:
// identities, assets, the block-height clock, contract state, value
// transfer and the commitment hash function.
package sdk

// Address identifies an account on the host ledger, e.g. "hive:alice".
type Address string

func (a Address) String() string { return string(a) }

// Asset is a transferable token symbol.
type Asset string

const (
	AssetHive Asset = "hive"
	AssetHbd  Asset = "hbd"
)

func (a Asset) String() string { return string(a) }

// Valid reports whether the asset is one the host can move.
func (a Asset) Valid() bool { return a == AssetHive || a == AssetHbd }

// Intent is a caller-signed permission attached to a transaction.
// The only type the contract reads is "transfer.allow" with args
// "limit" (decimal amount) and "token" (asset).
type Intent struct {
	Type string            `json:"type"`
	Args map[string]string `json:"args"`
}

// Env is the per-call environment supplied by the host.
type Env struct {
	// Sender is the account that signed the call.
	Sender Address
	// Caller is the immediate caller; equals Sender unless a contract relays.
	Caller Address
	// Self is the contract's own account holding escrowed prizes.
	Self        Address
	TxID        string
	BlockHeight uint64
	Intents     []Intent
}

// Host is the ledger runtime a contract call executes against.
//
// State writes are only visible to later calls once the host commits the
// call, which it does only when the call returned without error.
type Host interface {
	StateGetObject(key string) (*string, error)
	StateSetObject(key, value string) error
	Log(msg string)
	GetEnv() Env
	// Draw moves amount from the sender into the contract account.
	Draw(amount uint64, asset Asset) error
	// Transfer moves amount from the contract account to the recipient.
	Transfer(to Address, amount uint64, asset Asset) error
}

// Hasher is the one-way commitment function.
type Hasher interface {
	Hash(data []byte) []byte
}
