package chain

import (
	"strconv"

	"github.com/pkg/errors"

	"okinoko-guess_reveal/db"
	"okinoko-guess_reveal/sdk"
)

func stateKey(key string) []byte { return []byte("state:" + key) }

func accountKey(addr sdk.Address, asset sdk.Asset) []byte {
	return []byte("acct:" + asset.String() + ":" + addr.String())
}

// txHost is the sdk.Host one call sees: reads fall through to the store,
// writes stay in an overlay until the chain commits it.
type txHost struct {
	kv     db.KV
	env    sdk.Env
	keys   []string
	writes map[string][]byte
	events []string
}

func (t *txHost) get(key []byte) ([]byte, bool, error) {
	if v, ok := t.writes[string(key)]; ok {
		return v, true, nil
	}
	v, err := t.kv.Get(key)
	if err == db.ErrNotFoundInDb {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (t *txHost) set(key, value []byte) {
	k := string(key)
	if _, ok := t.writes[k]; !ok {
		t.keys = append(t.keys, k)
	}
	t.writes[k] = db.CopyBytes(value)
}

func (t *txHost) writeTo(b db.Batch) {
	for _, k := range t.keys {
		b.Set([]byte(k), t.writes[k])
	}
}

func (t *txHost) StateGetObject(key string) (*string, error) {
	v, ok, err := t.get(stateKey(key))
	if err != nil {
		return nil, errors.Wrapf(err, "state %s", key)
	}
	if !ok {
		return nil, nil
	}
	s := string(v)
	return &s, nil
}

func (t *txHost) StateSetObject(key, value string) error {
	t.set(stateKey(key), []byte(value))
	return nil
}

func (t *txHost) Log(msg string) {
	t.events = append(t.events, msg)
	clog.Debug("contract log", "tx", t.env.TxID, "msg", msg)
}

func (t *txHost) GetEnv() sdk.Env { return t.env }

func (t *txHost) Draw(amount uint64, asset sdk.Asset) error {
	return t.move(t.env.Sender, t.env.Self, amount, asset)
}

func (t *txHost) Transfer(to sdk.Address, amount uint64, asset sdk.Asset) error {
	return t.move(t.env.Self, to, amount, asset)
}

func (t *txHost) balance(addr sdk.Address, asset sdk.Asset) (uint64, error) {
	v, ok, err := t.get(accountKey(addr, asset))
	if err != nil {
		return 0, errors.Wrapf(err, "balance of %s", addr)
	}
	if !ok {
		return 0, nil
	}
	n, err := strconv.ParseUint(string(v), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "corrupt balance of %s", addr)
	}
	return n, nil
}

func (t *txHost) setBalance(addr sdk.Address, asset sdk.Asset, n uint64) {
	t.set(accountKey(addr, asset), []byte(strconv.FormatUint(n, 10)))
}

func (t *txHost) credit(addr sdk.Address, amount uint64, asset sdk.Asset) error {
	if !asset.Valid() {
		return errors.Errorf("unsupported asset %q", asset)
	}
	bal, err := t.balance(addr, asset)
	if err != nil {
		return err
	}
	if bal+amount < bal {
		return errors.Errorf("balance overflow for %s", addr)
	}
	t.setBalance(addr, asset, bal+amount)
	return nil
}

// move transfers amount between accounts; on failure nothing is staged.
func (t *txHost) move(from, to sdk.Address, amount uint64, asset sdk.Asset) error {
	if !asset.Valid() {
		return errors.Errorf("unsupported asset %q", asset)
	}
	if amount == 0 || from == to {
		return nil
	}
	fromBal, err := t.balance(from, asset)
	if err != nil {
		return err
	}
	if fromBal < amount {
		return errors.Wrapf(ErrInsufficientFunds, "%s holds %s %s, needs %s",
			from, sdk.FormatAmount(fromBal), asset, sdk.FormatAmount(amount))
	}
	toBal, err := t.balance(to, asset)
	if err != nil {
		return err
	}
	if toBal+amount < toBal {
		return errors.Errorf("balance overflow for %s", to)
	}
	t.setBalance(from, asset, fromBal-amount)
	t.setBalance(to, asset, toBal+amount)
	clog.Debug("move", "tx", t.env.TxID, "from", from, "to", to, "amount", amount, "asset", asset)
	return nil
}
