package contract

import (
	"crypto/sha256"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"okinoko-guess_reveal/sdk"
)

var errFakeTransfer = errors.New("fake transfer failure")

type payment struct {
	To     sdk.Address
	Amount uint64
	Asset  sdk.Asset
}

// FakeHost is a map-backed host for unit tests. Height and sender are set
// directly by the test.
type FakeHost struct {
	state     map[string]string
	env       sdk.Env
	logs      []string
	draws     []payment
	transfers []payment
	failDraw  bool
	failPay   bool
	failWrite bool
}

func NewFakeHost(sender string) *FakeHost {
	return &FakeHost{
		state: make(map[string]string),
		env: sdk.Env{
			Sender: sdk.Address(sender),
			Caller: sdk.Address(sender),
			Self:   "contract:guess",
			TxID:   "tx1",
		},
	}
}

func (f *FakeHost) as(sender string) *FakeHost {
	f.env.Sender = sdk.Address(sender)
	f.env.Caller = sdk.Address(sender)
	return f
}

func (f *FakeHost) at(height uint64) *FakeHost {
	f.env.BlockHeight = height
	return f
}

func (f *FakeHost) withIntents(intents ...sdk.Intent) *FakeHost {
	f.env.Intents = intents
	return f
}

func (f *FakeHost) StateGetObject(key string) (*string, error) {
	v, ok := f.state[key]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (f *FakeHost) StateSetObject(key, value string) error {
	if f.failWrite {
		return errors.New("fake write failure")
	}
	f.state[key] = value
	return nil
}

func (f *FakeHost) Log(msg string) { f.logs = append(f.logs, msg) }

func (f *FakeHost) GetEnv() sdk.Env { return f.env }

func (f *FakeHost) Draw(amount uint64, asset sdk.Asset) error {
	if f.failDraw {
		return errFakeTransfer
	}
	f.draws = append(f.draws, payment{To: f.env.Self, Amount: amount, Asset: asset})
	return nil
}

func (f *FakeHost) Transfer(to sdk.Address, amount uint64, asset sdk.Asset) error {
	if f.failPay {
		return errFakeTransfer
	}
	f.transfers = append(f.transfers, payment{To: to, Amount: amount, Asset: asset})
	return nil
}

// snapshot copies the state so tests can assert nothing changed.
func (f *FakeHost) snapshot() map[string]string {
	out := make(map[string]string, len(f.state))
	for k, v := range f.state {
		out[k] = v
	}
	return out
}

func (f *FakeHost) lastEvent() string {
	if len(f.logs) == 0 {
		return ""
	}
	return f.logs[len(f.logs)-1]
}

func (f *FakeHost) hasEvent(eventType string) bool {
	for _, l := range f.logs {
		if strings.Contains(l, `"type":"`+eventType+`"`) {
			return true
		}
	}
	return false
}

type sha256Hasher struct{}

func (sha256Hasher) Hash(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}

func digest(answer string) string {
	return New(nil, sha256Hasher{}).digestOf(answer)
}

// newTestGame creates game 0 at height 0 with commit window 5 and reveal
// window 1 (guess deadline 5, reveal deadline 6) and a prize of 100 units.
func newTestGame(t *testing.T, creator, answer string) (*FakeHost, *Contract) {
	t.Helper()
	host := NewFakeHost(creator).withIntents(AllowanceIntent(100, sdk.AssetHive))
	c := New(host, sha256Hasher{})
	_, err := c.Create(CreateArgs{
		ID:         0,
		Commitment: digest(answer),
		Prize:      100,
		Asset:      sdk.AssetHive,
		Windows:    DefaultWindows,
	})
	require.NoError(t, err)
	host.withIntents()
	return host, c
}
