package chain_test

import (
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"okinoko-guess_reveal/chain"
	"okinoko-guess_reveal/contract"
	"okinoko-guess_reveal/db"
	"okinoko-guess_reveal/sdk"
)

func invoke(ch *chain.Chain, sender sdk.Address, intents []sdk.Intent, action, payload string) (*string, error) {
	var out *string
	err := ch.Execute(sender, intents, func(h sdk.Host) error {
		var err error
		out, err = contract.Call(h, chain.Keccak256Hasher{}, action, payload)
		return err
	})
	return out, err
}

func getGame(t *testing.T, ch *chain.Chain, id string) contract.GameInfo {
	t.Helper()
	var info contract.GameInfo
	require.NoError(t, ch.Query("", func(h sdk.Host) error {
		out, err := contract.Call(h, chain.Keccak256Hasher{}, contract.ActionGet, id)
		if err != nil {
			return err
		}
		return json.Unmarshal([]byte(*out), &info)
	}))
	return info
}

func runScenario(t *testing.T, kv db.KV) {
	ch, err := chain.New(kv, "")
	require.NoError(t, err)
	creator, p1, p2 := sdk.Address("hive:creator"), sdk.Address("hive:P1"), sdk.Address("hive:P2")

	require.NoError(t, ch.Deposit(creator, 100, sdk.AssetHive))

	blue := hex.EncodeToString(chain.Keccak256Hasher{}.Hash([]byte("blue")))
	allow := []sdk.Intent{contract.AllowanceIntent(100, sdk.AssetHive)}
	out, err := invoke(ch, creator, allow, contract.ActionCreate, "0|"+blue+"|0.100|hive|5|3")
	require.NoError(t, err)
	assert.Equal(t, "0", *out)

	info := getGame(t, ch, "0")
	require.Equal(t, uint64(6), info.GuessDeadline)
	require.Equal(t, uint64(9), info.RevealDeadline)
	bal, err := ch.Balance(ch.Self(), sdk.AssetHive)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), bal)

	out, err = invoke(ch, p1, nil, contract.ActionGuess, "0||blue")
	require.NoError(t, err)
	assert.Equal(t, "true", *out)

	out, err = invoke(ch, creator, nil, contract.ActionGuess, "0||blue")
	require.NoError(t, err)
	assert.Equal(t, "false", *out)
	assert.Contains(t, ch.Events()[0], "guessRejected")

	require.NoError(t, ch.Mine(info.GuessDeadline-ch.Height()))
	_, err = invoke(ch, p1, nil, contract.ActionReveal, "0|blue")
	require.NoError(t, err)
	_, err = invoke(ch, p2, nil, contract.ActionReveal, "0|blue")
	assert.ErrorIs(t, err, contract.ErrNoCommitment)

	_, err = invoke(ch, p1, nil, contract.ActionClaim, "0|")
	assert.ErrorIs(t, err, contract.ErrPhase)

	require.NoError(t, ch.Mine(info.RevealDeadline-ch.Height()))
	out, err = invoke(ch, p1, nil, contract.ActionClaim, "0|")
	require.NoError(t, err)
	assert.Equal(t, "0.100", *out)

	_, err = invoke(ch, p1, nil, contract.ActionClaim, "0|")
	assert.ErrorIs(t, err, contract.ErrAlreadyClaimed)

	bal, err = ch.Balance(p1, sdk.AssetHive)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), bal)
	bal, err = ch.Balance(ch.Self(), sdk.AssetHive)
	require.NoError(t, err)
	assert.Zero(t, bal)

	info = getGame(t, ch, "0")
	assert.Equal(t, []sdk.Address{p1}, info.Winners)
	assert.Equal(t, "closed", info.Phase)
	assert.Equal(t, "0.100", info.PaidOut)
}

func TestScenarioMemDB(t *testing.T) {
	runScenario(t, db.NewGoMemDB())
}

func TestScenarioCachedLevelDB(t *testing.T) {
	kv, err := db.NewDB(db.Options{Backend: db.GoLevelDBBackendStr, Name: "scenario", Dir: t.TempDir(), CacheSize: 64})
	require.NoError(t, err)
	defer kv.Close()
	runScenario(t, kv)
}

func TestCreateWithoutFundsWritesNothing(t *testing.T) {
	ch, err := chain.New(db.NewGoMemDB(), "")
	require.NoError(t, err)

	allow := []sdk.Intent{contract.AllowanceIntent(100, sdk.AssetHive)}
	_, err = invoke(ch, "hive:broke", allow, contract.ActionCreate, "0||0.100|hive")
	assert.ErrorIs(t, err, chain.ErrInsufficientFunds)

	require.NoError(t, ch.Query("", func(h sdk.Host) error {
		_, err := contract.Call(h, chain.Keccak256Hasher{}, contract.ActionGet, "0")
		assert.ErrorIs(t, err, contract.ErrGameNotFound)
		return nil
	}))
}
