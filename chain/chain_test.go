package chain

import (
	"encoding/hex"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"okinoko-guess_reveal/db"
	"okinoko-guess_reveal/sdk"
)

func newTestChain(t *testing.T) (*Chain, db.KV) {
	t.Helper()
	kv := db.NewGoMemDB()
	c, err := New(kv, "")
	require.NoError(t, err)
	return c, kv
}

func TestExecuteCommitsOnSuccess(t *testing.T) {
	c, _ := newTestChain(t)
	assert.Equal(t, uint64(0), c.Height())

	err := c.Execute("hive:alice", nil, func(h sdk.Host) error {
		env := h.GetEnv()
		assert.Equal(t, sdk.Address("hive:alice"), env.Sender)
		assert.Equal(t, DefaultSelf, env.Self)
		assert.Equal(t, uint64(0), env.BlockHeight)
		assert.NotEmpty(t, env.TxID)
		require.NoError(t, h.StateSetObject("k", "v"))
		v, err := h.StateGetObject("k")
		require.NoError(t, err)
		assert.Equal(t, "v", *v)
		h.Log("hello")
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), c.Height())
	assert.Equal(t, []string{"hello"}, c.Events())

	require.NoError(t, c.Query("hive:bob", func(h sdk.Host) error {
		v, err := h.StateGetObject("k")
		require.NoError(t, err)
		require.NotNil(t, v)
		assert.Equal(t, "v", *v)
		assert.Equal(t, uint64(1), h.GetEnv().BlockHeight)
		return nil
	}))
}

func TestExecuteDiscardsOnError(t *testing.T) {
	c, _ := newTestChain(t)
	require.NoError(t, c.Deposit("hive:alice", 500, sdk.AssetHive))

	boom := errors.New("boom")
	err := c.Execute("hive:alice", nil, func(h sdk.Host) error {
		require.NoError(t, h.StateSetObject("k", "v"))
		require.NoError(t, h.Draw(200, sdk.AssetHive))
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, uint64(2), c.Height(), "a reverted call still consumes its block")
	assert.Empty(t, c.Events())

	require.NoError(t, c.Query("", func(h sdk.Host) error {
		v, err := h.StateGetObject("k")
		assert.Nil(t, v)
		return err
	}))
	bal, err := c.Balance("hive:alice", sdk.AssetHive)
	require.NoError(t, err)
	assert.Equal(t, uint64(500), bal)
}

func TestDrawAndTransfer(t *testing.T) {
	c, _ := newTestChain(t)
	require.NoError(t, c.Deposit("hive:alice", 1000, sdk.AssetHive))

	require.NoError(t, c.Execute("hive:alice", nil, func(h sdk.Host) error {
		if err := h.Draw(600, sdk.AssetHive); err != nil {
			return err
		}
		return h.Transfer("hive:bob", 250, sdk.AssetHive)
	}))

	for addr, want := range map[sdk.Address]uint64{"hive:alice": 400, DefaultSelf: 350, "hive:bob": 250} {
		bal, err := c.Balance(addr, sdk.AssetHive)
		require.NoError(t, err)
		assert.Equal(t, want, bal, addr)
	}

	err := c.Execute("hive:alice", nil, func(h sdk.Host) error {
		return h.Transfer("hive:bob", 351, sdk.AssetHive)
	})
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	err = c.Execute("hive:alice", nil, func(h sdk.Host) error {
		return h.Draw(401, sdk.AssetHive)
	})
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	err = c.Execute("hive:alice", nil, func(h sdk.Host) error {
		return h.Draw(1, sdk.AssetHbd)
	})
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	assert.Error(t, c.Deposit("hive:alice", 1, "doge"))
}

func TestMineAndReopen(t *testing.T) {
	c, kv := newTestChain(t)
	require.NoError(t, c.Mine(7))
	require.NoError(t, c.Execute("hive:alice", nil, func(sdk.Host) error { return nil }))
	assert.Equal(t, uint64(8), c.Height())

	reopened, err := New(kv, "")
	require.NoError(t, err)
	assert.Equal(t, uint64(8), reopened.Height())
}

func TestKeccak256Hasher(t *testing.T) {
	sum := Keccak256Hasher{}.Hash(nil)
	assert.Equal(t, "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470", hex.EncodeToString(sum))
	assert.NotEqual(t, Keccak256Hasher{}.Hash([]byte("blue")), Keccak256Hasher{}.Hash([]byte("red")))
}
