package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKV(t *testing.T, kv KV) {
	_, err := kv.Get([]byte("missing"))
	assert.ErrorIs(t, err, ErrNotFoundInDb)

	require.NoError(t, kv.Set([]byte("a"), []byte("1")))
	v, err := kv.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)

	require.NoError(t, kv.Set([]byte("a"), []byte("2")))
	v, err = kv.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), v)

	require.NoError(t, kv.Delete([]byte("a")))
	_, err = kv.Get([]byte("a"))
	assert.ErrorIs(t, err, ErrNotFoundInDb)

	b := kv.NewBatch()
	b.Set([]byte("x"), []byte("10"))
	b.Set([]byte("y"), []byte("20"))
	b.Delete([]byte("x"))
	_, err = kv.Get([]byte("y"))
	assert.ErrorIs(t, err, ErrNotFoundInDb, "batch must not apply before Write")
	require.NoError(t, b.Write())

	_, err = kv.Get([]byte("x"))
	assert.ErrorIs(t, err, ErrNotFoundInDb)
	v, err = kv.Get([]byte("y"))
	require.NoError(t, err)
	assert.Equal(t, []byte("20"), v)

	b.Reset()
	require.NoError(t, b.Write())
}

func TestGoMemDB(t *testing.T) {
	testKV(t, NewGoMemDB())
}

func TestGoLevelDB(t *testing.T) {
	dir := t.TempDir()
	kv, err := NewGoLevelDB("test", dir)
	require.NoError(t, err)
	testKV(t, kv)
	require.NoError(t, kv.Set([]byte("persist"), []byte("yes")))
	require.NoError(t, kv.Close())

	kv, err = NewGoLevelDB("test", dir)
	require.NoError(t, err)
	defer kv.Close()
	v, err := kv.Get([]byte("persist"))
	require.NoError(t, err)
	assert.Equal(t, []byte("yes"), v)
}

func TestCachedKV(t *testing.T) {
	mem := NewGoMemDB()
	kv, err := NewCachedKV(mem, 2)
	require.NoError(t, err)
	testKV(t, kv)

	require.NoError(t, kv.Set([]byte("k"), []byte("v1")))
	// a write behind the cache's back stays invisible until evicted
	require.NoError(t, mem.Set([]byte("k"), []byte("v2")))
	v, err := kv.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), v)

	b := kv.NewBatch()
	b.Set([]byte("k"), []byte("v3"))
	require.NoError(t, b.Write())
	v, err = kv.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v3"), v)
	assert.LessOrEqual(t, kv.Len(), 2)
}

func TestNewDB(t *testing.T) {
	kv, err := NewDB(Options{Backend: MemDBBackendStr, Name: "t", CacheSize: 8})
	require.NoError(t, err)
	_, ok := kv.(*CachedKV)
	assert.True(t, ok)

	kv, err = NewDB(Options{Backend: GoLevelDBBackendStr, Name: "t", Dir: t.TempDir()})
	require.NoError(t, err)
	_, ok = kv.(*GoLevelDB)
	assert.True(t, ok)
	require.NoError(t, kv.Close())

	_, err = NewDB(Options{Backend: "pegasus"})
	assert.ErrorIs(t, err, ErrUnknownBackend)
}
