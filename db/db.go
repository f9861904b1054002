// Package db is the persistent key-value substrate under the local ledger
// host. Backends register themselves by name.
package db

import (
	log "github.com/inconshreveable/log15"
	"github.com/pkg/errors"
)

var dlog = log.New("module", "db")

// Backend names.
const (
	MemDBBackendStr     = "memdb"
	GoLevelDBBackendStr = "leveldb"
	RedisBackendStr     = "redis"
)

var (
	ErrNotFoundInDb   = errors.New("ErrNotFoundInDb")
	ErrUnknownBackend = errors.New("ErrUnknownBackend")
)

// KV is a byte-keyed store. Get returns ErrNotFoundInDb for absent keys.
type KV interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
	Delete(key []byte) error
	// NewBatch starts a set of writes applied atomically by Write.
	NewBatch() Batch
	Close() error
}

// Batch collects writes for one atomic Write.
type Batch interface {
	Set(key, value []byte)
	Delete(key []byte)
	Write() error
	Reset()
}

// Options selects and configures a backend.
type Options struct {
	Backend string
	Name    string
	Dir     string
	// CacheSize > 0 puts an LRU read cache of that many entries in front.
	CacheSize int

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

type dbCreator func(opts Options) (KV, error)

var backends = map[string]dbCreator{}

func registerDBCreator(backend string, creator dbCreator, force bool) {
	_, ok := backends[backend]
	if !force && ok {
		return
	}
	backends[backend] = creator
}

// NewDB opens the backend named in opts.
func NewDB(opts Options) (KV, error) {
	creator, ok := backends[opts.Backend]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownBackend, "%q", opts.Backend)
	}
	kv, err := creator(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s db %q", opts.Backend, opts.Name)
	}
	dlog.Info("NewDB", "backend", opts.Backend, "name", opts.Name, "dir", opts.Dir, "cache", opts.CacheSize)
	if opts.CacheSize > 0 {
		cached, err := NewCachedKV(kv, opts.CacheSize)
		if err != nil {
			kv.Close()
			return nil, err
		}
		return cached, nil
	}
	return kv, nil
}

// CopyBytes returns an independent copy of b.
func CopyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	c := make([]byte, len(b))
	copy(c, b)
	return c
}

type batchOp struct {
	key    []byte
	value  []byte
	delete bool
}
