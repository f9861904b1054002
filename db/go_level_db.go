package db

import (
	"path"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	lerrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

func init() {
	registerDBCreator(GoLevelDBBackendStr, func(opts Options) (KV, error) {
		return NewGoLevelDB(opts.Name, opts.Dir)
	}, false)
}

// GoLevelDB stores data in a goleveldb directory <dir>/<name>.db.
type GoLevelDB struct {
	db *leveldb.DB
}

func NewGoLevelDB(name string, dir string) (*GoLevelDB, error) {
	dbPath := path.Join(dir, name+".db")
	cache := 16
	handles := 64
	// Open the db and recover any potential corruptions
	db, err := leveldb.OpenFile(dbPath, &opt.Options{
		OpenFilesCacheCapacity: handles,
		BlockCacheCapacity:     cache / 2 * opt.MiB,
		WriteBuffer:            cache / 4 * opt.MiB,
		Filter:                 filter.NewBloomFilter(10),
	})
	if _, corrupted := err.(*lerrors.ErrCorrupted); corrupted {
		dlog.Warn("NewGoLevelDB", "path", dbPath, "msg", "recovering corrupted db")
		db, err = leveldb.RecoverFile(dbPath, nil)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "open leveldb %s", dbPath)
	}
	return &GoLevelDB{db: db}, nil
}

func (db *GoLevelDB) Get(key []byte) ([]byte, error) {
	res, err := db.db.Get(key, nil)
	if err != nil {
		if err == lerrors.ErrNotFound {
			return nil, ErrNotFoundInDb
		}
		dlog.Error("Get", "error", err)
		return nil, err
	}
	return res, nil
}

func (db *GoLevelDB) Set(key, value []byte) error {
	if err := db.db.Put(key, value, nil); err != nil {
		dlog.Error("Set", "error", err)
		return err
	}
	return nil
}

func (db *GoLevelDB) Delete(key []byte) error {
	if err := db.db.Delete(key, nil); err != nil {
		dlog.Error("Delete", "error", err)
		return err
	}
	return nil
}

func (db *GoLevelDB) Close() error {
	return db.db.Close()
}

func (db *GoLevelDB) NewBatch() Batch {
	return &goLevelDBBatch{db: db, batch: new(leveldb.Batch)}
}

type goLevelDBBatch struct {
	db    *GoLevelDB
	batch *leveldb.Batch
}

func (b *goLevelDBBatch) Set(key, value []byte) { b.batch.Put(key, value) }
func (b *goLevelDBBatch) Delete(key []byte)     { b.batch.Delete(key) }
func (b *goLevelDBBatch) Reset()                { b.batch.Reset() }

func (b *goLevelDBBatch) Write() error {
	if err := b.db.db.Write(b.batch, &opt.WriteOptions{Sync: true}); err != nil {
		dlog.Error("Batch.Write", "error", err)
		return err
	}
	return nil
}
