package db

import (
	"sync"
)

func init() {
	registerDBCreator(MemDBBackendStr, func(opts Options) (KV, error) {
		return NewGoMemDB(), nil
	}, false)
}

// GoMemDB keeps everything in a map. Used for tests and throwaway runs.
type GoMemDB struct {
	db   map[string][]byte
	lock sync.RWMutex
}

func NewGoMemDB() *GoMemDB {
	return &GoMemDB{db: make(map[string][]byte)}
}

func (db *GoMemDB) Get(key []byte) ([]byte, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if entry, ok := db.db[string(key)]; ok {
		return CopyBytes(entry), nil
	}
	return nil, ErrNotFoundInDb
}

func (db *GoMemDB) Set(key, value []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()

	db.db[string(key)] = CopyBytes(value)
	return nil
}

func (db *GoMemDB) Delete(key []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()

	delete(db.db, string(key))
	return nil
}

func (db *GoMemDB) Close() error { return nil }

// Len is the number of stored keys.
func (db *GoMemDB) Len() int {
	db.lock.RLock()
	defer db.lock.RUnlock()
	return len(db.db)
}

func (db *GoMemDB) NewBatch() Batch { return &memBatch{db: db} }

type memBatch struct {
	db  *GoMemDB
	ops []batchOp
}

func (b *memBatch) Set(key, value []byte) {
	b.ops = append(b.ops, batchOp{key: CopyBytes(key), value: CopyBytes(value)})
}

func (b *memBatch) Delete(key []byte) {
	b.ops = append(b.ops, batchOp{key: CopyBytes(key), delete: true})
}

func (b *memBatch) Write() error {
	b.db.lock.Lock()
	defer b.db.lock.Unlock()

	for _, op := range b.ops {
		if op.delete {
			delete(b.db.db, string(op.key))
		} else {
			b.db.db[string(op.key)] = op.value
		}
	}
	return nil
}

func (b *memBatch) Reset() { b.ops = b.ops[:0] }
