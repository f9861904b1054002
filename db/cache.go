package db

import (
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
)

// CachedKV serves repeated reads from an LRU cache. Writes go through to
// the wrapped store and refresh the cache; misses are not cached.
type CachedKV struct {
	KV
	cache *lru.Cache
}

func NewCachedKV(kv KV, size int) (*CachedKV, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, errors.Wrap(err, "new lru cache")
	}
	return &CachedKV{KV: kv, cache: cache}, nil
}

func (c *CachedKV) Get(key []byte) ([]byte, error) {
	if v, ok := c.cache.Get(string(key)); ok {
		return CopyBytes(v.([]byte)), nil
	}
	v, err := c.KV.Get(key)
	if err != nil {
		return nil, err
	}
	c.cache.Add(string(key), CopyBytes(v))
	return v, nil
}

func (c *CachedKV) Set(key, value []byte) error {
	if err := c.KV.Set(key, value); err != nil {
		c.cache.Remove(string(key))
		return err
	}
	c.cache.Add(string(key), CopyBytes(value))
	return nil
}

func (c *CachedKV) Delete(key []byte) error {
	c.cache.Remove(string(key))
	return c.KV.Delete(key)
}

func (c *CachedKV) NewBatch() Batch {
	return &cachedBatch{Batch: c.KV.NewBatch(), cache: c.cache}
}

// cachedBatch drops the touched keys from the cache once written.
type cachedBatch struct {
	Batch
	cache *lru.Cache
	keys  []string
}

func (b *cachedBatch) Set(key, value []byte) {
	b.keys = append(b.keys, string(key))
	b.Batch.Set(key, value)
}

func (b *cachedBatch) Delete(key []byte) {
	b.keys = append(b.keys, string(key))
	b.Batch.Delete(key)
}

func (b *cachedBatch) Write() error {
	err := b.Batch.Write()
	for _, k := range b.keys {
		b.cache.Remove(k)
	}
	return err
}

func (b *cachedBatch) Reset() {
	b.keys = b.keys[:0]
	b.Batch.Reset()
}

// Len is the number of cached entries.
func (c *CachedKV) Len() int { return c.cache.Len() }
