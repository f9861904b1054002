package db

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

func init() {
	registerDBCreator(RedisBackendStr, func(opts Options) (KV, error) {
		return NewRedisDB(opts.Name, opts.RedisAddr, opts.RedisPassword, opts.RedisDB)
	}, false)
}

const redisTimeout = 5 * time.Second

// RedisDB keeps keys in a Redis database, namespaced by "<name>:".
type RedisDB struct {
	client *redis.Client
	prefix string
}

func NewRedisDB(name, addr, password string, dbIndex int) (*RedisDB, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       dbIndex,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrapf(err, "connect to redis %s", addr)
	}
	return &RedisDB{client: client, prefix: name + ":"}, nil
}

func (db *RedisDB) key(k []byte) string { return db.prefix + string(k) }

func (db *RedisDB) Get(key []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	res, err := db.client.Get(ctx, db.key(key)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFoundInDb
	}
	if err != nil {
		dlog.Error("Get", "backend", RedisBackendStr, "error", err)
		return nil, err
	}
	return res, nil
}

func (db *RedisDB) Set(key, value []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	return db.client.Set(ctx, db.key(key), value, 0).Err()
}

func (db *RedisDB) Delete(key []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	return db.client.Del(ctx, db.key(key)).Err()
}

func (db *RedisDB) Close() error { return db.client.Close() }

func (db *RedisDB) NewBatch() Batch { return &redisBatch{db: db} }

// redisBatch applies its writes in one MULTI/EXEC transaction.
type redisBatch struct {
	db  *RedisDB
	ops []batchOp
}

func (b *redisBatch) Set(key, value []byte) {
	b.ops = append(b.ops, batchOp{key: CopyBytes(key), value: CopyBytes(value)})
}

func (b *redisBatch) Delete(key []byte) {
	b.ops = append(b.ops, batchOp{key: CopyBytes(key), delete: true})
}

func (b *redisBatch) Reset() { b.ops = b.ops[:0] }

func (b *redisBatch) Write() error {
	if len(b.ops) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	_, err := b.db.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, op := range b.ops {
			if op.delete {
				pipe.Del(ctx, b.db.key(op.key))
			} else {
				pipe.Set(ctx, b.db.key(op.key), op.value, 0)
			}
		}
		return nil
	})
	if err != nil {
		dlog.Error("Batch.Write", "backend", RedisBackendStr, "error", err)
	}
	return err
}
