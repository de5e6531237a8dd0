package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"spl-ac-seq-parse/internal/logic/domain"
)

const (
	defaultKeyPrefix = "seqparse:tx"
	defaultTTL       = 24 * time.Hour
)

// RedisRecordStore 把交易记录以 JSON 形式写入 Redis，key 为 prefix:signature
type RedisRecordStore struct {
	rdb    redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedisRecordStore prefix 为空或 ttl <= 0 时使用默认值
func NewRedisRecordStore(rdb redis.UniversalClient, prefix string, ttl time.Duration) *RedisRecordStore {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisRecordStore{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (r *RedisRecordStore) getKey(signature string) string {
	return fmt.Sprintf("%s:%s", r.prefix, signature)
}

func (r *RedisRecordStore) Get(ctx context.Context, signature string) (*domain.TransactionRecord, bool, error) {
	val, err := r.rdb.Get(ctx, r.getKey(signature)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("redis get error: %w", err)
	}

	var rec domain.TransactionRecord
	if err := json.Unmarshal(val, &rec); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached record %s: %w", signature, err)
	}
	return &rec, true, nil
}

func (r *RedisRecordStore) Put(ctx context.Context, signature string, record *domain.TransactionRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal record %s: %w", signature, err)
	}
	return r.rdb.Set(ctx, r.getKey(signature), payload, r.ttl).Err()
}
