package cache

import (
	"context"

	"spl-ac-seq-parse/internal/logic/domain"
)

// RecordStore 按交易签名缓存 getTransaction 结果。
// 已确认交易不可变，缓存命中即可直接使用，无需校验。
type RecordStore interface {
	// Get 未命中返回 (nil, false, nil)
	Get(ctx context.Context, signature string) (*domain.TransactionRecord, bool, error)
	Put(ctx context.Context, signature string, record *domain.TransactionRecord) error
}
