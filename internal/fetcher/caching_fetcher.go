package fetcher

import (
	"context"

	"spl-ac-seq-parse/internal/cache"
	"spl-ac-seq-parse/internal/logic/domain"
	"spl-ac-seq-parse/pkg/logger"
)

// Fetcher 与 pipeline.Fetcher 签名一致
type Fetcher interface {
	FetchTransaction(ctx context.Context, signature string) (*domain.TransactionRecord, error)
}

// CachingFetcher 先查缓存，未命中再请求 next 并回写。
// 缓存读写失败只记录告警，退化为直接请求。
type CachingFetcher struct {
	next  Fetcher
	store cache.RecordStore
}

func NewCachingFetcher(next Fetcher, store cache.RecordStore) *CachingFetcher {
	return &CachingFetcher{next: next, store: store}
}

func (c *CachingFetcher) FetchTransaction(ctx context.Context, signature string) (*domain.TransactionRecord, error) {
	rec, ok, err := c.store.Get(ctx, signature)
	if err != nil {
		logger.Warnf("[CachingFetcher] 读取缓存失败, 直接请求 RPC: tx=%s err=%v", signature, err)
	} else if ok {
		return rec, nil
	}

	rec, err = c.next.FetchTransaction(ctx, signature)
	if err != nil || rec == nil {
		return rec, err
	}
	// 缺少 meta 的记录会在解析阶段报错，不缓存
	if rec.Meta == nil {
		return rec, nil
	}
	if err := c.store.Put(ctx, signature, rec); err != nil {
		logger.Warnf("[CachingFetcher] 写入缓存失败: tx=%s err=%v", signature, err)
	}
	return rec, nil
}
