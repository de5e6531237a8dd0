package pipeline

import (
	"context"
	"errors"
	"fmt"

	"spl-ac-seq-parse/internal/consts"
	"spl-ac-seq-parse/internal/logic/core"
	"spl-ac-seq-parse/internal/logic/domain"
	"spl-ac-seq-parse/internal/logic/eventparser"
	"spl-ac-seq-parse/internal/logic/txadapter"
	"spl-ac-seq-parse/internal/types"
)

// Fetcher 按签名获取已确认交易。
// 交易不存在（RPC 返回 null）时返回 (nil, nil)，由 Extractor 计为一次失败并重试。
type Fetcher interface {
	FetchTransaction(ctx context.Context, signature string) (*domain.TransactionRecord, error)
}

type Options struct {
	// LogProgram 为零值时使用 spl-noop
	LogProgram types.Pubkey
	// MaxRetries 首次请求之外的最大重试次数，nil 时使用 consts.DefaultMaxRetries
	MaxRetries *int
	// Observer 为 nil 时不做任何观测
	Observer core.Observer
}

// Extractor 从交易中提取 ChangeLog 序号。无内部可变状态，可被多个 goroutine 并发使用。
type Extractor struct {
	fetcher    Fetcher
	logProgram types.Pubkey
	maxRetries int
	obs        core.Observer
}

func NewExtractor(fetcher Fetcher, opts Options) (*Extractor, error) {
	if fetcher == nil {
		return nil, errors.New("pipeline: fetcher is nil")
	}
	e := &Extractor{
		fetcher:    fetcher,
		logProgram: opts.LogProgram,
		maxRetries: consts.DefaultMaxRetries,
		obs:        opts.Observer,
	}
	if e.logProgram.IsZero() {
		e.logProgram = consts.NoopProgram
	}
	if opts.MaxRetries != nil {
		if *opts.MaxRetries < 0 {
			return nil, fmt.Errorf("pipeline: max retries must be >= 0, got %d", *opts.MaxRetries)
		}
		e.maxRetries = *opts.MaxRetries
	}
	if e.obs == nil {
		e.obs = core.NopObserver{}
	}
	return e, nil
}

// LogProgram 返回当前过滤使用的 log program
func (e *Extractor) LogProgram() types.Pubkey {
	return e.logProgram
}

// ExtractSequenceNumbers 获取交易并按扫描顺序返回全部 ChangeLog/V1 的 seq
func (e *Extractor) ExtractSequenceNumbers(ctx context.Context, signature string) ([]uint64, error) {
	logs, err := e.ExtractChangeLogs(ctx, signature)
	if err != nil {
		return nil, err
	}
	return core.SequenceNumbers(logs), nil
}

// ExtractChangeLogs 同 ExtractSequenceNumbers，但保留 tree / leaf / 指令位置
func (e *Extractor) ExtractChangeLogs(ctx context.Context, signature string) ([]core.ChangeLog, error) {
	if _, err := types.SignatureFromBase58(signature); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidSignature, err)
	}
	record, err := e.fetch(ctx, signature)
	if err != nil {
		return nil, err
	}
	return e.ParseRecord(signature, record)
}

// ParseRecord 解析已获取的交易记录，不发起网络请求
func (e *Extractor) ParseRecord(signature string, record *domain.TransactionRecord) ([]core.ChangeLog, error) {
	adaptedTx, err := txadapter.AdaptRpcTx(signature, record)
	if err != nil {
		return nil, err
	}
	return eventparser.ExtractChangeLogs(adaptedTx, e.logProgram, e.obs)
}

// fetch 立即、顺序地重试，总尝试次数最多 1 + maxRetries；context 结束时停止。
func (e *Extractor) fetch(ctx context.Context, signature string) (*domain.TransactionRecord, error) {
	retries := e.maxRetries
	attempt := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, &core.FetchError{Signature: signature, Attempts: attempt, Err: err}
		}

		attempt++
		e.obs.OnFetchAttempt(signature, attempt)
		record, err := e.fetcher.FetchTransaction(ctx, signature)
		if err == nil && record == nil {
			err = core.ErrTransactionNotFound
		}
		if err == nil {
			return record, nil
		}
		e.obs.OnFetchFailure(signature, attempt, err)

		if retries == 0 {
			return nil, &core.FetchError{Signature: signature, Attempts: attempt, Err: err}
		}
		retries--
	}
}
