package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/blocto/solana-go-sdk/rpc"

	"spl-ac-seq-parse/internal/consts"
	"spl-ac-seq-parse/internal/logic/domain"
)

// RpcError JSON-RPC 层返回的错误对象
type RpcError struct {
	Code    int
	Message string
}

func (e *RpcError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// RpcFetcher 通过 getTransaction 获取已确认交易（base58 编码，支持 v0）
type RpcFetcher struct {
	client   *rpc.RpcClient
	endpoint string
	timeout  time.Duration
}

// NewRpcFetcher timeout <= 0 时只受调用方 ctx 约束
func NewRpcFetcher(endpoint string, timeout time.Duration) (*RpcFetcher, error) {
	if endpoint == "" {
		return nil, errors.New("rpc endpoint is empty")
	}
	client := rpc.NewRpcClient(endpoint)
	return &RpcFetcher{
		client:   &client,
		endpoint: endpoint,
		timeout:  timeout,
	}, nil
}

// FetchTransaction 单次请求，不做重试。交易不存在时返回 (nil, nil)。
func (f *RpcFetcher) FetchTransaction(ctx context.Context, signature string) (*domain.TransactionRecord, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	body, err := f.client.Call(ctx, "getTransaction", signature, map[string]any{
		"encoding":                       consts.RpcTransactionEncoding,
		"commitment":                     consts.RpcCommitment,
		"maxSupportedTransactionVersion": consts.RpcMaxSupportedTransactionVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("getTransaction %s: %w", f.endpoint, err)
	}

	var resp rpc.JsonRpcResponse[*domain.TransactionRecord]
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("getTransaction: unmarshal response: %w", err)
	}
	if resp.Error != nil {
		return nil, &RpcError{Code: resp.Error.Code, Message: resp.Error.Message}
	}
	return resp.Result, nil
}
