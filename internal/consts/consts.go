package consts

import "runtime"

const (
	// DefaultMaxRetries 获取交易失败后的默认重试次数（不含首次请求）
	DefaultMaxRetries = 3

	// RPC getTransaction 固定参数
	RpcCommitment                     = "confirmed"
	RpcTransactionEncoding            = "base58"
	RpcMaxSupportedTransactionVersion = 0
)

// CpuCount 表示逻辑 CPU 核心数，用于控制并发任务调度上限
var CpuCount = runtime.NumCPU()
