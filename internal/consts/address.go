package consts

import "spl-ac-seq-parse/internal/types"

// Base58 地址常量（可读性高，适合配置与日志使用）
const (
	// spl-noop：account-compression 通过 CPI 调用它，把 ChangeLog 事件写入 inner 指令 data
	NoopProgramStr = "noopb9bkMVfRPU8AsbpTUg8AQkHtKwMYZiFUjNRtMmV"
)

var (
	NoopProgram = types.PubkeyFromBase58(NoopProgramStr)

	// InvalidAddress 表示无法解析的账户（全 0xFF），用于占位越界的账户索引
	InvalidAddress = types.Pubkey{
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
	}
)
