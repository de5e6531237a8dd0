package core

import (
	"spl-ac-seq-parse/internal/logic/domain"
	"spl-ac-seq-parse/internal/types"
)

// AdaptedInstruction 表示一条已定位的 inner 指令，来源于 meta.innerInstructions。
// ProgramID 与 Accounts 已通过完整账户列表解析为 Pubkey。
type AdaptedInstruction struct {
	IxIndex    uint16         // 所属主指令索引（InnerInstructionGroup.Index）
	InnerIndex uint16         // 在该组内的序号，从 1 开始
	ProgramID  types.Pubkey   // 指令对应的程序 ID
	Accounts   []types.Pubkey // 指令涉及的账户列表，越界下标以 consts.InvalidAddress 占位
	Data       string         // 指令 data 原文（base58），由事件解码器负责传输层解码
}

// AdaptedTx 是解析流程的核心输入：完整账户列表 + 交易元数据。
// 只在单次解析调用内使用，不跨调用共享。
type AdaptedTx struct {
	Signature string
	Slot      uint64
	BlockTime int64

	// AccountKeys = 静态账户 ++ loaded writable ++ loaded readonly，指令中的账户下标均指向该列表
	AccountKeys []types.Pubkey

	Meta *domain.Meta
}
