package core

import "spl-ac-seq-parse/internal/types"

// ChangeLog 从一条 ChangeLog/V1 事件中提取的结果，按扫描顺序输出
type ChangeLog struct {
	Tree       types.Pubkey // Merkle tree 账户
	Seq        uint64       // 该 tree 的单调递增序号
	LeafIndex  uint32       // 本次变更的叶子下标
	IxIndex    uint16       // 所属主指令索引
	InnerIndex uint16       // inner 指令序号（从 1 开始）
}

// SequenceNumbers 按原顺序取出 Seq
func SequenceNumbers(logs []ChangeLog) []uint64 {
	seqs := make([]uint64, 0, len(logs))
	for _, l := range logs {
		seqs = append(seqs, l.Seq)
	}
	return seqs
}
