package compression

import "spl-ac-seq-parse/internal/types"

// 来源: https://github.com/solana-labs/solana-program-library/blob/master/account-compression/programs/account-compression/src/events
//
// AccountCompressionEvent 的 borsh 布局：
//
//	u8 kind | kind 对应的 payload
//	ChangeLog:       u8 version | ChangeLogEventV1...
//	ApplicationData: u8 version | ApplicationDataEventV1...
type EventKind uint8

const (
	KindChangeLog       EventKind = 0
	KindApplicationData EventKind = 1
)

func (k EventKind) String() string {
	switch k {
	case KindChangeLog:
		return "changelog"
	case KindApplicationData:
		return "application_data"
	default:
		return "unknown"
	}
}

// ChangeLogEvent / ApplicationDataEvent 的版本号
const (
	VersionV1 uint8 = 0
)

// PathNode Merkle 证明路径上的一个节点
type PathNode struct {
	Node  types.Hash
	Index uint32
}

// ChangeLogEventV1 一次 concurrent merkle tree 变更
type ChangeLogEventV1 struct {
	ID    types.Pubkey // tree 账户
	Path  []PathNode   // 从叶子到根的新路径
	Seq   uint64       // 该 tree 的单调递增序号
	Index uint32       // 叶子下标
}

// ApplicationDataEventV1 上层程序（如 bubblegum）写入的任意数据
type ApplicationDataEventV1 struct {
	ApplicationData []byte
}

// Event 解码后的 AccountCompressionEvent。
// 未知 kind / 未知 version 仍视为结构上解码成功，只是 Recognized 为 false，不产出结果。
type Event struct {
	Kind    EventKind
	Version uint8

	ChangeLogV1       *ChangeLogEventV1
	ApplicationDataV1 *ApplicationDataEventV1
}

// Recognized 表示 kind 与 version 都在已知集合内且 payload 已解出
func (e *Event) Recognized() bool {
	return e.ChangeLogV1 != nil || e.ApplicationDataV1 != nil
}

// ChangeLog 返回 ChangeLog/V1 payload；其他 kind 或版本返回 false
func (e *Event) ChangeLog() (*ChangeLogEventV1, bool) {
	return e.ChangeLogV1, e.ChangeLogV1 != nil
}
