// Package testutil 构造测试用的交易记录与 noop 指令数据，只被 _test.go 引用。
package testutil

import (
	"encoding/binary"

	"github.com/mr-tron/base58"

	"spl-ac-seq-parse/internal/logic/domain"
	"spl-ac-seq-parse/internal/types"
)

// Key 生成可区分的测试地址：32 字节全部填充 seed
func Key(seed byte) types.Pubkey {
	var p types.Pubkey
	for i := range p {
		p[i] = seed
	}
	return p
}

// Signature 生成测试用 base58 交易签名
func Signature(seed byte) string {
	b := make([]byte, types.SignatureLength)
	for i := range b {
		b[i] = seed
	}
	return base58.Encode(b)
}

func appendCompactU16(b []byte, n int) []byte {
	for {
		elem := byte(n & 0x7f)
		n >>= 7
		if n == 0 {
			return append(b, elem)
		}
		b = append(b, elem|0x80)
	}
}

// V0TransactionBytes 构造一笔 v0 交易的 wire 格式：1 个签名、1 条主指令（调用最后一个静态账户），
// withLookup 为 true 时附带一个 address table lookup（writable [0]、readonly [1]）。
func V0TransactionBytes(static []types.Pubkey, withLookup bool) []byte {
	msg := []byte{0x80} // v0 前缀
	// header: 1 个签名账户，剩余静态账户均为只读非签名账户
	msg = append(msg, 1, 0, byte(len(static)-1))
	msg = appendCompactU16(msg, len(static))
	for _, k := range static {
		msg = append(msg, k[:]...)
	}
	msg = append(msg, make([]byte, 32)...) // recent blockhash

	msg = appendCompactU16(msg, 1)
	msg = append(msg, byte(len(static)-1)) // programIdIndex
	msg = appendCompactU16(msg, 0)         // accounts
	msg = appendCompactU16(msg, 0)         // data

	if withLookup {
		table := Key(0xEE)
		msg = appendCompactU16(msg, 1)
		msg = append(msg, table[:]...)
		msg = appendCompactU16(msg, 1)
		msg = append(msg, 0)
		msg = appendCompactU16(msg, 1)
		msg = append(msg, 1)
	} else {
		msg = appendCompactU16(msg, 0)
	}

	tx := appendCompactU16(nil, 1)
	tx = append(tx, make([]byte, types.SignatureLength)...)
	return append(tx, msg...)
}

// ChangeLogV1Bytes 按 AccountCompressionEvent::ChangeLog(ChangeLogEvent::V1) 的 borsh 布局手工编码：
// tag(0) | version(0) | id[32] | path: u32 len + (node[32] | index u32)* | seq u64 | index u32
func ChangeLogV1Bytes(tree types.Pubkey, seq uint64, leafIndex uint32, pathLen int) []byte {
	b := []byte{0, 0}
	b = append(b, tree[:]...)
	b = binary.LittleEndian.AppendUint32(b, uint32(pathLen))
	for i := 0; i < pathLen; i++ {
		node := Key(byte(0x10 + i))
		b = append(b, node[:]...)
		b = binary.LittleEndian.AppendUint32(b, uint32(i))
	}
	b = binary.LittleEndian.AppendUint64(b, seq)
	b = binary.LittleEndian.AppendUint32(b, leafIndex)
	return b
}

// ChangeLogV1Data 返回 base58 编码后的 ChangeLog/V1 指令 data
func ChangeLogV1Data(tree types.Pubkey, seq uint64) string {
	return base58.Encode(ChangeLogV1Bytes(tree, seq, 0, 1))
}

// CompiledIx 构造 compiled 形态的 inner 指令
func CompiledIx(programIDIndex uint16, data string) domain.UiInstruction {
	return domain.NewCompiledInstruction(domain.CompiledInstruction{
		ProgramIDIndex: programIDIndex,
		Accounts:       []uint16{0},
		Data:           data,
	})
}

// Record 构造一条完整的 TransactionRecord。loaded 为 nil 时表示未使用 lookup table。
func Record(static []types.Pubkey, loaded *domain.LoadedAddresses, groups []domain.InnerInstructionGroup) *domain.TransactionRecord {
	meta := &domain.Meta{LoadedAddresses: loaded}
	if groups != nil {
		meta.InnerInstructions = &groups
	}
	return &domain.TransactionRecord{
		Slot: 1,
		Meta: meta,
		Transaction: domain.EncodedTransaction{
			Payload:  base58.Encode(V0TransactionBytes(static, loaded != nil)),
			Encoding: domain.EncodingBase58,
		},
	}
}

// Loaded 把 Pubkey 列表转换为 RPC 返回的 base58 文本形式
func Loaded(writable, readonly []types.Pubkey) *domain.LoadedAddresses {
	la := &domain.LoadedAddresses{Writable: []string{}, Readonly: []string{}}
	for _, k := range writable {
		la.Writable = append(la.Writable, k.String())
	}
	for _, k := range readonly {
		la.Readonly = append(la.Readonly, k.String())
	}
	return la
}
