package domain

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	sdktypes "github.com/blocto/solana-go-sdk/types"
	"github.com/mr-tron/base58"
)

// TransactionRecord 对应 getTransaction 的 result 字段。
// 拉取后只读，由单次解析流程独占使用。
type TransactionRecord struct {
	Slot        uint64             `json:"slot"`
	BlockTime   *int64             `json:"blockTime,omitempty"`
	Meta        *Meta              `json:"meta"`
	Transaction EncodedTransaction `json:"transaction"`
	Version     json.RawMessage    `json:"version,omitempty"` // "legacy" 或 0
}

// Meta 交易执行元数据。指针为 nil 表示 RPC 未返回该字段（OptionSerializer::None / Skip）。
type Meta struct {
	Err               json.RawMessage          `json:"err,omitempty"`
	LogMessages       []string                 `json:"logMessages,omitempty"`
	InnerInstructions *[]InnerInstructionGroup `json:"innerInstructions,omitempty"`
	LoadedAddresses   *LoadedAddresses         `json:"loadedAddresses,omitempty"`
}

// LoadedAddresses 通过 Address Lookup Table 加载的账户（base58 文本）。
// 拼接顺序固定为 writable 在前、readonly 在后。
type LoadedAddresses struct {
	Writable []string `json:"writable"`
	Readonly []string `json:"readonly"`
}

// InnerInstructionGroup 某条主指令（Index）执行期间产生的 inner 指令集合
type InnerInstructionGroup struct {
	Index        uint16          `json:"index"`
	Instructions []UiInstruction `json:"instructions"`
}

// CompiledInstruction 编译形态的指令，账户以 account list 下标表示
type CompiledInstruction struct {
	ProgramIDIndex uint16   `json:"programIdIndex"`
	Accounts       []uint16 `json:"accounts"`
	Data           string   `json:"data"` // base58
	StackHeight    *uint32  `json:"stackHeight,omitempty"`
}

// UiInstruction 是 RPC 返回的 inner 指令，可能是 compiled / parsed / partially decoded 三种形态之一。
// 只有 compiled 形态参与解析，其余形态保留原始 JSON 以便缓存回写。
type UiInstruction struct {
	raw      json.RawMessage
	compiled *CompiledInstruction
}

// NewCompiledInstruction 直接构造 compiled 形态的 UiInstruction
func NewCompiledInstruction(ci CompiledInstruction) UiInstruction {
	return UiInstruction{compiled: &ci}
}

// Compiled 返回 compiled 形态的指令；非 compiled 形态返回 false
func (u UiInstruction) Compiled() (*CompiledInstruction, bool) {
	return u.compiled, u.compiled != nil
}

func (u *UiInstruction) UnmarshalJSON(data []byte) error {
	var probe struct {
		ProgramIDIndex *uint16 `json:"programIdIndex"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("unmarshal inner instruction: %w", err)
	}
	u.raw = append(u.raw[:0], data...)
	u.compiled = nil
	if probe.ProgramIDIndex == nil {
		// parsed / partially decoded，忽略
		return nil
	}
	var ci CompiledInstruction
	if err := json.Unmarshal(data, &ci); err != nil {
		return fmt.Errorf("unmarshal compiled instruction: %w", err)
	}
	u.compiled = &ci
	return nil
}

func (u UiInstruction) MarshalJSON() ([]byte, error) {
	if u.compiled != nil {
		return json.Marshal(u.compiled)
	}
	if len(u.raw) > 0 {
		return u.raw, nil
	}
	return []byte("null"), nil
}

const (
	EncodingBase58 = "base58"
	EncodingBase64 = "base64"
)

var ErrUnsupportedEncoding = errors.New("unsupported transaction encoding")

// EncodedTransaction 二进制编码的交易，RPC 中表示为 ["<payload>", "<encoding>"]。
// 以 json / jsonParsed 方式返回的对象形态只保留原文，Decode 时报错。
type EncodedTransaction struct {
	Payload  string
	Encoding string
	raw      json.RawMessage
}

func (e *EncodedTransaction) UnmarshalJSON(data []byte) error {
	e.raw = nil
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		e.Payload, e.Encoding = "", ""
		e.raw = append(json.RawMessage(nil), data...)
		return nil
	}
	var pair []string
	if err := json.Unmarshal(trimmed, &pair); err != nil {
		return fmt.Errorf("unmarshal encoded transaction: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("unmarshal encoded transaction: want [payload, encoding], got %d items", len(pair))
	}
	e.Payload, e.Encoding = pair[0], pair[1]
	return nil
}

func (e EncodedTransaction) MarshalJSON() ([]byte, error) {
	if e.raw != nil {
		return e.raw, nil
	}
	return json.Marshal([]string{e.Payload, e.Encoding})
}

// Bytes 去掉传输层文本编码，返回交易的 wire 格式字节
func (e EncodedTransaction) Bytes() ([]byte, error) {
	switch e.Encoding {
	case EncodingBase58:
		return base58.Decode(e.Payload)
	case EncodingBase64:
		return base64.StdEncoding.DecodeString(e.Payload)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, e.Encoding)
	}
}

// Decode 解出 versioned transaction（legacy 或 v0 message）
func (e EncodedTransaction) Decode() (tx sdktypes.Transaction, err error) {
	defer func() {
		// SDK 对畸形输入可能越界 panic，统一转为 error
		if r := recover(); r != nil {
			tx, err = sdktypes.Transaction{}, fmt.Errorf("deserialize transaction panic: %v", r)
		}
	}()

	b, err := e.Bytes()
	if err != nil {
		return sdktypes.Transaction{}, err
	}
	if len(b) == 0 {
		return sdktypes.Transaction{}, errors.New("empty transaction payload")
	}
	tx, err = sdktypes.TransactionDeserialize(b)
	if err != nil {
		return sdktypes.Transaction{}, fmt.Errorf("deserialize transaction: %w", err)
	}
	return tx, nil
}
