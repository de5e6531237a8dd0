package compression

import (
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/near/borsh-go"

	"spl-ac-seq-parse/internal/logic/core"
)

var (
	ErrEmptyPayload   = errors.New("empty event payload")
	ErrMissingVersion = errors.New("missing event version")
	ErrTrailingBytes  = errors.New("not all bytes read")
)

// bodyDecoder 解码 version 字节之后的 payload，并写入 ev
type bodyDecoder func(body []byte, ev *Event) error

// changeLogDecoders ChangeLogEvent 按 version 路由，新版本在此登记即可
var changeLogDecoders = map[uint8]bodyDecoder{
	VersionV1: func(body []byte, ev *Event) error {
		v1, err := decodeExact[ChangeLogEventV1](body)
		if err != nil {
			return err
		}
		ev.ChangeLogV1 = &v1
		return nil
	},
}

var applicationDataDecoders = map[uint8]bodyDecoder{
	VersionV1: func(body []byte, ev *Event) error {
		v1, err := decodeExact[ApplicationDataEventV1](body)
		if err != nil {
			return err
		}
		ev.ApplicationDataV1 = &v1
		return nil
	},
}

var kindDecoders = map[EventKind]map[uint8]bodyDecoder{
	KindChangeLog:       changeLogDecoders,
	KindApplicationData: applicationDataDecoders,
}

// DecodeEvent 解码 AccountCompressionEvent 的二进制形式（base58 已去除）。
// 未知 kind 或未知 version 返回 Recognized() == false 的 Event 且 err 为 nil；
// 截断、多余字节、body 解码失败都返回 error。
func DecodeEvent(raw []byte) (*Event, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyPayload
	}
	ev := &Event{Kind: EventKind(raw[0])}
	versions, ok := kindDecoders[ev.Kind]
	if !ok {
		return ev, nil
	}

	if len(raw) < 2 {
		return nil, fmt.Errorf("%s event: %w", ev.Kind, ErrMissingVersion)
	}
	ev.Version = raw[1]
	decode, ok := versions[ev.Version]
	if !ok {
		return ev, nil
	}
	if err := decode(raw[2:], ev); err != nil {
		return nil, fmt.Errorf("%s event version=%d: %w", ev.Kind, ev.Version, err)
	}
	return ev, nil
}

// decodeExact borsh 解码 body 并要求恰好消费全部字节。
// borsh-go 不报告剩余字节，这里通过重新编码比较长度来检测。
func decodeExact[T any](body []byte) (out T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			out, err = zero, fmt.Errorf("borsh decode panic: %v", r)
		}
	}()

	if err = borsh.Deserialize(&out, body); err != nil {
		return out, fmt.Errorf("borsh decode: %w", err)
	}
	encoded, err := borsh.Serialize(out)
	if err != nil {
		return out, fmt.Errorf("borsh re-encode: %w", err)
	}
	if len(encoded) != len(body) {
		return out, fmt.Errorf("%w: consumed %d of %d bytes", ErrTrailingBytes, len(encoded), len(body))
	}
	return out, nil
}

// DecodeChangeLog 对 noop 指令的 data（base58 文本）做两步解码，只接受 ChangeLog/V1。
// reason 非空表示该指令不产出结果；SkipUnsupportedEvent 时 err 为 nil。
func DecodeChangeLog(data string) (*ChangeLogEventV1, core.SkipReason, error) {
	raw, err := base58.Decode(data)
	if err != nil {
		return nil, core.SkipInvalidBase58, fmt.Errorf("base58 decode instruction data: %w", err)
	}
	ev, err := DecodeEvent(raw)
	if err != nil {
		return nil, core.SkipMalformedEvent, err
	}
	cl, ok := ev.ChangeLog()
	if !ok {
		return nil, core.SkipUnsupportedEvent, nil
	}
	return cl, "", nil
}
