package types

import (
	"fmt"

	"github.com/mr-tron/base58"
)

const SignatureLength = 64

// Signature 交易签名（64 字节），同时作为交易唯一标识
type Signature [SignatureLength]byte

func (s Signature) String() string {
	return base58.Encode(s[:])
}

// SignatureFromBase58 校验并解析 base58 形式的交易签名
func SignatureFromBase58(s string) (Signature, error) {
	var sig Signature
	data, err := base58.Decode(s)
	if err != nil {
		return sig, fmt.Errorf("failed to decode base58 signature %q: %w", s, err)
	}
	if len(data) != SignatureLength {
		return sig, fmt.Errorf("invalid signature length: got %d, want %d", len(data), SignatureLength)
	}
	copy(sig[:], data)
	return sig, nil
}
