package types

import (
	"fmt"

	"github.com/mr-tron/base58"
)

const HashLength = 32

// Hash 32 字节哈希，例如 Merkle 树节点
type Hash [HashLength]byte

func (h Hash) String() string {
	return base58.Encode(h[:])
}

func (h Hash) Equals(other Hash) bool {
	return h == other
}

func HashFromBase58(s string) (Hash, error) {
	var h Hash
	data, err := base58.Decode(s)
	if err != nil {
		return h, err
	}
	if len(data) != HashLength {
		return h, fmt.Errorf("invalid hash length: got %d, want %d", len(data), HashLength)
	}
	copy(h[:], data)
	return h, nil
}
