package txadapter

import (
	"fmt"

	"github.com/blocto/solana-go-sdk/common"

	"spl-ac-seq-parse/internal/logic/domain"
	"spl-ac-seq-parse/internal/types"
)

// buildFullAccountKeys 构造交易中完整的账户 Pubkey 列表。
// 拼接 message 静态账户与 Address Lookup Table 中的 writable / readonly 地址，
// 顺序必须是 static ++ writable ++ readonly：指令中的账户下标按该顺序编码，顺序错了不会报错，只会静默解析到错误账户。
//
// loaded 为 nil 时（未使用 lookup table）只返回静态账户。
func buildFullAccountKeys(staticKeys []common.PublicKey, loaded *domain.LoadedAddresses) ([]types.Pubkey, error) {
	total := len(staticKeys)
	if loaded != nil {
		total += len(loaded.Writable) + len(loaded.Readonly)
	}
	pubkeys := make([]types.Pubkey, 0, total)

	// 主账户部分（来自 message.accountKeys）
	for _, k := range staticKeys {
		pubkeys = append(pubkeys, types.Pubkey(k))
	}
	if loaded == nil {
		return pubkeys, nil
	}

	// Address Table 中的 writable 部分
	for i, s := range loaded.Writable {
		pk, err := types.TryPubkeyFromBase58(s)
		if err != nil {
			return nil, fmt.Errorf("invalid pubkey in loadedAddresses.writable at index %d: %w", i, err)
		}
		pubkeys = append(pubkeys, pk)
	}

	// Address Table 中的 readonly 部分
	for i, s := range loaded.Readonly {
		pk, err := types.TryPubkeyFromBase58(s)
		if err != nil {
			return nil, fmt.Errorf("invalid pubkey in loadedAddresses.readonly at index %d: %w", i, err)
		}
		pubkeys = append(pubkeys, pk)
	}
	return pubkeys, nil
}
