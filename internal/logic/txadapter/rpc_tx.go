package txadapter

import (
	"fmt"

	"spl-ac-seq-parse/internal/logic/core"
	"spl-ac-seq-parse/internal/logic/domain"
)

// AdaptRpcTx 将 getTransaction 返回的交易记录解析为内部 AdaptedTx 结构。
// 完整流程：
//  1. 校验 meta 存在；
//  2. 解码 versioned transaction，取出静态账户；
//  3. 拼接 Address Lookup 账户，构建完整 accountKeys。
//
// 任何一步失败都返回 *core.ParsingError（交易级致命错误）；如 panic 会被 recover。
func AdaptRpcTx(signature string, record *domain.TransactionRecord) (_ *core.AdaptedTx, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = core.NewParsingError(core.ParsingDecoding, signature, fmt.Errorf("AdaptRpcTx panic: %v", r))
		}
	}()

	if record == nil || record.Meta == nil {
		return nil, core.NewParsingError(core.ParsingMeta, signature, fmt.Errorf("couldn't load meta"))
	}

	tx, err := record.Transaction.Decode()
	if err != nil {
		return nil, core.NewParsingError(core.ParsingDecoding, signature, err)
	}

	accountKeys, err := buildFullAccountKeys(tx.Message.Accounts, record.Meta.LoadedAddresses)
	if err != nil {
		return nil, core.NewParsingError(core.ParsingAddress, signature, err)
	}

	var blockTime int64
	if record.BlockTime != nil {
		blockTime = *record.BlockTime
	}

	return &core.AdaptedTx{
		Signature:   signature,
		Slot:        record.Slot,
		BlockTime:   blockTime,
		AccountKeys: accountKeys,
		Meta:        record.Meta,
	}, nil
}
