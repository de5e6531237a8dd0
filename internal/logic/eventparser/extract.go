package eventparser

import (
	"fmt"
	"runtime/debug"

	"spl-ac-seq-parse/internal/logic/core"
	"spl-ac-seq-parse/internal/logic/eventparser/compression"
	"spl-ac-seq-parse/internal/logic/scanner"
	"spl-ac-seq-parse/internal/types"
	"spl-ac-seq-parse/pkg/logger"
)

// ExtractChangeLogs 扫描交易中调用 logProgram 的 inner 指令，按扫描顺序解出全部 ChangeLog/V1 事件。
// 单条指令解码失败或事件类型不支持时只通知 obs 并跳过，不影响其余指令。
// 没有匹配事件时返回空切片（非 nil）。
func ExtractChangeLogs(adaptedTx *core.AdaptedTx, logProgram types.Pubkey, obs core.Observer) (result []core.ChangeLog, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("[eventparser::ExtractChangeLogs] panic tx=%s: %+v\nstack: %s", adaptedTx.Signature, r, debug.Stack())
			result, err = nil, core.NewParsingError(core.ParsingDecoding, adaptedTx.Signature, fmt.Errorf("extract panic: %v", r))
		}
	}()

	result = make([]core.ChangeLog, 0)
	for ix := range scanner.ScanLogProgram(adaptedTx, logProgram, obs) {
		event, reason, decodeErr := compression.DecodeChangeLog(ix.Data)
		if reason != "" {
			obs.OnInstructionSkipped(adaptedTx.Signature, ix.IxIndex, ix.InnerIndex, reason, decodeErr)
			continue
		}

		log := core.ChangeLog{
			Tree:       event.ID,
			Seq:        event.Seq,
			LeafIndex:  event.Index,
			IxIndex:    ix.IxIndex,
			InnerIndex: ix.InnerIndex,
		}
		obs.OnSequenceEmitted(adaptedTx.Signature, log)
		result = append(result, log)
	}
	return result, nil
}
