package scanner

import (
	"fmt"
	"iter"

	"spl-ac-seq-parse/internal/consts"
	"spl-ac-seq-parse/internal/logic/core"
	"spl-ac-seq-parse/internal/types"
)

// ScanLogProgram 惰性遍历 meta.innerInstructions，只产出调用 logProgram 的 compiled 指令。
// 遍历顺序：先按存储顺序遍历 InnerInstructionGroup，再按组内顺序遍历指令。
//
//   - meta 中没有 innerInstructions：空序列，不是错误；
//   - 非 compiled 形态（parsed / partially decoded）：忽略；
//   - programIdIndex 越界：跳过该条并通知 obs，不影响其余指令；
//   - 程序不是 logProgram：直接丢弃。
func ScanLogProgram(tx *core.AdaptedTx, logProgram types.Pubkey, obs core.Observer) iter.Seq[*core.AdaptedInstruction] {
	return func(yield func(*core.AdaptedInstruction) bool) {
		if tx.Meta == nil || tx.Meta.InnerInstructions == nil {
			return
		}
		accountKeys := tx.AccountKeys

		for _, group := range *tx.Meta.InnerInstructions {
			for j, ui := range group.Instructions {
				inst, ok := ui.Compiled()
				if !ok {
					continue
				}
				innerIndex := uint16(j + 1) // InnerIndex 从 1 开始

				if int(inst.ProgramIDIndex) >= len(accountKeys) {
					obs.OnInstructionSkipped(tx.Signature, group.Index, innerIndex, core.SkipProgramIndexOutOfRange,
						fmt.Errorf("programIdIndex %d out of range, accountKeys len=%d", inst.ProgramIDIndex, len(accountKeys)))
					continue
				}
				programID := accountKeys[inst.ProgramIDIndex]
				if programID != logProgram {
					continue
				}

				accounts := make([]types.Pubkey, 0, len(inst.Accounts))
				for _, idx := range inst.Accounts {
					if int(idx) < len(accountKeys) {
						accounts = append(accounts, accountKeys[idx])
					} else {
						accounts = append(accounts, consts.InvalidAddress)
					}
				}

				if !yield(&core.AdaptedInstruction{
					IxIndex:    group.Index,
					InnerIndex: innerIndex,
					ProgramID:  programID,
					Accounts:   accounts,
					Data:       inst.Data,
				}) {
					return
				}
			}
		}
	}
}
