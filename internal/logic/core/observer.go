package core

import "spl-ac-seq-parse/pkg/logger"

// SkipReason 单条指令被跳过的原因
type SkipReason string

const (
	SkipProgramIndexOutOfRange SkipReason = "program_index_out_of_range"
	SkipInvalidBase58          SkipReason = "invalid_base58"
	SkipMalformedEvent         SkipReason = "malformed_event"
	SkipUnsupportedEvent       SkipReason = "unsupported_event"
)

// Observer 解析流程的诊断钩子，只用于观测，不影响结果。
// 实现需并发安全：同一个 Observer 会被多笔交易的解析同时调用。
type Observer interface {
	OnFetchAttempt(signature string, attempt int)
	OnFetchFailure(signature string, attempt int, err error)
	OnInstructionSkipped(signature string, ixIndex, innerIndex uint16, reason SkipReason, err error)
	OnSequenceEmitted(signature string, log ChangeLog)
}

// NopObserver 丢弃所有事件
type NopObserver struct{}

func (NopObserver) OnFetchAttempt(string, int)                                     {}
func (NopObserver) OnFetchFailure(string, int, error)                              {}
func (NopObserver) OnInstructionSkipped(string, uint16, uint16, SkipReason, error) {}
func (NopObserver) OnSequenceEmitted(string, ChangeLog)                            {}

// MultiObserver 依次转发给多个 Observer
type MultiObserver []Observer

func (m MultiObserver) OnFetchAttempt(signature string, attempt int) {
	for _, o := range m {
		o.OnFetchAttempt(signature, attempt)
	}
}

func (m MultiObserver) OnFetchFailure(signature string, attempt int, err error) {
	for _, o := range m {
		o.OnFetchFailure(signature, attempt, err)
	}
}

func (m MultiObserver) OnInstructionSkipped(signature string, ixIndex, innerIndex uint16, reason SkipReason, err error) {
	for _, o := range m {
		o.OnInstructionSkipped(signature, ixIndex, innerIndex, reason, err)
	}
}

func (m MultiObserver) OnSequenceEmitted(signature string, log ChangeLog) {
	for _, o := range m {
		o.OnSequenceEmitted(signature, log)
	}
}

// LogObserver 把诊断事件写入全局 logger
type LogObserver struct{}

func (LogObserver) OnFetchAttempt(signature string, attempt int) {
	logger.Debugf("[pipeline] getTransaction attempt=%d tx=%s", attempt, signature)
}

func (LogObserver) OnFetchFailure(signature string, attempt int, err error) {
	logger.Warnf("[pipeline] getTransaction 失败: attempt=%d tx=%s err=%v", attempt, signature, err)
}

func (LogObserver) OnInstructionSkipped(signature string, ixIndex, innerIndex uint16, reason SkipReason, err error) {
	if err != nil {
		logger.Warnf("[pipeline] 跳过指令: reason=%s tx=%s ixIndex=%d innerIndex=%d err=%v",
			reason, signature, ixIndex, innerIndex, err)
		return
	}
	logger.Debugf("[pipeline] 跳过指令: reason=%s tx=%s ixIndex=%d innerIndex=%d",
		reason, signature, ixIndex, innerIndex)
}

func (LogObserver) OnSequenceEmitted(signature string, log ChangeLog) {
	logger.Debugf("[pipeline] changelog tree=%s seq=%d leaf=%d tx=%s", log.Tree, log.Seq, log.LeafIndex, signature)
}
