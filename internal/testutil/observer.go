package testutil

import (
	"sync"

	"spl-ac-seq-parse/internal/logic/core"
)

// Skip 记录一次 OnInstructionSkipped 调用
type Skip struct {
	IxIndex    uint16
	InnerIndex uint16
	Reason     core.SkipReason
}

// RecordingObserver 记录所有诊断事件，供断言使用
type RecordingObserver struct {
	mu       sync.Mutex
	Attempts int
	Failures int
	Skips    []Skip
	Emitted  []uint64
}

func (r *RecordingObserver) OnFetchAttempt(string, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Attempts++
}

func (r *RecordingObserver) OnFetchFailure(string, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Failures++
}

func (r *RecordingObserver) OnInstructionSkipped(_ string, ixIndex, innerIndex uint16, reason core.SkipReason, _ error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Skips = append(r.Skips, Skip{IxIndex: ixIndex, InnerIndex: innerIndex, Reason: reason})
}

func (r *RecordingObserver) OnSequenceEmitted(_ string, log core.ChangeLog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Emitted = append(r.Emitted, log.Seq)
}
