package eventparser

import (
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spl-ac-seq-parse/internal/logic/core"
	"spl-ac-seq-parse/internal/logic/domain"
	"spl-ac-seq-parse/internal/testutil"
	"spl-ac-seq-parse/internal/types"
)

var (
	treeA  = testutil.Key(0x21)
	treeB  = testutil.Key(0x22)
	other  = testutil.Key(0x0A)
	logKey = testutil.Key(0x0C)
)

func newTx(groups []domain.InnerInstructionGroup) *core.AdaptedTx {
	meta := &domain.Meta{}
	if groups != nil {
		meta.InnerInstructions = &groups
	}
	return &core.AdaptedTx{
		Signature:   testutil.Signature(3),
		AccountKeys: []types.Pubkey{other, treeA, logKey},
		Meta:        meta,
	}
}

func TestExtractChangeLogs_Empty(t *testing.T) {
	obs := &testutil.RecordingObserver{}
	logs, err := ExtractChangeLogs(newTx(nil), logKey, obs)
	require.NoError(t, err)
	assert.NotNil(t, logs)
	assert.Empty(t, logs)
}

// 扫描顺序即输出顺序：跨组、组内均保持存储顺序
func TestExtractChangeLogs_PreservesScanOrder(t *testing.T) {
	groups := []domain.InnerInstructionGroup{
		{Index: 0, Instructions: []domain.UiInstruction{
			testutil.CompiledIx(2, testutil.ChangeLogV1Data(treeA, 9)),
			testutil.CompiledIx(2, testutil.ChangeLogV1Data(treeB, 3)),
		}},
		{Index: 2, Instructions: []domain.UiInstruction{
			testutil.CompiledIx(0, "ignored"),
			testutil.CompiledIx(2, testutil.ChangeLogV1Data(treeA, 10)),
		}},
	}
	obs := &testutil.RecordingObserver{}
	logs, err := ExtractChangeLogs(newTx(groups), logKey, obs)
	require.NoError(t, err)

	assert.Equal(t, []uint64{9, 3, 10}, core.SequenceNumbers(logs))
	assert.Equal(t, []uint64{9, 3, 10}, obs.Emitted)

	assert.Equal(t, treeB, logs[1].Tree)
	assert.Equal(t, uint16(0), logs[1].IxIndex)
	assert.Equal(t, uint16(2), logs[1].InnerIndex)
	assert.Equal(t, uint16(2), logs[2].IxIndex)
	assert.Equal(t, uint16(2), logs[2].InnerIndex)
}

// 坏指令只影响自身
func TestExtractChangeLogs_IsolatesBadInstructions(t *testing.T) {
	appData := base58.Encode([]byte{1, 0, 0, 0, 0, 0})
	groups := []domain.InnerInstructionGroup{
		{Index: 1, Instructions: []domain.UiInstruction{
			testutil.CompiledIx(2, "0OIl"),
			testutil.CompiledIx(2, testutil.ChangeLogV1Data(treeA, 5)),
			testutil.CompiledIx(2, base58.Encode([]byte{0, 0, 7})),
			testutil.CompiledIx(2, appData),
			testutil.CompiledIx(9, testutil.ChangeLogV1Data(treeA, 99)),
			testutil.CompiledIx(2, testutil.ChangeLogV1Data(treeA, 6)),
		}},
	}
	obs := &testutil.RecordingObserver{}
	logs, err := ExtractChangeLogs(newTx(groups), logKey, obs)
	require.NoError(t, err)
	assert.Equal(t, []uint64{5, 6}, core.SequenceNumbers(logs))

	assert.Equal(t, []testutil.Skip{
		{IxIndex: 1, InnerIndex: 1, Reason: core.SkipInvalidBase58},
		{IxIndex: 1, InnerIndex: 3, Reason: core.SkipMalformedEvent},
		{IxIndex: 1, InnerIndex: 4, Reason: core.SkipUnsupportedEvent},
		{IxIndex: 1, InnerIndex: 5, Reason: core.SkipProgramIndexOutOfRange},
	}, obs.Skips)
}

// 不是 log program 的指令即使 data 是合法事件也不产出
func TestExtractChangeLogs_FiltersByProgram(t *testing.T) {
	data := testutil.ChangeLogV1Data(treeA, 77)
	groups := []domain.InnerInstructionGroup{
		{Index: 0, Instructions: []domain.UiInstruction{
			testutil.CompiledIx(0, data),
			testutil.CompiledIx(1, data),
		}},
	}
	obs := &testutil.RecordingObserver{}
	logs, err := ExtractChangeLogs(newTx(groups), logKey, obs)
	require.NoError(t, err)
	assert.Empty(t, logs)
	assert.Empty(t, obs.Skips)

	// 换一个 log program 后同样的数据可被解出
	logs, err = ExtractChangeLogs(newTx(groups), other, obs)
	require.NoError(t, err)
	assert.Equal(t, []uint64{77}, core.SequenceNumbers(logs))
}
