package txadapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spl-ac-seq-parse/internal/logic/core"
	"spl-ac-seq-parse/internal/logic/domain"
	"spl-ac-seq-parse/internal/testutil"
	"spl-ac-seq-parse/internal/types"
)

var testSig = testutil.Signature(9)

// 静态账户 ++ writable ++ readonly，各组内部保持原顺序
func TestAdaptRpcTx_AccountOrdering(t *testing.T) {
	static := []types.Pubkey{testutil.Key(1), testutil.Key(2), testutil.Key(3)}
	writable := []types.Pubkey{testutil.Key(20), testutil.Key(21)}
	readonly := []types.Pubkey{testutil.Key(30), testutil.Key(31), testutil.Key(32)}

	rec := testutil.Record(static, testutil.Loaded(writable, readonly), nil)
	tx, err := AdaptRpcTx(testSig, rec)
	require.NoError(t, err)

	want := []types.Pubkey{
		testutil.Key(1), testutil.Key(2), testutil.Key(3),
		testutil.Key(20), testutil.Key(21),
		testutil.Key(30), testutil.Key(31), testutil.Key(32),
	}
	assert.Equal(t, want, tx.AccountKeys)
	assert.Equal(t, testSig, tx.Signature)
	assert.Same(t, rec.Meta, tx.Meta)
}

func TestAdaptRpcTx_NoLoadedAddresses(t *testing.T) {
	static := []types.Pubkey{testutil.Key(1), testutil.Key(2)}
	tx, err := AdaptRpcTx(testSig, testutil.Record(static, nil, nil))
	require.NoError(t, err)
	assert.Equal(t, static, tx.AccountKeys)
}

func TestAdaptRpcTx_EmptyLoadedAddresses(t *testing.T) {
	static := []types.Pubkey{testutil.Key(1)}
	tx, err := AdaptRpcTx(testSig, testutil.Record(static, testutil.Loaded(nil, nil), nil))
	require.NoError(t, err)
	assert.Equal(t, static, tx.AccountKeys)
}

func TestAdaptRpcTx_MalformedLoadedAddress(t *testing.T) {
	static := []types.Pubkey{testutil.Key(1)}
	loaded := testutil.Loaded([]types.Pubkey{testutil.Key(2)}, nil)
	loaded.Readonly = append(loaded.Readonly, "not-base58!")

	_, err := AdaptRpcTx(testSig, testutil.Record(static, loaded, nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrAddress)
	assert.Contains(t, err.Error(), "readonly at index 0")
}

func TestAdaptRpcTx_MissingMeta(t *testing.T) {
	rec := testutil.Record([]types.Pubkey{testutil.Key(1)}, nil, nil)
	rec.Meta = nil

	_, err := AdaptRpcTx(testSig, rec)
	assert.ErrorIs(t, err, core.ErrMeta)

	_, err = AdaptRpcTx(testSig, nil)
	assert.ErrorIs(t, err, core.ErrMeta)
}

func TestAdaptRpcTx_UndecodableTransaction(t *testing.T) {
	rec := testutil.Record([]types.Pubkey{testutil.Key(1)}, nil, nil)
	rec.Transaction = domain.EncodedTransaction{Payload: "0OIl", Encoding: domain.EncodingBase58}

	_, err := AdaptRpcTx(testSig, rec)
	assert.ErrorIs(t, err, core.ErrDecoding)
}
