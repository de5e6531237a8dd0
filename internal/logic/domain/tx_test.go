package domain_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spl-ac-seq-parse/internal/logic/domain"
	"spl-ac-seq-parse/internal/testutil"
	"spl-ac-seq-parse/internal/types"
)

func sampleResult(t *testing.T) []byte {
	t.Helper()
	static := []types.Pubkey{testutil.Key(1), testutil.Key(2)}
	payload := base58.Encode(testutil.V0TransactionBytes(static, true))
	return []byte(fmt.Sprintf(`{
		"slot": 250000000,
		"blockTime": 1700000000,
		"version": 0,
		"meta": {
			"err": null,
			"logMessages": ["Program log: hi"],
			"innerInstructions": [
				{"index": 0, "instructions": [
					{"programIdIndex": 2, "accounts": [0, 1], "data": "3Bxs4h24hBtQy9rw", "stackHeight": 2},
					{"programId": "11111111111111111111111111111111", "parsed": {"type": "transfer"}, "program": "system"}
				]}
			],
			"loadedAddresses": {"writable": ["%s"], "readonly": ["%s"]}
		},
		"transaction": ["%s", "base58"]
	}`, testutil.Key(3), testutil.Key(4), payload))
}

func TestTransactionRecord_Unmarshal(t *testing.T) {
	var rec domain.TransactionRecord
	require.NoError(t, json.Unmarshal(sampleResult(t), &rec))

	assert.Equal(t, uint64(250000000), rec.Slot)
	require.NotNil(t, rec.BlockTime)
	require.NotNil(t, rec.Meta)
	require.NotNil(t, rec.Meta.LoadedAddresses)
	assert.Equal(t, []string{testutil.Key(3).String()}, rec.Meta.LoadedAddresses.Writable)
	assert.Equal(t, []string{testutil.Key(4).String()}, rec.Meta.LoadedAddresses.Readonly)

	require.NotNil(t, rec.Meta.InnerInstructions)
	groups := *rec.Meta.InnerInstructions
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Instructions, 2)

	ci, ok := groups[0].Instructions[0].Compiled()
	require.True(t, ok)
	assert.Equal(t, uint16(2), ci.ProgramIDIndex)
	assert.Equal(t, []uint16{0, 1}, ci.Accounts)
	assert.Equal(t, "3Bxs4h24hBtQy9rw", ci.Data)

	// parsed 形态不参与解析
	_, ok = groups[0].Instructions[1].Compiled()
	assert.False(t, ok)
}

func TestTransactionRecord_MissingOptionalFields(t *testing.T) {
	var rec domain.TransactionRecord
	data := `{"slot": 1, "meta": {"err": null, "innerInstructions": null}, "transaction": ["", "base58"]}`
	require.NoError(t, json.Unmarshal([]byte(data), &rec))
	require.NotNil(t, rec.Meta)
	assert.Nil(t, rec.Meta.InnerInstructions)
	assert.Nil(t, rec.Meta.LoadedAddresses)

	var noMeta domain.TransactionRecord
	require.NoError(t, json.Unmarshal([]byte(`{"slot": 1, "meta": null, "transaction": ["", "base58"]}`), &noMeta))
	assert.Nil(t, noMeta.Meta)
}

func TestEncodedTransaction_Decode(t *testing.T) {
	var rec domain.TransactionRecord
	require.NoError(t, json.Unmarshal(sampleResult(t), &rec))

	tx, err := rec.Transaction.Decode()
	require.NoError(t, err)
	require.Len(t, tx.Message.Accounts, 2)
	assert.Equal(t, testutil.Key(1), types.Pubkey(tx.Message.Accounts[0]))
	assert.Equal(t, testutil.Key(2), types.Pubkey(tx.Message.Accounts[1]))
}

func TestEncodedTransaction_DecodeErrors(t *testing.T) {
	cases := []struct {
		name string
		tx   domain.EncodedTransaction
	}{
		{name: "bad base58", tx: domain.EncodedTransaction{Payload: "0OIl", Encoding: domain.EncodingBase58}},
		{name: "empty payload", tx: domain.EncodedTransaction{Payload: "", Encoding: domain.EncodingBase64}},
		{name: "truncated", tx: domain.EncodedTransaction{Payload: base58.Encode([]byte{1, 2, 3}), Encoding: domain.EncodingBase58}},
		{name: "unknown encoding", tx: domain.EncodedTransaction{Payload: "abc", Encoding: "binary"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := c.tx.Decode()
			require.Error(t, err)
		})
	}
}

func TestEncodedTransaction_JsonObjectForm(t *testing.T) {
	var tx domain.EncodedTransaction
	require.NoError(t, json.Unmarshal([]byte(`{"signatures": [], "message": {}}`), &tx))

	_, err := tx.Decode()
	assert.ErrorIs(t, err, domain.ErrUnsupportedEncoding)

	// 对象形态原样回写
	out, err := json.Marshal(tx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"signatures": [], "message": {}}`, string(out))
}

func TestTransactionRecord_MarshalRoundTrip(t *testing.T) {
	var rec domain.TransactionRecord
	require.NoError(t, json.Unmarshal(sampleResult(t), &rec))

	out, err := json.Marshal(&rec)
	require.NoError(t, err)

	var again domain.TransactionRecord
	require.NoError(t, json.Unmarshal(out, &again))
	assert.Equal(t, rec.Transaction.Payload, again.Transaction.Payload)
	require.NotNil(t, again.Meta.InnerInstructions)
	groups := *again.Meta.InnerInstructions
	require.Len(t, groups[0].Instructions, 2)
	_, ok := groups[0].Instructions[1].Compiled()
	assert.False(t, ok)
	ci, ok := groups[0].Instructions[0].Compiled()
	require.True(t, ok)
	assert.Equal(t, "3Bxs4h24hBtQy9rw", ci.Data)
}
