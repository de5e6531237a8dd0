package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type mapExtractor map[string][]uint64

func (m mapExtractor) ExtractSequenceNumbers(_ context.Context, signature string) ([]uint64, error) {
	seqs, ok := m[signature]
	if !ok {
		return nil, errors.New("not found")
	}
	return seqs, nil
}

func TestRun_PrintsInInputOrder(t *testing.T) {
	ex := mapExtractor{
		"sigA": {3, 1},
		"sigB": {},
		"sigC": {42},
	}
	var out bytes.Buffer
	failed := run(context.Background(), ex, []string{"sigC", "sigA", "missing", "sigB"}, 3, &out)

	assert.Equal(t, 1, failed)
	assert.Equal(t, "42 sigC\n3 sigA\n1 sigA\n", out.String())
}

func TestRun_ZeroWorkers(t *testing.T) {
	var out bytes.Buffer
	failed := run(context.Background(), mapExtractor{"s": {7}}, []string{"s"}, 0, &out)
	assert.Equal(t, 0, failed)
	assert.Equal(t, "7 s\n", out.String())
}

func TestCollectSignatures(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, collectSignatures(" a, ,b", []string{"c", " "}))
	assert.Empty(t, collectSignatures("", nil))
}
