package main

import (
	"context"
	"fmt"
	"io"

	"github.com/zeromicro/go-zero/core/mr"

	"spl-ac-seq-parse/pkg/logger"
)

type seqExtractor interface {
	ExtractSequenceNumbers(ctx context.Context, signature string) ([]uint64, error)
}

type result struct {
	seqs []uint64
	err  error
}

// run 并发提取，按输入顺序逐行输出 "<seq> <signature>"，返回失败的签名数
func run(ctx context.Context, extractor seqExtractor, signatures []string, workers int, out io.Writer) int {
	results := make([]result, len(signatures))

	mr.ForEach(func(source chan<- int) {
		for i := range signatures {
			source <- i
		}
	}, func(i int) {
		seqs, err := extractor.ExtractSequenceNumbers(ctx, signatures[i])
		results[i] = result{seqs: seqs, err: err}
	}, mr.WithWorkers(max(workers, 1)))

	failed := 0
	for i, sig := range signatures {
		r := results[i]
		if r.err != nil {
			failed++
			logger.Errorf("[seqparse] 无法提取交易 %s: %v", sig, r.err)
			continue
		}
		for _, seq := range r.seqs {
			fmt.Fprintf(out, "%d %s\n", seq, sig)
		}
	}
	return failed
}
