package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/zeromicro/go-zero/core/logx"

	"spl-ac-seq-parse/internal/config"
	"spl-ac-seq-parse/internal/svc"
	"spl-ac-seq-parse/pkg/logger"
)

var (
	configFile = flag.String("f", "etc/seqparse.yaml", "the config file, empty to use defaults")
	sigList    = flag.String("sig", "", "comma separated transaction signatures")
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			logx.Errorf("panic: %+v\nstack: %s", r, debug.Stack())
			os.Exit(2)
		}
	}()

	flag.Parse()

	c := config.Default()
	if *configFile != "" {
		c = config.MustLoad(*configFile)
	}
	if err := logger.Init(c.LogConf.ToLogOption()); err != nil {
		panic(err)
	}
	defer logger.Sync()

	signatures := collectSignatures(*sigList, flag.Args())
	if len(signatures) == 0 {
		fmt.Fprintln(os.Stderr, "usage: seqparse [-f config.yaml] [-sig s1,s2] <signature>...")
		os.Exit(2)
	}

	serviceContext, err := svc.NewServiceContext(c)
	if err != nil {
		panic(err)
	}
	defer serviceContext.Close()
	if serviceContext.MetricsServer != nil {
		serviceContext.MetricsServer.Start()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	failed := run(ctx, serviceContext.Extractor, signatures, c.Concurrency, os.Stdout)
	if failed > 0 {
		logger.Errorf("%d/%d 笔交易提取失败", failed, len(signatures))
		logger.Sync()
		serviceContext.Close()
		os.Exit(1)
	}
}

func collectSignatures(list string, args []string) []string {
	var out []string
	for _, s := range strings.Split(list, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	for _, s := range args {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
