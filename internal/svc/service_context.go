package svc

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"spl-ac-seq-parse/internal/cache"
	"spl-ac-seq-parse/internal/config"
	"spl-ac-seq-parse/internal/fetcher"
	"spl-ac-seq-parse/internal/logic/core"
	"spl-ac-seq-parse/internal/logic/pipeline"
	"spl-ac-seq-parse/internal/metrics"
	"spl-ac-seq-parse/pkg/logger"
)

// ServiceContext 持有一次运行所需的全部资源
type ServiceContext struct {
	Config        config.Config
	Extractor     *pipeline.Extractor
	MetricsServer *metrics.Server

	rdb *redis.Client
}

// NewServiceContext 按配置组装 fetcher 链（RPC → 可选缓存）、observer 与 Extractor
func NewServiceContext(c config.Config) (*ServiceContext, error) {
	ctx := &ServiceContext{Config: c}

	// 1. RPC fetcher
	rpcFetcher, err := fetcher.NewRpcFetcher(c.RpcConf.Endpoint, c.RpcConf.Timeout())
	if err != nil {
		return nil, err
	}
	var f pipeline.Fetcher = rpcFetcher

	// 2. 交易记录缓存：配置了 Redis 地址时使用 Redis，否则使用进程内缓存
	if c.RecordCacheConf.Enabled {
		store, err := ctx.newRecordStore(c.RecordCacheConf)
		if err != nil {
			ctx.Close()
			return nil, err
		}
		f = fetcher.NewCachingFetcher(f, store)
	}

	// 3. observer：日志 + 可选 Prometheus
	observers := core.MultiObserver{core.LogObserver{}}
	if c.MetricsConf.Enabled {
		reg := prometheus.NewRegistry()
		po, err := metrics.NewPrometheusObserver(c.MetricsConf.Namespace, reg)
		if err != nil {
			ctx.Close()
			return nil, fmt.Errorf("register metrics: %w", err)
		}
		observers = append(observers, po)
		ctx.MetricsServer = metrics.NewServer(c.MetricsConf.ListenAddr, reg)
	}

	// 4. Extractor
	logProgram, err := c.ExtractorConf.LogProgramKey()
	if err != nil {
		ctx.Close()
		return nil, fmt.Errorf("extractor.log_program: %w", err)
	}
	ctx.Extractor, err = pipeline.NewExtractor(f, pipeline.Options{
		LogProgram: logProgram,
		MaxRetries: c.ExtractorConf.MaxRetries,
		Observer:   observers,
	})
	if err != nil {
		ctx.Close()
		return nil, err
	}

	logger.Infof("服务上下文初始化完成: rpc=%s logProgram=%s cache=%v metrics=%v",
		c.RpcConf.Endpoint, logProgram, c.RecordCacheConf.Enabled, c.MetricsConf.Enabled)
	return ctx, nil
}

func (ctx *ServiceContext) newRecordStore(c config.RecordCacheConfig) (cache.RecordStore, error) {
	if c.Addr == "" {
		return cache.NewMemoryRecordStore(c.Capacity), nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     c.Addr,
		Password: c.Password,
		DB:       c.DB,
	})
	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", c.Addr, err)
	}
	ctx.rdb = rdb
	return cache.NewRedisRecordStore(rdb, c.KeyPrefix, c.TTL()), nil
}

// Close 关闭服务上下文中的资源
func (ctx *ServiceContext) Close() {
	if ctx.MetricsServer != nil {
		ctx.MetricsServer.Stop()
	}
	if ctx.rdb != nil {
		if err := ctx.rdb.Close(); err != nil {
			logger.Warnf("关闭 Redis 连接失败: %v", err)
		}
	}
}
