package svc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spl-ac-seq-parse/internal/config"
	"spl-ac-seq-parse/internal/consts"
	"spl-ac-seq-parse/internal/logic/core"
)

func TestNewServiceContext_Defaults(t *testing.T) {
	c := config.Default()
	ctx, err := NewServiceContext(c)
	require.NoError(t, err)
	defer ctx.Close()

	assert.Equal(t, consts.NoopProgram, ctx.Extractor.LogProgram())
	assert.Nil(t, ctx.MetricsServer)
}

func TestNewServiceContext_MemoryCacheAndMetrics(t *testing.T) {
	c := config.Default()
	c.RecordCacheConf.Enabled = true
	c.MetricsConf.Enabled = true
	c.MetricsConf.ListenAddr = "127.0.0.1:0"

	ctx, err := NewServiceContext(c)
	require.NoError(t, err)
	defer ctx.Close()
	require.NotNil(t, ctx.MetricsServer)

	// 非法签名在请求前即被拒绝
	_, err = ctx.Extractor.ExtractSequenceNumbers(context.Background(), "bad")
	assert.ErrorIs(t, err, core.ErrInvalidSignature)
}

func TestNewServiceContext_RedisUnavailable(t *testing.T) {
	c := config.Default()
	c.RecordCacheConf.Enabled = true
	c.RecordCacheConf.Addr = "127.0.0.1:1"

	_, err := NewServiceContext(c)
	assert.Error(t, err)
}
