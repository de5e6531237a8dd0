package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"spl-ac-seq-parse/internal/consts"
	"spl-ac-seq-parse/internal/types"
	"spl-ac-seq-parse/pkg/logger"
)

type LogConfig struct {
	Format   string `yaml:"format"`   // 日志格式，支持 "console" 或 "json"
	LogDir   string `yaml:"log_dir"`  // 日志目录（可为相对路径或绝对路径），为空时只输出到 stderr
	Level    string `yaml:"level"`    // 日志级别：debug / info / warn / error
	Compress bool   `yaml:"compress"` // 是否压缩旧日志文件
}

func (c *LogConfig) ToLogOption() logger.LogOption {
	return logger.LogOption{
		Format:   c.Format,
		LogDir:   c.LogDir,
		Level:    c.Level,
		Compress: c.Compress,
	}
}

// RpcConfig Solana JSON-RPC 节点配置
type RpcConfig struct {
	Endpoint  string `yaml:"endpoint"`   // 例如 https://api.mainnet-beta.solana.com
	TimeoutMs int    `yaml:"timeout_ms"` // 单次 getTransaction 超时（毫秒），0 表示不限制
}

func (c *RpcConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// ExtractorConfig 序号提取配置
type ExtractorConfig struct {
	LogProgram string `yaml:"log_program"` // 写入 ChangeLog 的 log 程序，默认 spl-noop
	MaxRetries *int   `yaml:"max_retries"` // 首次请求之外的重试次数，未配置时为 3
}

// LogProgramKey 解析 LogProgram，空值返回 spl-noop
func (c *ExtractorConfig) LogProgramKey() (types.Pubkey, error) {
	if c.LogProgram == "" {
		return consts.NoopProgram, nil
	}
	return types.TryPubkeyFromBase58(c.LogProgram)
}

// RecordCacheConfig 交易记录缓存
type RecordCacheConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Addr      string `yaml:"addr"`       // Redis 地址，为空时使用进程内缓存
	Password  string `yaml:"password"`   // Redis 密码
	DB        int    `yaml:"db"`         // Redis DB
	TTLSec    int    `yaml:"ttl_sec"`    // 缓存过期时间（秒）
	KeyPrefix string `yaml:"key_prefix"` // Redis key 前缀
	Capacity  int    `yaml:"capacity"`   // 进程内缓存的最大条数
}

func (c *RecordCacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSec) * time.Second
}

// MetricsConfig Prometheus 指标
type MetricsConfig struct {
	Enabled    bool   `yaml:"enabled"`
	ListenAddr string `yaml:"listen_addr"` // 例如 ":9100"
	Namespace  string `yaml:"namespace"`   // 指标名前缀
}

// Config 主配置
type Config struct {
	LogConf         LogConfig         `yaml:"logger"`       // 日志配置
	RpcConf         RpcConfig         `yaml:"rpc"`          // RPC 节点配置
	ExtractorConf   ExtractorConfig   `yaml:"extractor"`    // 提取逻辑配置
	RecordCacheConf RecordCacheConfig `yaml:"record_cache"` // 交易缓存配置
	MetricsConf     MetricsConfig     `yaml:"metrics"`      // 指标配置

	Concurrency int `yaml:"concurrency"` // 同时处理的签名数，0 表示 CPU 核数
}

// Default 返回不读取文件时使用的默认配置
func Default() Config {
	c := Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.LogConf.Format == "" {
		c.LogConf.Format = "console"
	}
	if c.LogConf.Level == "" {
		c.LogConf.Level = "info"
	}
	if c.RpcConf.Endpoint == "" {
		c.RpcConf.Endpoint = "https://api.mainnet-beta.solana.com"
	}
	if c.ExtractorConf.MaxRetries == nil {
		n := consts.DefaultMaxRetries
		c.ExtractorConf.MaxRetries = &n
	}
	if c.MetricsConf.Namespace == "" {
		c.MetricsConf.Namespace = "seqparse"
	}
	if c.Concurrency <= 0 {
		c.Concurrency = consts.CpuCount
	}
}

// Validate 检查配置的取值范围
func (c *Config) Validate() error {
	var errs []error
	if c.RpcConf.TimeoutMs < 0 {
		errs = append(errs, fmt.Errorf("rpc.timeout_ms must be >= 0, got %d", c.RpcConf.TimeoutMs))
	}
	if c.ExtractorConf.MaxRetries != nil && *c.ExtractorConf.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("extractor.max_retries must be >= 0, got %d", *c.ExtractorConf.MaxRetries))
	}
	if _, err := c.ExtractorConf.LogProgramKey(); err != nil {
		errs = append(errs, fmt.Errorf("extractor.log_program: %w", err))
	}
	if c.MetricsConf.Enabled && c.MetricsConf.ListenAddr == "" {
		errs = append(errs, errors.New("metrics.listen_addr is required when metrics is enabled"))
	}
	if c.RecordCacheConf.TTLSec < 0 {
		errs = append(errs, fmt.Errorf("record_cache.ttl_sec must be >= 0, got %d", c.RecordCacheConf.TTLSec))
	}
	return errors.Join(errs...)
}

// Load 读取 yaml 配置文件，补齐默认值并校验
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return c, nil
}

// MustLoad 同 Load，失败时 panic
func MustLoad(path string) Config {
	c, err := Load(path)
	if err != nil {
		panic(err)
	}
	return c
}
