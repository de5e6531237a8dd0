package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const logFileName = "seqparse.log"

// LogOption 日志初始化参数，由 config.LogConfig 转换而来
type LogOption struct {
	Format   string // 日志格式，"console" 或 "json"
	LogDir   string // 日志目录，为空时只输出到 stderr
	Level    string // debug / info / warn / error
	Compress bool   // 是否压缩轮转后的旧日志
}

var sugared atomic.Pointer[zap.SugaredLogger]

func init() {
	// 未调用 Init 前使用 console + info 级别，保证测试与工具函数可直接打日志
	l := zap.New(zapcore.NewCore(
		newEncoder("console"),
		zapcore.Lock(os.Stderr),
		zapcore.InfoLevel,
	))
	sugared.Store(l.Sugar())
}

// Init 按配置重建全局 logger。可重复调用，后一次覆盖前一次。
func Init(opt LogOption) error {
	level, err := parseLevel(opt.Level)
	if err != nil {
		return err
	}

	var ws zapcore.WriteSyncer = zapcore.Lock(os.Stderr)
	if opt.LogDir != "" {
		if err := os.MkdirAll(opt.LogDir, 0o755); err != nil {
			return fmt.Errorf("create log dir %q: %w", opt.LogDir, err)
		}
		rotator := &lumberjack.Logger{
			Filename:   filepath.Join(opt.LogDir, logFileName),
			MaxSize:    100, // MB
			MaxBackups: 10,
			MaxAge:     7, // 天
			Compress:   opt.Compress,
		}
		ws = zapcore.NewMultiWriteSyncer(ws, zapcore.AddSync(rotator))
	}

	core := zapcore.NewCore(newEncoder(opt.Format), ws, level)
	l := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	sugared.Store(l.Sugar())
	return nil
}

func newEncoder(format string) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	if strings.EqualFold(format, "json") {
		return zapcore.NewJSONEncoder(cfg)
	}
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

func parseLevel(s string) (zapcore.Level, error) {
	if s == "" {
		return zapcore.InfoLevel, nil
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return level, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// L 返回底层 zap.Logger，供需要结构化字段的调用方使用
func L() *zap.Logger {
	return sugared.Load().Desugar()
}

func Debugf(format string, args ...any) {
	sugared.Load().Debugf(format, args...)
}

func Infof(format string, args ...any) {
	sugared.Load().Infof(format, args...)
}

func Warnf(format string, args ...any) {
	sugared.Load().Warnf(format, args...)
}

func Errorf(format string, args ...any) {
	sugared.Load().Errorf(format, args...)
}

// Sync 刷新缓冲区，进程退出前调用
func Sync() {
	_ = sugared.Load().Sync()
}
