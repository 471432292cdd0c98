package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultLogDirName    = "logs"
	defaultLogFilename   = "app.log"
	defaultLogMaxSizeMB  = 100
	defaultLogMaxBackups = 7
	defaultLogMaxAgeDays = 30
)

// Options 日志输出配置
type Options struct {
	Level      string
	Console    bool
	Dir        string
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// L 全局结构化日志实例
var L *zap.Logger

var (
	fallbackOnce sync.Once
	fallbackLog  *zap.Logger
)

// Init 初始化全局日志并替换 zap 全局实例
func Init(mode string, options Options) *zap.Logger {
	L = New(mode, options)
	zap.ReplaceGlobals(L)
	return L
}

// New 创建日志实例
// debug 模式只输出彩色控制台；其余模式写 JSON 滚动文件，Console 为 true 时同时输出到 stdout
func New(mode string, options Options) *zap.Logger {
	debug := isDebugMode(mode)
	level := resolveLevel(debug, options.Level)

	if debug {
		cfg := encoderConfig()
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return newZap(zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.Lock(os.Stdout), level))
	}

	encoder := zapcore.NewJSONEncoder(encoderConfig())
	file, err := openRotatingFile(options)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v, writing to stdout\n", err)
		return newZap(zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level))
	}
	sinks := []zapcore.WriteSyncer{zapcore.AddSync(file)}
	if options.Console {
		sinks = append(sinks, zapcore.Lock(os.Stdout))
	}
	return newZap(zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(sinks...), level))
}

func isDebugMode(mode string) bool {
	return strings.EqualFold(strings.TrimSpace(mode), "debug")
}

// resolveLevel 显式配置优先，无法解析时按模式取默认级别
func resolveLevel(debug bool, raw string) zap.AtomicLevel {
	if raw = strings.TrimSpace(raw); raw != "" {
		if lvl, err := zap.ParseAtomicLevel(strings.ToLower(raw)); err == nil {
			return lvl
		}
	}
	if debug {
		return zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zap.NewAtomicLevelAt(zapcore.InfoLevel)
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.MessageKey = "message"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeDuration = zapcore.MillisDurationEncoder
	cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	cfg.EncodeCaller = zapcore.ShortCallerEncoder
	return cfg
}

func newZap(core zapcore.Core) *zap.Logger {
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel))
}

// Z 返回全局实例，未初始化时返回输出到 stdout 的兜底实例
func Z() *zap.Logger {
	if L != nil {
		return L
	}
	fallbackOnce.Do(func() {
		fallbackLog = newZap(zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig()),
			zapcore.Lock(os.Stdout),
			zap.NewAtomicLevelAt(zapcore.InfoLevel),
		))
	})
	return fallbackLog
}

// S 返回 SugaredLogger
func S() *zap.SugaredLogger {
	return Z().Sugar()
}

// SW 返回带固定字段的 SugaredLogger
func SW(kv ...interface{}) *zap.SugaredLogger {
	return S().With(kv...)
}

// StdLogger 供只接受标准库 *log.Logger 的组件使用（如 http.Server.ErrorLog）
func StdLogger() *log.Logger {
	return zap.NewStdLog(Z())
}

func Debugw(message string, kv ...interface{}) { S().Debugw(message, kv...) }

func Infow(message string, kv ...interface{}) { S().Infow(message, kv...) }

func Warnw(message string, kv ...interface{}) { S().Warnw(message, kv...) }

func Errorw(message string, kv ...interface{}) { S().Errorw(message, kv...) }

func openRotatingFile(options Options) (io.Writer, error) {
	path, err := resolveLogFilePath(options)
	if err != nil {
		return nil, err
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    orDefault(options.MaxSizeMB, defaultLogMaxSizeMB),
		MaxBackups: orDefault(options.MaxBackups, defaultLogMaxBackups),
		MaxAge:     orDefault(options.MaxAgeDays, defaultLogMaxAgeDays),
		Compress:   options.Compress,
	}, nil
}

// resolveLogFilePath 目录为空时使用工作目录下的 logs/，并确认文件可写
func resolveLogFilePath(options Options) (string, error) {
	dir := strings.TrimSpace(options.Dir)
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve workdir: %w", err)
		}
		dir = filepath.Join(wd, defaultLogDirName)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create log dir: %w", err)
	}

	name := strings.TrimSpace(options.Filename)
	if name == "" {
		name = defaultLogFilename
	}
	path := filepath.Join(dir, name)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("open log file: %w", err)
	}
	return path, f.Close()
}

func orDefault(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
