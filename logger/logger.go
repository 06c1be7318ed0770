package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls where the application log goes and how it rotates.
type Options struct {
	Path       string
	Level      string
	MaxSizeMB  int
	MaxBackups int
}

var (
	sugar   *zap.SugaredLogger
	base    *zap.Logger
	fileOut *lumberjack.Logger

	logLevel    string
	initialized bool
)

func parseLevel(level string) (zapcore.Level, string) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return zapcore.DebugLevel, "DEBUG"
	case "WARN", "WARNING":
		return zapcore.WarnLevel, "WARN"
	case "ERROR":
		return zapcore.ErrorLevel, "ERROR"
	}
	return zapcore.InfoLevel, "INFO"
}

// InitGlobalLoggers sets up the app log file (rotated by lumberjack) plus an stderr sink for errors.
// It can be called again to pick up new settings; the previous file is closed first.
func InitGlobalLoggers(opts Options) error {
	if initialized {
		CloseLogFiles()
	}
	level, name := parseLevel(opts.Level)
	logLevel = name

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoder := zapcore.NewConsoleEncoder(encCfg)

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), zap.LevelEnablerFunc(func(l zapcore.Level) bool {
			return l >= zapcore.ErrorLevel
		})),
	}

	actualPath := opts.Path
	if opts.Path != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0750); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create log directory %s: %v. App logs will be discarded.\n", filepath.Dir(opts.Path), err)
			actualPath = "(discarded)"
		} else {
			fileOut = &lumberjack.Logger{
				Filename:   opts.Path,
				MaxSize:    opts.MaxSizeMB,
				MaxBackups: opts.MaxBackups,
			}
			cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(fileOut), level))
		}
	} else {
		actualPath = "(discarded)"
	}

	base = zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
	sugar = base.Sugar()
	if !initialized {
		sugar.Infof("App logger initialized. Log level: %s. Output file: %s", logLevel, actualPath)
	}
	initialized = true
	return nil
}

// Level is the active level name.
func Level() string { return logLevel }

// Zap exposes the underlying logger for components that want structured fields.
// It is a no-op logger before InitGlobalLoggers.
func Zap() *zap.Logger {
	if base == nil {
		return zap.NewNop()
	}
	return base
}

func Info(format string, v ...interface{}) {
	if sugar != nil {
		sugar.Infof(format, v...)
	}
}

func Debug(format string, v ...interface{}) {
	if sugar != nil {
		sugar.Debugf(format, v...)
	}
}

func Warn(format string, v ...interface{}) {
	if sugar != nil {
		sugar.Warnf(format, v...)
	}
}

func Error(format string, v ...interface{}) {
	if sugar != nil {
		sugar.Errorf(format, v...)
		return
	}
	fmt.Fprintf(os.Stderr, "ERROR: "+format+"\n", v...)
}

func Fatal(format string, v ...interface{}) {
	if sugar != nil {
		sugar.Fatalf(format, v...)
	}
	fmt.Fprintf(os.Stderr, "FATAL: "+format+"\n", v...)
	os.Exit(1)
}

func CloseLogFiles() {
	if sugar != nil {
		_ = sugar.Sync()
	}
	if fileOut != nil {
		fileOut.Close()
		fileOut = nil // Prevent double close
	}
	sugar = nil
	base = nil
	initialized = false // Allow re-initialization if needed (e.g. tests)
}
