package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log = newLogger(os.Stdout, zapcore.InfoLevel)

func newLogger(w io.Writer, level zapcore.Level) *zap.SugaredLogger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "time"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(w),
		level,
	)
	return zap.New(core).Sugar()
}

// Setup points the logger at stdout plus a dated file under dir, at the given
// level ("debug", "info", "warn", "error").
func Setup(dir, level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		log = newLogger(os.Stdout, lvl)
		return fmt.Errorf("could not create log directory: %w", err)
	}

	fileName := filepath.Join(dir, fmt.Sprintf("app_%s.log", time.Now().Format("02-01-2006")))
	logFile, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log = newLogger(os.Stdout, lvl)
		return fmt.Errorf("could not open log file: %w", err)
	}

	log = newLogger(io.MultiWriter(os.Stdout, logFile), lvl)
	log.Info("🚀 Logger initialized successfully!")
	return nil
}

// SetOutput replaces the sink; used by tests to capture output.
func SetOutput(w io.Writer, level string) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	log = newLogger(w, lvl)
}

func Sync() {
	_ = log.Sync()
}

func Success(message string) {
	log.Info("✅ " + message)
}

func Error(message string, err error) {
	if err != nil {
		log.Error("❌ " + message + ": " + err.Error())
	} else {
		log.Error("❌ " + message)
	}
}

func Warning(message string) {
	log.Warn("⚠️ " + message)
}

func Debug(message string) {
	log.Debug("🐛 " + message)
}

func Info(message string) {
	log.Info("ℹ️ " + message)
}

func Fatal(message string) {
	log.Fatal("💥 " + message)
}

func Printf(format string, args ...interface{}) {
	log.Info(fmt.Sprintf("📝 "+format, args...))
}

// Infow logs with structured key/value pairs.
func Infow(message string, keysAndValues ...interface{}) {
	log.Infow("ℹ️ "+message, keysAndValues...)
}
