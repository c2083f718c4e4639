package logger

import (
	"os"
	"path/filepath"
	"time"

	"github.com/commentree/apiserver/config"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	logFileName     = "commentree"
	logRotationTime = time.Hour
	logMaxAge       = 7 * 24 * time.Hour
)

func levelFromString(l string) zapcore.Level {
	switch l {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// New builds the process logger. Development mode uses zap's console
// config; otherwise JSON lines go to stdout and, when cfg.Dir is set, to an
// hourly rotated file as well.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	lvl := levelFromString(cfg.Level)
	if cfg.Dev {
		c := zap.NewDevelopmentConfig()
		c.Level = zap.NewAtomicLevelAt(lvl)
		return c.Build()
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	cores := []zapcore.Core{zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), lvl)}
	if cfg.Dir != "" {
		writer, err := newRotatingWriter(cfg.Dir)
		if err != nil {
			return nil, err
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(writer), lvl))
	}

	opts := []zap.Option{zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)}
	return zap.New(zapcore.NewTee(cores...), opts...), nil
}

func newRotatingWriter(dir string) (*rotatelogs.RotateLogs, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return rotatelogs.New(
		filepath.Join(dir, logFileName+".%Y%m%d%H.log"),
		rotatelogs.WithLinkName(filepath.Join(dir, logFileName+".log")),
		rotatelogs.WithRotationTime(logRotationTime),
		rotatelogs.WithMaxAge(logMaxAge),
	)
}
