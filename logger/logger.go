// logger/logger.go

package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Log seviyesini tutan değişken
	LogLevel = zap.NewAtomicLevel()
	// Logger global logger'dır
	Logger *zap.Logger
)

func init() {
	// Zap yapılandırmasını oluştur
	config := zap.NewProductionConfig()

	// Log seviyesini ayarla
	config.Level = LogLevel

	// Çıktıyı stdout'a yönlendir (container ortamı logları stdout'tan toplar)
	config.OutputPaths = []string{"stdout"}

	// Encoder ayarları
	config.EncoderConfig = zapcore.EncoderConfig{
		MessageKey:     "message",
		LevelKey:       "severity",
		TimeKey:        "time",
		NameKey:        "logger",
		CallerKey:      "caller",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder, // INFO, WARN, ERROR vb.
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	// Logger'ı kur
	var err error
	Logger, err = config.Build()
	if err != nil {
		panic(err)
	}

	// Global logger'ı değiştir
	zap.ReplaceGlobals(Logger)
}
