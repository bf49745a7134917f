package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type ILogger interface {
	Debug(module, message string, details map[string]interface{})
	Info(module, message string, details map[string]interface{})
	Warn(module, message string, details map[string]interface{})
	Error(module, message string, details map[string]interface{})
	Sync() error
}

type ZapLogger struct {
	logger   *zap.Logger
	filePath string
}

func NewZapLogger(logFilePath string, isProd bool) *ZapLogger {
	// 1. Configure Rotation (Lumberjack)
	rotator := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    10,   // Megabytes
		MaxBackups: 5,    // Files
		MaxAge:     30,   // Days
		Compress:   true, // gzip
	}

	// 2. Configure Encoder (JSON)
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.MessageKey = "message"
	encoderConfig.LevelKey = "level"
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	jsonEncoder := zapcore.NewJSONEncoder(encoderConfig)

	// 3. Configure Output Cores
	fileCore := zapcore.NewCore(
		jsonEncoder,
		zapcore.AddSync(rotator),
		zap.InfoLevel,
	)

	var consoleEncoder zapcore.Encoder
	if isProd {
		consoleEncoder = jsonEncoder
	} else {
		consoleEncoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}

	consoleCore := zapcore.NewCore(
		consoleEncoder,
		zapcore.Lock(os.Stdout),
		zap.DebugLevel,
	)

	core := zapcore.NewTee(fileCore, consoleCore)

	l := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)) // Skip 1 to point to caller of wrapper

	return &ZapLogger{
		logger:   l,
		filePath: logFilePath,
	}
}

// NewIsolatedLogger creates a logger that ONLY writes to the file, not console.
// Used for chatty domain logs (e.g. WebSocket delivery) to keep main logs clean.
func NewIsolatedLogger(logFilePath string) *ZapLogger {
	rotator := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    10,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.MessageKey = "message"
	encoderConfig.LevelKey = "level"
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(rotator),
		zap.InfoLevel,
	)

	l := zap.New(fileCore, zap.AddCaller(), zap.AddCallerSkip(1))

	return &ZapLogger{
		logger:   l,
		filePath: logFilePath,
	}
}

func (l *ZapLogger) Debug(module, message string, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	l.logger.Debug(message, zap.String("module", module), zap.Any("details", details))
}

func (l *ZapLogger) Info(module, message string, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	l.logger.Info(message, zap.String("module", module), zap.Any("details", details))
}

func (l *ZapLogger) Warn(module, message string, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	l.logger.Warn(message, zap.String("module", module), zap.Any("details", details))
}

func (l *ZapLogger) Error(module, message string, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	if err, ok := details["error"]; ok {
		l.logger.Error(message, zap.String("module", module), zap.Any("details", details), zap.Any("error_ref", err))
	} else {
		l.logger.Error(message, zap.String("module", module), zap.Any("details", details))
	}
}

func (l *ZapLogger) Sync() error {
	return l.logger.Sync()
}
