package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level string

type Format string

const (
	DebugLevel      Level = "DEBUG"
	InfoLevel       Level = "INFO"
	WarnLevel       Level = "WARN"
	ErrorLevel      Level = "ERROR"
	// ProductionLevel is an alias for WarnLevel.
	ProductionLevel Level = "PRODUCTION"

	FormatConsole Format = "CONSOLE"
	FormatJSON    Format = "JSON"
)

// Component names passed to Named.
const (
	ComponentCLI     = "cli"
	ComponentTUI     = "tui"
	ComponentStore   = "store"
	ComponentInspect = "inspect"
)

func zapLevel(l Level) zapcore.Level {
	switch Level(strings.ToUpper(string(l))) {
	case DebugLevel:
		return zapcore.DebugLevel
	case InfoLevel:
		return zapcore.InfoLevel
	case WarnLevel, ProductionLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func timeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("2006-01-02 15:04:05 MST"))
}

func encoderConfig(f Format) zapcore.EncoderConfig {
	cfg := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "component",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
	}
	if f == FormatConsole {
		cfg.EncodeTime = timeEncoder
		cfg.ConsoleSeparator = " | "
	}
	return cfg
}

// New builds a logger writing to w in the given format. When ring is not nil
// every entry is also kept there, console-encoded, for in-app display.
func New(level string, format Format, w io.Writer, ring *Ring) *zap.Logger {
	format = Format(strings.ToUpper(string(format)))
	lvl := zap.NewAtomicLevelAt(zapLevel(Level(level)))

	var enc zapcore.Encoder
	if format == FormatConsole {
		enc = zapcore.NewConsoleEncoder(encoderConfig(format))
	} else {
		enc = zapcore.NewJSONEncoder(encoderConfig(FormatJSON))
	}
	if w == nil {
		w = os.Stderr
	}
	cores := []zapcore.Core{zapcore.NewCore(enc, zapcore.AddSync(w), lvl)}
	if ring != nil {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig(FormatConsole)), ring, lvl))
	}
	return zap.New(zapcore.NewTee(cores...), zap.AddCaller())
}

// Nop is a logger that discards everything.
func Nop() *zap.Logger { return zap.NewNop() }
