// Package log is a thin structured-logging facade over zap. Every line
// carries the application name and, when present, the correlation id stored
// in the context.
package log

import (
	"context"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Field = zap.Field

func String(key, value string) Field          { return zap.String(key, value) }
func Int(key string, value int) Field         { return zap.Int(key, value) }
func Int64(key string, value int64) Field     { return zap.Int64(key, value) }
func Bool(key string, value bool) Field       { return zap.Bool(key, value) }
func Any(key string, value interface{}) Field { return zap.Any(key, value) }
func Err(err error) Field                     { return zap.Error(err) }

var global = zap.NewNop()

type options struct {
	env    string
	level  zapcore.Level
	caller bool
}

type Option func(*options)

func WithEnv(env string) Option {
	return func(o *options) { o.env = env }
}

func WithLevel(level string) Option {
	return func(o *options) {
		if l, err := zapcore.ParseLevel(level); err == nil {
			o.level = l
		}
	}
}

func WithCaller(enabled bool) Option {
	return func(o *options) { o.caller = enabled }
}

// Init builds the process-wide logger. Local environments get a console
// encoder, everything else logs JSON.
func Init(appName string, opts ...Option) {
	o := options{level: zapcore.InfoLevel}
	for _, opt := range opts {
		opt(&o)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	if o.env == "" || o.env == "local" {
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.Lock(os.Stdout), o.level)

	zapOpts := []zap.Option{zap.Fields(zap.String("app", appName))}
	if o.caller {
		zapOpts = append(zapOpts, zap.AddCaller(), zap.AddCallerSkip(1))
	}

	global = zap.New(core, zapOpts...)
}

// InitForTest swaps the global logger for a no-op one.
func InitForTest() {
	global = zap.NewNop()
}

func Sync() {
	_ = global.Sync()
}

func Debug(ctx context.Context, msg string, fields ...Field) {
	global.Debug(msg, withCtx(ctx, fields)...)
}

func Info(ctx context.Context, msg string, fields ...Field) {
	global.Info(msg, withCtx(ctx, fields)...)
}

func Warn(ctx context.Context, msg string, fields ...Field) {
	global.Warn(msg, withCtx(ctx, fields)...)
}

func Error(ctx context.Context, msg string, fields ...Field) {
	global.Error(msg, withCtx(ctx, fields)...)
}

func withCtx(ctx context.Context, fields []Field) []Field {
	if id := GetCorrelationID(ctx); id != "" {
		fields = append(fields, zap.String("correlationId", id))
	}
	return fields
}
