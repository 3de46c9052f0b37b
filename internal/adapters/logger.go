package adapters

import "go.uber.org/zap"

// Logger is the structured logging sink every package in this module calls
// through rather than a concrete library. It is never allowed to panic and
// its absence never changes behavior — only observability.
type Logger interface {
	Log(msg, category string, meta map[string]any)
}

// NopLogger discards everything. Used as the fallback wherever a caller
// passes a nil Logger.
type NopLogger struct{}

func (NopLogger) Log(string, string, map[string]any) {}

// ZapLogger adapts *zap.Logger to Logger, following the reference service's
// go.uber.org/zap usage throughout internal/config and cmd/l1jgo.
type ZapLogger struct {
	L *zap.Logger
}

func NewZapLogger(l *zap.Logger) ZapLogger {
	if l == nil {
		l = zap.NewNop()
	}
	return ZapLogger{L: l}
}

func (z ZapLogger) Log(msg, category string, meta map[string]any) {
	fields := make([]zap.Field, 0, len(meta)+1)
	fields = append(fields, zap.String("category", category))
	for k, v := range meta {
		fields = append(fields, zap.Any(k, v))
	}
	z.L.Info(msg, fields...)
}

// OrNop returns l, or NopLogger{} when l is nil — the guard every package in
// this module applies before logging.
func OrNop(l Logger) Logger {
	if l == nil {
		return NopLogger{}
	}
	return l
}
