package logger

import (
	"go.uber.org/zap/zapcore"
)

// Field keys the DB core looks for. Middleware logs with these names.
const (
	FieldTenantID  = "tenantId"
	FieldUserID    = "userId"
	FieldRequestID = "requestId"
	FieldPath      = "path"
)

// LogSink receives the entries DBCore decides to persist.
type LogSink interface {
	AddLog(entry LogEntry)
}

// DBCore is a custom Zap Core that forwards authorization-relevant warnings
// to a LogSink while still writing everything to the wrapped core.
type DBCore struct {
	zapcore.Core
	sink   LogSink
	fields []zapcore.Field
}

func NewDBCore(baseCore zapcore.Core, sink LogSink) zapcore.Core {
	return &DBCore{Core: baseCore, sink: sink}
}

// With keeps the DB core in the chain for child loggers.
func (c *DBCore) With(fields []zapcore.Field) zapcore.Core {
	merged := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	merged = append(merged, c.fields...)
	merged = append(merged, fields...)
	return &DBCore{Core: c.Core.With(fields), sink: c.sink, fields: merged}
}

func (c *DBCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *DBCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	if entry.Level >= zapcore.WarnLevel {
		if logEntry, ok := extractEntry(entry, append(append([]zapcore.Field{}, c.fields...), fields...)); ok {
			c.sink.AddLog(logEntry)
		}
	}
	return c.Core.Write(entry, fields)
}

// extractEntry keeps only entries that name a tenant or a user.
func extractEntry(entry zapcore.Entry, fields []zapcore.Field) (LogEntry, bool) {
	out := LogEntry{
		Level:   entry.Level,
		Message: entry.Message,
		Caller:  entry.Caller.Function,
		Time:    entry.Time,
	}
	for _, f := range fields {
		switch f.Key {
		case FieldTenantID:
			out.TenantID = f.Integer
		case FieldUserID:
			out.UserID = f.Integer
		case FieldRequestID:
			out.RequestID = f.String
		case FieldPath:
			out.Path = f.String
		}
	}
	return out, out.TenantID != 0 || out.UserID != 0
}
