package log

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

type logrusLogger struct {
	entry *logrus.Entry
}

var _ Logger = (*logrusLogger)(nil)

func (l *logrusLogger) Trace(msg string, kv ...interface{}) { l.emit(LevelTrace, msg, kv) }
func (l *logrusLogger) Debug(msg string, kv ...interface{}) { l.emit(LevelDebug, msg, kv) }
func (l *logrusLogger) Info(msg string, kv ...interface{})  { l.emit(LevelInfo, msg, kv) }
func (l *logrusLogger) Warn(msg string, kv ...interface{})  { l.emit(LevelWarn, msg, kv) }
func (l *logrusLogger) Error(msg string, kv ...interface{}) { l.emit(LevelError, msg, kv) }
func (l *logrusLogger) Fatal(msg string, kv ...interface{}) { l.emit(LevelFatal, msg, kv) }

func (l *logrusLogger) Sub(kv ...interface{}) Logger {
	return &logrusLogger{
		entry: l.with(kv),
	}
}

func (l *logrusLogger) emit(level Level, msg string, kv []interface{}) {
	if level < currLevel {
		return
	}
	e := l.with(kv)
	switch level {
	case LevelTrace:
		e.Trace(msg)
	case LevelDebug:
		e.Debug(msg)
	case LevelInfo:
		e.Info(msg)
	case LevelWarn:
		e.Warn(msg)
	case LevelError:
		e.Error(msg)
	case LevelFatal:
		e.Fatal(msg)
	}
}

// with turns alternating key/value arguments into logrus fields. A trailing
// key without a value is logged as "<missing>".
func (l *logrusLogger) with(kv []interface{}) *logrus.Entry {
	if len(kv) == 0 {
		return l.entry
	}
	fields := make(logrus.Fields, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		var v interface{} = "<missing>"
		if i+1 < len(kv) {
			v = kv[i+1]
		}
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		fields[fmt.Sprint(kv[i])] = v
	}
	return l.entry.WithFields(fields)
}
