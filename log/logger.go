package log

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = map[Level]string{
	LevelTrace: "trace",
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
	LevelFatal: "fatal",
}

var logrusLevels = map[Level]logrus.Level{
	LevelTrace: logrus.TraceLevel,
	LevelDebug: logrus.DebugLevel,
	LevelInfo:  logrus.InfoLevel,
	LevelWarn:  logrus.WarnLevel,
	LevelError: logrus.ErrorLevel,
	LevelFatal: logrus.FatalLevel,
}

var ErrInvalidLevel = errors.New("invalid log level")

func NewLevel(l string) (Level, error) {
	l = strings.ToLower(strings.TrimSpace(l))
	for level, name := range levelNames {
		if name == l {
			return level, nil
		}
	}
	return LevelTrace, errors.Wrapf(ErrInvalidLevel, "%q", l)
}

func (l Level) String() string {
	name, ok := levelNames[l]
	if !ok {
		panic("invalid level")
	}
	return name
}

var currLevel = LevelInfo

var backend = logrus.New()

var rootLogger = &logrusLogger{
	entry: logrus.NewEntry(backend),
}

type Logger interface {
	Trace(string, ...interface{})
	Debug(string, ...interface{})
	Info(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Fatal(string, ...interface{})
	Sub(...interface{}) Logger
}

func SetLevel(level Level) {
	currLevel = level
	backend.SetLevel(logrusLevels[level])
}

// SetOutput redirects all loggers. Command-line tools send logs to stderr so
// that encoded output on stdout stays clean.
func SetOutput(w io.Writer) {
	backend.SetOutput(w)
}

// SetJSON switches between logrus' JSON and text formatters.
func SetJSON(enabled bool) {
	if enabled {
		backend.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	backend.SetFormatter(&logrus.TextFormatter{})
}

func WithModule(name string) Logger {
	return rootLogger.Sub("module", name)
}

func init() {
	backend.SetOutput(os.Stderr)
	// set log level to trace by default in test
	if strings.HasSuffix(os.Args[0], ".test") {
		SetLevel(LevelTrace)
	}
}
