package logger

import (
	"io"
	"runtime"

	"github.com/rs/zerolog"
)

type ZeroLogger struct {
	writer        io.Writer
	level         Level
	defaultFields Fields
	zl            zerolog.Logger
}

var _ Logger = (*ZeroLogger)(nil)

type CallerHook struct{}

func (h CallerHook) Run(e *zerolog.Event, level zerolog.Level, _ string) {
	if level < zerolog.ErrorLevel {
		return
	}
	if _, file, line, ok := runtime.Caller(4); ok {
		e.Str("file", file)
		e.Int("line", line)
	}
}

// NewZeroLogger returns a JSON logger writing to writer. defaultFields are
// attached to every entry.
func NewZeroLogger(writer io.Writer, level Level, defaultFields Fields) *ZeroLogger {
	if defaultFields == nil {
		defaultFields = Fields{}
	}
	l := &ZeroLogger{writer: writer, level: level, defaultFields: defaultFields}
	l.configure()
	return l
}

func toZerologLevel(level Level) zerolog.Level {
	switch level {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	case LevelFatal:
		return zerolog.FatalLevel
	case LevelOff:
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

func (l *ZeroLogger) configure() {
	props := make(map[string]interface{}, len(l.defaultFields))
	for k, v := range l.defaultFields {
		props[k] = v
	}
	l.zl = zerolog.New(l.writer).
		With().Fields(props).Timestamp().Logger().
		Level(toZerologLevel(l.level)).
		Hook(CallerHook{})
}

func (l *ZeroLogger) Info(message string, properties map[string]interface{}) {
	l.zl.Info().Fields(properties).Msg(message)
}

func (l *ZeroLogger) Warn(message string, properties map[string]interface{}) {
	l.zl.Warn().Fields(properties).Msg(message)
}

// Error reports err at error level
func (l *ZeroLogger) Error(err error, properties map[string]interface{}) {
	l.zl.Error().Fields(properties).Err(err).Msg(err.Error())
}

// Fatal writes the entry and stops the process
func (l *ZeroLogger) Fatal(err error, properties map[string]interface{}) {
	l.zl.Fatal().Fields(properties).Err(err).Msg(err.Error())
}

func (l *ZeroLogger) Debug(message string, properties map[string]interface{}) {
	l.zl.Debug().Fields(properties).Msg(message)
}

func (l *ZeroLogger) SetLevel(level Level) {
	l.level = level
	l.configure()
}
