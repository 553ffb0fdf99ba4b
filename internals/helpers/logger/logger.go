package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Config struct {
	Level  string
	Pretty bool
	Output io.Writer
}

type Logger struct {
	zl zerolog.Logger
}

func New(cfg Config) *Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var out io.Writer = os.Stdout
	if cfg.Output != nil {
		out = cfg.Output
	}
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	zl := zerolog.New(out).
		With().
		Timestamp().
		Logger().
		Level(ParseLevel(cfg.Level))

	return &Logger{zl: zl}
}

// Nop membuang semua log (dipakai di test).
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func ParseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// With mengembalikan child logger dengan field tambahan (mis. component).
func (l *Logger) With(key, value string) *Logger {
	return &Logger{zl: l.zl.With().Str(key, value).Logger()}
}

func (l *Logger) Zerolog() *zerolog.Logger {
	return &l.zl
}

func (l *Logger) Debugf(format string, v ...interface{}) {
	l.zl.Debug().Msgf(format, v...)
}

func (l *Logger) Info(msg string) {
	l.zl.Info().Msg(msg)
}

func (l *Logger) Infof(format string, v ...interface{}) {
	l.zl.Info().Msgf(format, v...)
}

func (l *Logger) Warnf(format string, v ...interface{}) {
	l.zl.Warn().Msgf(format, v...)
}

func (l *Logger) WarnErr(err error, format string, v ...interface{}) {
	l.zl.Warn().Err(err).Msgf(format, v...)
}

func (l *Logger) Errorf(err error, format string, v ...interface{}) {
	l.zl.Error().Err(err).Msgf(format, v...)
}

func (l *Logger) Fatalf(err error, format string, v ...interface{}) {
	l.zl.Fatal().Err(err).Msgf(format, v...)
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// Init menyetel logger default proses. Panggilan kedua diabaikan.
func Init(cfg Config) *Logger {
	once.Do(func() {
		defaultLogger = New(cfg)
	})
	return defaultLogger
}

// Default dipakai sebelum Init (mis. saat LoadEnv); fallback ke stdout level info.
func Default() *Logger {
	if defaultLogger == nil {
		return New(Config{Level: "info"})
	}
	return defaultLogger
}
