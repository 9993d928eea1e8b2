package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Log is the shared application logger.
var Log zerolog.Logger

func init() {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339Nano

	Log = newLogger(zerolog.InfoLevel, false)
}

func newLogger(level zerolog.Level, console bool) zerolog.Logger {
	var out io.Writer = os.Stdout
	if console {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "2006-01-02 15:04:05"}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", "farmdash").
		Logger()
}

// SetLevel configures logging for the server mode. Debug mode gets colored
// console output at debug level; anything else logs JSON at info so log
// shippers can parse it.
func SetLevel(mode string) {
	level := zerolog.InfoLevel
	console := false
	if mode == "debug" {
		level = zerolog.DebugLevel
		console = true
	}

	zerolog.SetGlobalLevel(level)
	Log = newLogger(level, console)
}
