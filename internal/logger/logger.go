package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger returns a console logger for development and a JSON logger
// when production is set. Unknown levels fall back to info.
func InitLogger(level string, production bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stderr}
	if production {
		out = os.Stderr
	}

	return log.Output(out).Level(lvl).With().Timestamp().Logger()
}
