// Package logger holds the process-wide logger the factoring driver and the
// primality oracle report progress through.
//
// The default logger writes human-readable console output via
// github.com/rs/zerolog; it goes silent under "go test" unless the debug
// build tag is set, so stage chatter never pollutes test output.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/corrodedHash/facto/debug"
	"github.com/rs/zerolog"
)

var logger zerolog.Logger

func init() {
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	logger = zerolog.New(output).With().Timestamp().Logger()

	if !debug.Debug && strings.HasSuffix(os.Args[0], ".test") {
		logger = zerolog.Nop()
	}

}

// SetOutput redirects the global logger to w.
func SetOutput(w io.Writer) {
	logger = logger.Output(w)
}

// Set replaces the global logger entirely, for callers that already carry
// a configured zerolog instance.
func Set(l zerolog.Logger) {
	logger = l
}

// Disable silences all logging.
func Disable() {
	logger = zerolog.Nop()
}

// Logger returns the global logger; components derive sub-loggers from it
// with With().
func Logger() zerolog.Logger {
	return logger
}
