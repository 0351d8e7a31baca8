// Package logging builds the explorer's diagnostic logger.
package logging

import (
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// ErrUnknownFormat is returned for a log format other than console or json.
var ErrUnknownFormat = errors.New("unknown log format")

// New returns a logger writing to w. Diagnostics stay off the conversation
// stream, so callers pass stderr. Only warnings and errors are written unless
// verbose is set.
func New(format string, verbose bool, w io.Writer) (*zap.SugaredLogger, error) {
	level := zap.WarnLevel
	if verbose {
		level = zap.DebugLevel
	}

	var encoder zapcore.Encoder
	switch strings.ToLower(format) {
	case "", FormatConsole:
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.TimeKey = ""
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(cfg)
	case FormatJSON:
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	default:
		return nil, errors.WithHint(errors.Wrapf(ErrUnknownFormat, "%q", format),
			"use --log-format console or --log-format json")
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zap.NewAtomicLevelAt(level))
	return zap.New(core).Sugar(), nil
}
