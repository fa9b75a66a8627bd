// Package logging builds the application's structured logger.
package logging

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Gobusters/ectologger"
	"github.com/Gobusters/ectologger/zapadapter"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLevel keeps routine logs off the console the menu is drawn on.
const DefaultLevel = "warn"

// ErrInvalidLevel is returned for a level zap does not recognise.
var ErrInvalidLevel = errors.New("invalid log level")

// New returns a logger writing console-encoded entries at or above level to
// w. Every entry carries the session ID of this run.
func New(level string, w io.Writer) (ectologger.Logger, error) {
	if strings.TrimSpace(level) == "" {
		level = DefaultLevel
	}
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLevel, level)
	}

	session, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}

	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), lvl)
	zapLogger := zap.New(core).With(zap.String("session", session.String()))

	return zapadapter.NewZapEctoLogger(zapLogger, nil), nil
}

// Nop returns a logger that discards everything.
func Nop() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}
