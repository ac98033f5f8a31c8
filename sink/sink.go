// Package sink provides diagnostic trace sinks for executing instructions.
package sink

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/nibble/cpu"
)

// Logger emits trace lines through a logrus logger.
type Logger struct {
	*logrus.Logger
}

// NewLogger creates a Logger writing plain text lines to w.
func NewLogger(w io.Writer) (lg *Logger) {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
	})

	lg = &Logger{Logger: logger}
	return
}

// Emit logs the trace text at info level.
func (lg *Logger) Emit(text string) {
	lg.Logger.Info(text)
}

// Discard drops every trace line.
type Discard struct{}

func (Discard) Emit(text string) {}

// New returns a sink writing to w when enabled, or a Discard sink.
func New(w io.Writer, enabled bool) cpu.Sink {
	if !enabled || w == nil {
		return Discard{}
	}

	return NewLogger(w)
}
