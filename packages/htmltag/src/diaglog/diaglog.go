// Package diaglog adapts logging libraries to the markup.Logger diagnostic sink.
package diaglog

import (
	"io"
	"log"
	"sync"

	"github.com/rs/zerolog"
	"go.uber.org/zap"

	"htmltag-go/packages/htmltag/src/markup"
)

// Discard is a Logger that ignores all diagnostics.
var Discard markup.Logger = markup.LoggerFunc(func(string) {})

type stdLogger struct {
	l *log.Logger
}

// NewStdLogger returns a Logger writing each diagnostic as a line to l
func NewStdLogger(l *log.Logger) markup.Logger {
	return stdLogger{l}
}

// NewWriterLogger returns a Logger writing each diagnostic as a line to w, prefixed with prefix
func NewWriterLogger(w io.Writer, prefix string) markup.Logger {
	return stdLogger{log.New(w, prefix, 0)}
}

func (sl stdLogger) Log(message string) {
	sl.l.Print(message)
}

type zerologLogger struct {
	l zerolog.Logger
}

// NewZerolog returns a Logger emitting diagnostics as zerolog warnings
func NewZerolog(l zerolog.Logger) markup.Logger {
	return zerologLogger{l}
}

func (zl zerologLogger) Log(message string) {
	zl.l.Warn().Str("component", "markup").Msg(message)
}

type zapLogger struct {
	l *zap.Logger
}

// NewZap returns a Logger emitting diagnostics as zap warnings
func NewZap(l *zap.Logger) markup.Logger {
	return zapLogger{l}
}

func (zl zapLogger) Log(message string) {
	zl.l.Warn(message, zap.String("component", "markup"))
}

// Collector records diagnostics in memory. It is safe for concurrent use.
type Collector struct {
	mu       sync.Mutex
	messages []string
}

// Log records message
func (c *Collector) Log(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, message)
}

// Messages returns a copy of the recorded messages
func (c *Collector) Messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.messages...)
}

// Len returns the number of recorded messages
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

// Reset discards the recorded messages
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = nil
}

// Tee returns a Logger forwarding every diagnostic to each of loggers, skipping nil ones
func Tee(loggers ...markup.Logger) markup.Logger {
	return markup.LoggerFunc(func(message string) {
		for _, l := range loggers {
			if l != nil {
				l.Log(message)
			}
		}
	})
}
