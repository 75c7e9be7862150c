package markup

// Logger receives diagnostic messages produced while recognizing tags.
// A nil Logger drops every message.
type Logger interface {
	Log(message string)
}

// LoggerFunc adapts an ordinary function to the Logger interface
type LoggerFunc func(message string)

// Log calls f(message)
func (f LoggerFunc) Log(message string) {
	f(message)
}
