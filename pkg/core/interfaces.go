package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// NopLogger discards everything; used by tests and library callers that want silence
type NopLogger struct{}

// Printf implements Logger
func (NopLogger) Printf(format string, args ...interface{}) {}

// LevelLogger is a Logger that can also tag a message as a warning or an error
type LevelLogger interface {
	Logger
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Warnf logs a warning through l, falling back to Printf for plain loggers
func Warnf(l Logger, format string, args ...interface{}) {
	if ll, ok := l.(LevelLogger); ok {
		ll.Warnf(format, args...)
		return
	}
	l.Printf(format, args...)
}

// Errorf logs an error through l, falling back to Printf for plain loggers
func Errorf(l Logger, format string, args ...interface{}) {
	if ll, ok := l.(LevelLogger); ok {
		ll.Errorf(format, args...)
		return
	}
	l.Printf(format, args...)
}
