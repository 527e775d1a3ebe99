package yadisk

// Logger is the logging interface used by the SDK. It mirrors the method set
// of the CLI logger so either can be passed in.
type Logger interface {
	Debug(msg string, args ...any)
	Debugf(format string, args ...any)
	Info(msg string, args ...any)
	Infof(format string, args ...any)
	Warn(msg string, args ...any)
	Warnf(format string, args ...any)
	Error(msg string, args ...any)
	Errorf(format string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(msg string, args ...any)     {}
func (noopLogger) Debugf(format string, args ...any) {}
func (noopLogger) Info(msg string, args ...any)      {}
func (noopLogger) Infof(format string, args ...any)  {}
func (noopLogger) Warn(msg string, args ...any)      {}
func (noopLogger) Warnf(format string, args ...any)  {}
func (noopLogger) Error(msg string, args ...any)     {}
func (noopLogger) Errorf(format string, args ...any) {}
