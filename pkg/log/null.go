package log

// nullLogger discards every message, including fatal ones, so that
// tests and embedders can run the core without any output.
type nullLogger struct{}

func (nullLogger) Fatal(string)                  {}
func (nullLogger) Infof(string, ...interface{})  {}
func (nullLogger) Errorf(string, ...interface{}) {}
func (nullLogger) Debugf(string, ...interface{}) {}

// NewNullLogger returns a logger that does nothing.
func NewNullLogger() Logger {
	return nullLogger{}
}
