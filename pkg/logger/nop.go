package logger

// NewNop returns a Logger that discards everything. Handy in tests.
func NewNop() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Debug(msg string, fields ...Field) {}
func (nopLogger) Info(msg string, fields ...Field)  {}
func (nopLogger) Warn(msg string, fields ...Field)  {}
func (nopLogger) Error(msg string, fields ...Field) {}
func (nopLogger) Fatal(msg string, fields ...Field) {}
func (n nopLogger) With(fields ...Field) Logger     { return n }
func (nopLogger) Sync() error                       { return nil }
