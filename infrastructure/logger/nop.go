package logger

// NoOpLogger discards everything. Used by tests.
type NoOpLogger struct{}

// NewNop returns a logger that discards all entries.
func NewNop() Logger {
	return &NoOpLogger{}
}

func (l *NoOpLogger) Debug(string, ...Field) {}
func (l *NoOpLogger) Info(string, ...Field)  {}
func (l *NoOpLogger) Warn(string, ...Field)  {}
func (l *NoOpLogger) Error(string, ...Field) {}

// With returns the receiver.
func (l *NoOpLogger) With(...Field) Logger {
	return l
}

// Sync is a no-op.
func (l *NoOpLogger) Sync() error {
	return nil
}
