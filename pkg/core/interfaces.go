package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

type discardLogger struct{}

func (discardLogger) Printf(string, ...interface{}) {}

// DiscardLogger returns a Logger that drops everything
func DiscardLogger() Logger {
	return discardLogger{}
}
