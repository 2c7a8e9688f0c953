package renderer

import (
	"strings"

	"github.com/golang/glog"

	"github.com/df07/go-pathtracer/pkg/core"
)

// GlogLogger implements core.Logger by writing to glog at INFO
type GlogLogger struct{}

func (GlogLogger) Printf(format string, args ...interface{}) {
	glog.Infof(strings.TrimSuffix(format, "\n"), args...)
}

// NewGlogLogger creates a logger backed by glog
func NewGlogLogger() core.Logger {
	return GlogLogger{}
}

// VerboseLogger logs through glog.V(level), so output only appears with -v >= level
type VerboseLogger glog.Level

func (v VerboseLogger) Printf(format string, args ...interface{}) {
	glog.V(glog.Level(v)).Infof(strings.TrimSuffix(format, "\n"), args...)
}
