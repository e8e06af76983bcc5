// Package logger builds the structured logger a caller can pass to the
// writer's and reader's Open functions. The concurrency package does not
// log.
package logger

import "go.uber.org/zap"

// New builds a production zap logger scoped to service, returning its
// sugared form for the Infow/Errorw/Warnw call sites used throughout
// the module.
func New(service string) *zap.SugaredLogger {
	base, err := zap.NewProduction()
	if err != nil {
		base = zap.NewNop()
	}
	return base.Sugar().With("service", service)
}

// Nop returns a logger that discards everything, for tests and callers
// that don't want log output.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
