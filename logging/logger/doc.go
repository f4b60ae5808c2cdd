// Package logger wraps logrus with context-aware helpers. Every entry carries
// the request trace id and the build version when known, and credentials are
// masked by a hook before formatting.
//
//	cleanup, err := logger.New(cfg.Logger)
//	defer cleanup()
//	logger.Infof(ctx, "created job %s", id)
package logger
