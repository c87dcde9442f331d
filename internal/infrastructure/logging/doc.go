// Package logging provides structured logging using uber/zap.
//
// Production builds emit JSON; development builds (LOG_DEV=true or
// --dev) emit coloured console output at debug level. Components receive
// a named child logger:
//
//	logger := logging.NewDefault()
//	shellLog := logger.Component("shell")
//	shellLog.Debug("Shell transition", zap.String("op", "open"))
package logging
