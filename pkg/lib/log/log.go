// Package log exposes the logger the jiffybox SDK writes to.
//
// Pass any [Logger] in lib.Config. Nothing is logged by default ([Noop]).
// Provider calls are logged at debug level, lifecycle rejections at info.
// The API token is never logged.
//
// Adapting an existing logger only needs a small wrapper, e.g. for logrus:
//
//	type logrusLogger struct{ e *logrus.Entry }
//
//	func (l logrusLogger) Infof(format string, args ...any)    { l.e.Infof(format, args...) }
//	func (l logrusLogger) Warningf(format string, args ...any) { l.e.Warnf(format, args...) }
//	func (l logrusLogger) Errorf(format string, args ...any)   { l.e.Errorf(format, args...) }
//	func (l logrusLogger) Debugf(format string, args ...any)   { l.e.Debugf(format, args...) }
//	func (l logrusLogger) WithValues(kv log.Kv) log.Logger     { return logrusLogger{l.e.WithFields(logrus.Fields(kv))} }
//	// WithCtxValues and SetValuesOnCtx can return the logger and ctx as is.
package log

import "github.com/slok/jiffybox/internal/log"

// Logger is the logger used by the SDK. Components tag their lines with
// [Kv] values such as "svc" and "box".
type Logger = log.Logger

// Kv are structured key-value pairs attached to log lines.
type Kv = log.Kv

// Noop discards everything, it's the default of lib.Config.
var Noop = log.Noop
