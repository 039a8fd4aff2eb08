// Package log wraps a package-level logrus logger for startup/shutdown and
// per-frame diagnostic logging, grounded on the corpus's own logrus wrapper
// convention rather than bare fmt.Printf.
package log

import "github.com/sirupsen/logrus"

var logger = logrus.New()

// Init configures the package logger's level. Host programs
// call this once at startup; if they don't, the logger falls back to
// logrus's defaults.
func Init(level logrus.Level) {
	logger.SetLevel(level)
}

func fields(kv []any) logrus.Fields {
	f := make(logrus.Fields, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, _ := kv[i].(string)
		f[key] = kv[i+1]
	}
	return f
}

// Info logs at info level with optional alternating key/value fields.
func Info(msg string, kv ...any) {
	logger.WithFields(fields(kv)).Info(msg)
}

// Warn logs at warn level with optional alternating key/value fields.
func Warn(msg string, kv ...any) {
	logger.WithFields(fields(kv)).Warn(msg)
}

// Error logs at error level with optional alternating key/value fields.
func Error(msg string, kv ...any) {
	logger.WithFields(fields(kv)).Error(msg)
}

// Fatal logs at fatal level and terminates the process, matching logrus's
// own Fatal semantics — reserved for startup errors the caller has already
// decided are unrecoverable.
func Fatal(msg string, kv ...any) {
	logger.WithFields(fields(kv)).Fatal(msg)
}
