package log

import (
	stdlog "log"
	"strings"
)

// RedirectStdLog routes the standard library's global logger through l at
// info level. Pebble and other dependencies that log via the stdlib logger
// then share the configured formatter and output.
func RedirectStdLog(l Logger) {
	stdlog.SetFlags(0)
	stdlog.SetOutput(stdLogWriter{logger: l})
}

type stdLogWriter struct {
	logger Logger
}

func (w stdLogWriter) Write(p []byte) (int, error) {
	msg := strings.TrimRight(string(p), "\n")
	if msg != "" {
		w.logger.Info(msg)
	}
	return len(p), nil
}
