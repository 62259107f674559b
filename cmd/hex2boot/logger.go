package main

import (
	"fmt"
	"io"
	"log"
	"strings"

	syslog "github.com/platinasystems/log"
)

// stderrLogger implements convert.Logger on the standard log package.
type stderrLogger struct {
	logger *log.Logger
	debug  bool
}

func newStderrLogger(w io.Writer, debug bool) *stderrLogger {
	return &stderrLogger{
		logger: log.New(w, "hex2boot: ", 0),
		debug:  debug,
	}
}

func (l *stderrLogger) Debug(msg string, kv ...interface{}) {
	if l.debug {
		l.logger.Printf("[DEBUG] %s%s", msg, formatKV(kv))
	}
}

func (l *stderrLogger) Info(msg string, kv ...interface{}) {
	if l.debug {
		l.logger.Printf("[INFO] %s%s", msg, formatKV(kv))
	}
}

func (l *stderrLogger) Warn(msg string, kv ...interface{}) {
	l.logger.Printf("[WARN] %s%s", msg, formatKV(kv))
}

func (l *stderrLogger) Error(msg string, kv ...interface{}) {
	l.logger.Printf("[ERROR] %s%s", msg, formatKV(kv))
}

// syslogLogger implements convert.Logger by printing with syslog priorities.
type syslogLogger struct {
	debug bool
}

func (l *syslogLogger) Debug(msg string, kv ...interface{}) {
	if l.debug {
		syslog.Print("debug", "hex2boot: ", msg, formatKV(kv))
	}
}

func (l *syslogLogger) Info(msg string, kv ...interface{}) {
	syslog.Print("info", "hex2boot: ", msg, formatKV(kv))
}

func (l *syslogLogger) Warn(msg string, kv ...interface{}) {
	syslog.Print("warn", "hex2boot: ", msg, formatKV(kv))
}

func (l *syslogLogger) Error(msg string, kv ...interface{}) {
	syslog.Print("err", "hex2boot: ", msg, formatKV(kv))
}

// formatKV renders key-value pairs as " key=value ...".
func formatKV(kv []interface{}) string {
	var sb strings.Builder
	for i := 0; i < len(kv); i += 2 {
		if i+1 < len(kv) {
			fmt.Fprintf(&sb, " %v=%v", kv[i], kv[i+1])
		} else {
			fmt.Fprintf(&sb, " %v", kv[i])
		}
	}
	return sb.String()
}
