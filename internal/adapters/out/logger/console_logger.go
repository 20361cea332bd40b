package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/swasthya-health/appointment-slots-service/internal/core/ports/out"
)

const (
	ansiReset  = "\033[0m"
	ansiGray   = "\033[37m"
	ansiCyan   = "\033[36m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiRed    = "\033[31m"
)

var levelColors = map[out.LogLevel]string{
	out.LogLevelDebug: ansiGray,
	out.LogLevelInfo:  ansiGreen,
	out.LogLevelWarn:  ansiYellow,
	out.LogLevelError: ansiRed,
}

// ConsoleLogger writes one colored line per event with the fields as JSON.
// Child loggers share the writer and location; WithModule and WithFields
// never mutate the parent.
type ConsoleLogger struct {
	writer   io.Writer
	location *time.Location
	module   string
	fields   out.LogFields
}

func NewConsoleLogger(timezone string) (*ConsoleLogger, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}

	return &ConsoleLogger{
		writer:   os.Stdout,
		location: loc,
		module:   "app",
		fields:   out.LogFields{},
	}, nil
}

func (l *ConsoleLogger) child(module string, fields out.LogFields) *ConsoleLogger {
	merged := make(out.LogFields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}

	return &ConsoleLogger{
		writer:   l.writer,
		location: l.location,
		module:   module,
		fields:   merged,
	}
}

func (l *ConsoleLogger) WithModule(module string) out.LoggerPort {
	return l.child(module, nil)
}

func (l *ConsoleLogger) WithFields(fields out.LogFields) out.LoggerPort {
	return l.child(l.module, fields)
}

func (l *ConsoleLogger) Debug(event string, fields out.LogFields) {
	l.write(out.LogLevelDebug, event, fields)
}

func (l *ConsoleLogger) Info(event string, fields out.LogFields) {
	l.write(out.LogLevelInfo, event, fields)
}

func (l *ConsoleLogger) Warn(event string, fields out.LogFields) {
	l.write(out.LogLevelWarn, event, fields)
}

func (l *ConsoleLogger) Error(event string, fields out.LogFields) {
	l.write(out.LogLevelError, event, fields)
}

func (l *ConsoleLogger) write(level out.LogLevel, event string, fields out.LogFields) {
	payload := make(out.LogFields, len(l.fields)+len(fields)+1)
	for k, v := range l.fields {
		payload[k] = v
	}
	for k, v := range fields {
		payload[k] = v
	}
	payload["event"] = event

	encoded, err := json.Marshal(payload)
	if err != nil {
		encoded = []byte(fmt.Sprintf(`{"event":%q,"loggerError":%q}`, event, err.Error()))
	}

	timestamp := time.Now().In(l.location).Format("2006-01-02 15:04:05.000")

	fmt.Fprintf(l.writer, "%s[%s]%s %s[%s]%s %s[%s]%s %s\n",
		ansiGray, timestamp, ansiReset,
		levelColors[level], level, ansiReset,
		ansiCyan, l.module, ansiReset,
		encoded,
	)
}
