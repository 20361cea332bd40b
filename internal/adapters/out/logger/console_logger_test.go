package logger

import (
	"bytes"
	"strings"
	"testing"
)

func newBufferedLogger(t *testing.T) (*ConsoleLogger, *bytes.Buffer) {
	t.Helper()

	log, err := NewConsoleLogger("UTC")
	if err != nil {
		t.Fatalf("NewConsoleLogger: %v", err)
	}

	buf := &bytes.Buffer{}
	log.writer = buf
	return log, buf
}

func TestConsoleLoggerWritesEventAndFields(t *testing.T) {
	log, buf := newBufferedLogger(t)

	log.Info("booking.committed", map[string]interface{}{"token": 7})

	line := buf.String()
	if !strings.Contains(line, `"event":"booking.committed"`) {
		t.Fatalf("missing event in output: %s", line)
	}
	if !strings.Contains(line, `"token":7`) {
		t.Fatalf("missing field in output: %s", line)
	}
	if !strings.Contains(line, "[INFO]") {
		t.Fatalf("missing level in output: %s", line)
	}
}

func TestConsoleLoggerChildModule(t *testing.T) {
	log, buf := newBufferedLogger(t)

	child := log.WithModule("BookingService")
	child.Warn("booking.commit.failed", nil)

	if !strings.Contains(buf.String(), "[BookingService]") {
		t.Fatalf("missing module in output: %s", buf.String())
	}
}

func TestConsoleLoggerWithFieldsDoesNotMutateParent(t *testing.T) {
	log, buf := newBufferedLogger(t)

	log.WithFields(map[string]interface{}{"requestId": "abc"})
	log.Info("plain", nil)

	if strings.Contains(buf.String(), "requestId") {
		t.Fatalf("parent logger inherited child fields: %s", buf.String())
	}

	buf.Reset()
	child := log.WithFields(map[string]interface{}{"requestId": "abc"})
	child.Info("tagged", nil)
	if !strings.Contains(buf.String(), `"requestId":"abc"`) {
		t.Fatalf("child logger dropped its fields: %s", buf.String())
	}
}
