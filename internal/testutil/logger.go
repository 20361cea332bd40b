package testutil

import "github.com/swasthya-health/appointment-slots-service/internal/core/ports/out"

// NopLogger discards everything; tests assert behavior, not log output.
type NopLogger struct{}

func (NopLogger) Debug(event string, fields out.LogFields) {}
func (NopLogger) Info(event string, fields out.LogFields)  {}
func (NopLogger) Warn(event string, fields out.LogFields)  {}
func (NopLogger) Error(event string, fields out.LogFields) {}

func (n NopLogger) WithFields(fields out.LogFields) out.LoggerPort { return n }
func (n NopLogger) WithModule(module string) out.LoggerPort        { return n }
