package security

import "go.uber.org/zap/zapcore"

// Severity represents the severity level of a security event.
// It is derived from EventType, never from request input.
type Severity string

const (
	SeverityINFO   Severity = "INFO"
	SeverityMEDIUM Severity = "MEDIUM"
	SeverityWARN   Severity = "WARN"
	SeverityHIGH   Severity = "HIGH"
)

// EventSeverityMap defines the hard-coded severity for each event type
var EventSeverityMap = map[EventType]Severity{
	EventLoginSuccess:   SeverityINFO,
	EventAccountCreated: SeverityINFO,

	EventAccountDeleted: SeverityMEDIUM,

	EventLoginFailed:        SeverityWARN,
	EventRateLimitTriggered: SeverityWARN,

	EventLoginBlocked: SeverityHIGH,
	EventBlockCreated: SeverityHIGH,
}

// GetSeverity returns the severity for an event type.
// Unmapped event types default to MEDIUM.
func GetSeverity(eventType EventType) Severity {
	if severity, ok := EventSeverityMap[eventType]; ok {
		return severity
	}
	return SeverityMEDIUM
}

// IsHighOrAbove reports whether the event should page someone.
func IsHighOrAbove(eventType EventType) bool {
	return GetSeverity(eventType) == SeverityHIGH
}

func (s Severity) level() zapcore.Level {
	switch s {
	case SeverityINFO, SeverityMEDIUM:
		return zapcore.InfoLevel
	case SeverityHIGH:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}
