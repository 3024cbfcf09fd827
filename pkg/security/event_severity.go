package security

import "go.uber.org/zap/zapcore"

// Severity represents the severity level of an audit event
// This is derived from EventType, NOT caller-provided
type Severity string

const (
	SeverityINFO     Severity = "INFO"
	SeverityWARN     Severity = "WARN"
	SeverityHIGH     Severity = "HIGH"
	SeverityCRITICAL Severity = "CRITICAL"
)

// EventSeverityMap defines the hard-coded severity for each event type
var EventSeverityMap = map[EventType]Severity{
	// INFO - Normal operations
	EventContactSubmitted: SeverityINFO,

	// WARN - Visitor mistakes and abuse, monitor
	EventContactRejected:    SeverityWARN,
	EventRateLimitTriggered: SeverityWARN,

	// HIGH - Messages were lost
	EventContactDeliveryFailed: SeverityHIGH,

	// CRITICAL - Every submission fails until an operator acts
	EventContactMisconfigured: SeverityCRITICAL,
}

// GetSeverity returns the severity for an event type
// If the event type is not mapped, defaults to WARN
func GetSeverity(eventType EventType) Severity {
	if severity, ok := EventSeverityMap[eventType]; ok {
		return severity
	}
	return SeverityWARN
}

// IsHighOrAbove returns true if the event is HIGH or CRITICAL severity
func IsHighOrAbove(eventType EventType) bool {
	severity := GetSeverity(eventType)
	return severity == SeverityHIGH || severity == SeverityCRITICAL
}

// zapLevel maps a severity onto the log level it is written at
func (s Severity) zapLevel() zapcore.Level {
	switch s {
	case SeverityINFO:
		return zapcore.InfoLevel
	case SeverityHIGH, SeverityCRITICAL:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}
