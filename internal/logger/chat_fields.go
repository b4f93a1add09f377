package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldSession is the structured log field key for the conversation session ID.
	FieldSession = "session_id"
	// FieldPhase is the structured log field key for the onboarding phase number.
	FieldPhase = "phase"
	// FieldModel is the structured log field key for the AI model identifier.
	FieldModel = "ai_model"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields safely attaches the provided fields to the logger.
// If the logger is nil or no fields are supplied, the input logger is returned
// unchanged, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// SessionFields returns standard zap fields describing a conversation session.
// The phase is included only when it is within the valid 1..5 range.
func SessionFields(sessionID string, phase int) []zap.Field {
	fields := StringFields(StringField{Key: FieldSession, Value: sessionID})
	if phase >= 1 && phase <= 5 {
		fields = append(fields, zap.Int(FieldPhase, phase))
	}
	return fields
}

// WithSession attaches the common session fields to the provided logger.
// If the logger is nil, a no-op logger is created to avoid panics.
func WithSession(logger *zap.Logger, sessionID string, phase int) *zap.Logger {
	return WithFields(logger, SessionFields(sessionID, phase)...)
}
