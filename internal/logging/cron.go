package logging

import "github.com/rs/zerolog"

// CronLogger adapts zerolog.Logger to the cron.Logger interface.
type CronLogger struct {
	logger zerolog.Logger
}

// NewCronLogger creates a new CronLogger wrapping a zerolog.Logger.
func NewCronLogger(logger zerolog.Logger) *CronLogger {
	return &CronLogger{logger: logger}
}

// Info logs routine scheduler messages at debug level; cron reports every
// wake-up and run through Info.
func (l *CronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(toFields(keysAndValues)).Msg(msg)
}

// Error logs an error message with optional key-value pairs.
func (l *CronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error().Err(err).Fields(toFields(keysAndValues)).Msg(msg)
}

// toFields converts key-value pairs to a map for zerolog.
func toFields(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			fields[key] = keysAndValues[i+1]
		}
	}
	return fields
}
