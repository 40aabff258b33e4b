package util

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/ariebrainware/hospital-records/model"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RequestEvent describes one handled HTTP request.
type RequestEvent struct {
	RequestID  string
	Method     string
	Path       string
	Status     int
	DurationMS int64
	IP         string
	UserAgent  string
	Message    string
	Details    map[string]interface{}
}

var requestLogDB *gorm.DB

// SetRequestLoggerDB sets a gorm DB instance used to persist request events.
// Call this during application startup after DB initialization; nil disables persistence.
func SetRequestLoggerDB(db *gorm.DB) {
	requestLogDB = db
}

// maxLogValueLen is the byte length values are truncated to.
const maxLogValueLen = 200

// sanitizeLogValue removes newlines and other characters that could break log parsing
func sanitizeLogValue(value string) string {
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.ReplaceAll(value, "\t", " ")
	if len(value) > maxLogValueLen {
		cut := maxLogValueLen
		for cut > 0 && !utf8.RuneStart(value[cut]) {
			cut--
		}
		value = value[:cut] + "..."
	}
	return value
}

func levelForStatus(status int) zerolog.Level {
	switch {
	case status >= 500:
		return zerolog.ErrorLevel
	case status >= 400:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

// LogRequestEvent writes the event to the log and, when a DB is registered, to request_logs.
func LogRequestEvent(event RequestEvent) {
	log.WithLevel(levelForStatus(event.Status)).
		Str("request_id", sanitizeLogValue(event.RequestID)).
		Str("method", sanitizeLogValue(event.Method)).
		Str("path", sanitizeLogValue(event.Path)).
		Int("status", event.Status).
		Int64("duration_ms", event.DurationMS).
		Str("ip", sanitizeLogValue(event.IP)).
		Str("user_agent", sanitizeLogValue(event.UserAgent)).
		Interface("details", event.Details).
		Msg(sanitizeLogValue(event.Message))

	if requestLogDB == nil {
		return
	}

	var details datatypes.JSON
	if event.Details != nil {
		if b, err := json.Marshal(event.Details); err == nil {
			details = datatypes.JSON(b)
		}
	}

	entry := model.RequestLog{
		RequestID:  sanitizeLogValue(event.RequestID),
		Method:     sanitizeLogValue(event.Method),
		Path:       sanitizeLogValue(event.Path),
		Status:     event.Status,
		DurationMS: event.DurationMS,
		IP:         sanitizeLogValue(event.IP),
		UserAgent:  sanitizeLogValue(event.UserAgent),
		Message:    sanitizeLogValue(event.Message),
		Details:    details,
	}

	// best-effort write
	if err := requestLogDB.Create(&entry).Error; err != nil {
		log.Error().Err(err).Msg("failed to persist request event")
	}
}
