package util

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/ariebrainware/hospital-records/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestSanitizeLogValue(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "removes newlines", input: "hello\nworld", expected: "hello world"},
		{name: "removes carriage returns", input: "hello\rworld", expected: "hello world"},
		{name: "removes tabs", input: "hello\tworld", expected: "hello world"},
		{name: "truncates long values", input: strings.Repeat("a", 250), expected: strings.Repeat("a", 200) + "..."},
		{name: "handles normal strings", input: "normal string", expected: "normal string"},
		{name: "handles empty string", input: "", expected: ""},
		{name: "truncates on a rune boundary", input: strings.Repeat("a", 199) + strings.Repeat("é", 10), expected: strings.Repeat("a", 199) + "..."},
		{name: "keeps a rune ending at the limit", input: strings.Repeat("a", 198) + strings.Repeat("é", 10), expected: strings.Repeat("a", 198) + "é..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeLogValue(tt.input)
			assert.Equal(t, tt.expected, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func setupRequestLogDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb_request_log_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.RequestLog{}))

	SetRequestLoggerDB(db)
	t.Cleanup(func() { SetRequestLoggerDB(nil) })
	return db
}

func TestLogRequestEvent_WritesLogLine(t *testing.T) {
	buf := captureLogs(t, "debug")

	LogRequestEvent(RequestEvent{
		RequestID: "req-1",
		Method:    http.MethodGet,
		Path:      "/patient/:id",
		Status:    http.StatusNotFound,
		Message:   "GET /patient/9\n-> 404",
	})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, float64(404), entry["status"])
	assert.Equal(t, "GET /patient/9 -> 404", entry["message"])
}

func TestLogRequestEvent_Persists(t *testing.T) {
	captureLogs(t, "error")
	db := setupRequestLogDB(t)

	LogRequestEvent(RequestEvent{
		RequestID:  "req-2",
		Method:     http.MethodPost,
		Path:       "/medic/",
		Status:     http.StatusOK,
		DurationMS: 12,
		IP:         "10.0.0.1",
		Message:    "POST /medic/ -> 200",
		Details:    map[string]interface{}{"query": "a=b"},
	})

	var logs []model.RequestLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "req-2", logs[0].RequestID)
	assert.Equal(t, "/medic/", logs[0].Path)
	assert.Equal(t, int64(12), logs[0].DurationMS)

	var details map[string]interface{}
	require.NoError(t, json.Unmarshal(logs[0].Details, &details))
	assert.Equal(t, "a=b", details["query"])
}

func TestLogRequestEvent_NoDB(t *testing.T) {
	captureLogs(t, "error")
	SetRequestLoggerDB(nil)

	assert.NotPanics(t, func() {
		LogRequestEvent(RequestEvent{Method: http.MethodGet, Path: "/", Status: http.StatusOK})
	})
}
