package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ariebrainware/hospital-records/model"
	"github.com/ariebrainware/hospital-records/util"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	prevLogger := log.Logger
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})
	buf := &bytes.Buffer{}
	util.ConfigureLogger(util.LoggerConfig{Level: "debug", Output: buf})
	return buf
}

func lastLogEntry(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func newLoggedRouter() *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), EndpointCallLogger())
	r.GET("/patient/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})
	r.POST("/patient/", func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "bad"})
	})
	return r
}

func TestEndpointCallLogger_BasicRequest(t *testing.T) {
	buf := captureLogs(t)
	r := newLoggedRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/patient/7?foo=bar", nil)
	req.RemoteAddr = "192.168.1.100:1234"
	req.Header.Set("User-Agent", "TestAgent/1.0")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	entry := lastLogEntry(t, buf)
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "GET /patient/7 -> 200", entry["message"])
	assert.Equal(t, "/patient/:id", entry["path"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, float64(200), entry["status"])
	assert.Equal(t, "192.168.1.100", entry["ip"])
	assert.Equal(t, "TestAgent/1.0", entry["user_agent"])
	assert.Equal(t, w.Header().Get(RequestIDHeader), entry["request_id"])

	details, ok := entry["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "foo=bar", details["query"])
	assert.Equal(t, "/patient/7", details["raw_path"])
}

func TestEndpointCallLogger_ClientErrorIsWarn(t *testing.T) {
	buf := captureLogs(t)
	r := newLoggedRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/patient/", nil))
	require.Equal(t, http.StatusBadRequest, w.Code)

	entry := lastLogEntry(t, buf)
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, float64(400), entry["status"])
}

func TestEndpointCallLogger_UnmatchedRouteUsesRawPath(t *testing.T) {
	buf := captureLogs(t)
	r := newLoggedRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	entry := lastLogEntry(t, buf)
	assert.Equal(t, "/nowhere", entry["path"])
}

func TestEndpointCallLogger_PersistsWhenEnabled(t *testing.T) {
	captureLogs(t)
	db := newInMemoryDB(t)
	require.NoError(t, db.AutoMigrate(&model.RequestLog{}))
	util.SetRequestLoggerDB(db)
	t.Cleanup(func() { util.SetRequestLoggerDB(nil) })

	r := newLoggedRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/patient/3", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	r.ServeHTTP(w, req)

	var logs []model.RequestLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "req-42", logs[0].RequestID)
	assert.Equal(t, "/patient/:id", logs[0].Path)
	assert.Equal(t, http.StatusOK, logs[0].Status)
}
