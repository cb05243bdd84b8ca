package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	old := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = old })
	return &buf
}

func loggerTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Logger())
	router.GET("/api/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/api/homes", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	return router
}

func TestLogger_LogsRequests(t *testing.T) {
	buf := captureLog(t)
	router := loggerTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/homes?search=ботев", nil))

	out := buf.String()
	assert.Contains(t, out, `"path":"/api/homes"`)
	assert.Contains(t, out, `"status":200`)
	assert.Contains(t, out, `"level":"info"`)
}

func TestLogger_SkipsHealthProbe(t *testing.T) {
	buf := captureLog(t)
	router := loggerTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Empty(t, buf.String(), "health probes stay out of the log stream")
}

func TestLogger_ServerErrorsLogAtErrorLevel(t *testing.T) {
	buf := captureLog(t)
	router := loggerTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	out := buf.String()
	assert.Contains(t, out, `"level":"error"`)
	assert.Contains(t, out, `"status":500`)
}
