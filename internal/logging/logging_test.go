package logging_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"art-gallery-backend/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Level(t *testing.T) {
	log := logging.New("debug", "development")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log = logging.New("not-a-level", "development")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestRequestLogger_WritesFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	log := logging.NewWithOutput("info", "production", &buf)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(logging.UserIDKey, int64(42))
		c.Next()
	})
	router.Use(logging.RequestLogger(log))
	router.GET("/paintings", func(c *gin.Context) {
		c.Status(http.StatusTeapot)
	})

	req, _ := http.NewRequest("GET", "/paintings", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/paintings", entry["path"])
	assert.Equal(t, float64(http.StatusTeapot), entry["status"])
	assert.Equal(t, float64(42), entry["user_id"])
	assert.Equal(t, "warning", entry["level"])
}
