package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"art-gallery-backend/internal/middleware"
	"art-gallery-backend/internal/models"
	"art-gallery-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt-signing"

func newAuth(t *testing.T) *services.AuthService {
	t.Helper()
	auth, err := services.NewAuthService(nil, testSecret, "HS256", 30*time.Minute)
	require.NoError(t, err)
	return auth
}

func tokenFor(t *testing.T, auth *services.AuthService, id int64, role models.Role) string {
	t.Helper()
	token, err := auth.IssueToken(&models.User{ID: id, Username: "user", Role: role})
	require.NoError(t, err)
	return token.AccessToken
}

func newRouter(auth *services.AuthService, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers := append([]gin.HandlerFunc{middleware.AuthMiddleware(auth)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/test", handlers...)
	return router
}

func TestAuthMiddleware_NoToken(t *testing.T) {
	router := newRouter(newAuth(t))

	req, _ := http.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	router := newRouter(newAuth(t))

	for _, header := range []string{"Bearer invalid-token", "Basic abc", "Bearer "} {
		req, _ := http.NewRequest("GET", "/test", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
	}
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	tokenString, _ := token.SignedString([]byte("some-other-secret"))

	router := newRouter(newAuth(t))
	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := newAuth(t)

	router := gin.New()
	router.Use(middleware.AuthMiddleware(auth))
	router.GET("/test", func(c *gin.Context) {
		userID, exists := middleware.UserID(c)
		assert.True(t, exists)
		assert.Equal(t, int64(123), userID)
		role, _ := middleware.Role(c)
		assert.Equal(t, models.RoleArtist, role)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, auth, 123, models.RoleArtist))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole(t *testing.T) {
	auth := newAuth(t)
	router := newRouter(auth, middleware.RequireRole(models.RoleArtist))

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, auth, 1, models.RoleEnthusiast))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req, _ = http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, auth, 2, models.RoleArtist))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
