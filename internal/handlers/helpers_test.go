package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"art-gallery-backend/internal/config"
	"art-gallery-backend/internal/logging"
	"art-gallery-backend/internal/models"
	"art-gallery-backend/internal/server"
	"art-gallery-backend/internal/services"
	"art-gallery-backend/internal/storage"
	"art-gallery-backend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const (
	testBaseURL     = "http://localhost:8000"
	testMaxFileSize = 1 << 20
)

type testApp struct {
	router    *gin.Engine
	repo      *store.MockRepository
	uploadDir string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := store.NewMockRepository()
	auth, err := services.NewAuthService(repo, "handler-test-secret-key", "HS256", 30*time.Minute)
	require.NoError(t, err)

	dir := t.TempDir()
	backend, err := storage.NewLocalBackend(dir, testBaseURL)
	require.NoError(t, err)

	cfg := &config.Config{
		MaxFileSize:            testMaxFileSize,
		AllowedImageExtensions: "jpg,jpeg,png,webp",
		CORSAllowedOrigins:     "*",
	}

	router := server.NewRouter(server.Dependencies{
		Config:  cfg,
		Log:     logging.Discard(),
		Repo:    repo,
		Storage: backend,
		Auth:    auth,
	})
	return &testApp{router: router, repo: repo, uploadDir: dir}
}

func (a *testApp) do(t *testing.T, method, path, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(method, path, body)
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) doJSON(t *testing.T, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	return a.do(t, method, path, token, body, "application/json")
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// signup registers a user and returns it with a fresh token.
func (a *testApp) signup(t *testing.T, username string, role models.Role) (models.UserResponse, string) {
	t.Helper()
	w := a.doJSON(t, http.MethodPost, "/auth/register", "", models.UserCreate{
		Email:    username + "@example.com",
		Username: username,
		FullName: strings.ToUpper(username[:1]) + username[1:],
		Role:     role,
		Password: "correct horse",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	user := decode[models.UserResponse](t, w)

	w = a.doJSON(t, http.MethodPost, "/auth/login", "", models.UserLogin{Username: username, Password: "correct horse"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return user, decode[models.Token](t, w).AccessToken
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// paintingForm builds a multipart body. A nil image omits the file part.
func paintingForm(t *testing.T, fields map[string]string, filename string, img []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if img != nil {
		part, err := mw.CreateFormFile("image", filename)
		require.NoError(t, err)
		_, err = part.Write(img)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func (a *testApp) uploadPainting(t *testing.T, token string, fields map[string]string) models.PaintingResponse {
	t.Helper()
	body, ct := paintingForm(t, fields, "canvas.png", pngBytes(t, 64, 48))
	w := a.do(t, http.MethodPost, "/paintings", token, body, ct)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[models.PaintingResponse](t, w)
}

// localFile maps a public upload URL back to the file under uploadDir.
func (a *testApp) localFile(t *testing.T, rawURL string) string {
	t.Helper()
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	rel := strings.TrimPrefix(u.Path, storage.UploadsRoute+"/")
	return filepath.Join(a.uploadDir, filepath.FromSlash(rel))
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func idPath(prefix string, id int64) string {
	return fmt.Sprintf("%s/%d", prefix, id)
}
