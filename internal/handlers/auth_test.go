package handlers_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"art-gallery-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestRegister(t *testing.T) {
	app := newTestApp(t)

	user, _ := app.signup(t, "monet", models.RoleArtist)
	assert.Equal(t, "monet", user.Username)
	assert.Equal(t, models.RoleArtist, user.Role)
	assert.True(t, user.IsActive)

	w := app.doJSON(t, http.MethodPost, "/auth/register", "", models.UserCreate{
		Email: "monet@example.com", Username: "claude", FullName: "C", Password: "12345678",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "email already registered")
}

func TestRegister_DefaultsToEnthusiast(t *testing.T) {
	app := newTestApp(t)
	user, _ := app.signup(t, "collector", "")
	assert.Equal(t, models.RoleEnthusiast, user.Role)
}

func TestRegister_ValidationErrors(t *testing.T) {
	app := newTestApp(t)

	cases := map[string]models.UserCreate{
		"bad email":      {Email: "nope", Username: "a", FullName: "A", Password: "12345678"},
		"short password": {Email: "a@example.com", Username: "a", FullName: "A", Password: "123"},
		"unknown role":   {Email: "a@example.com", Username: "a", FullName: "A", Password: "12345678", Role: "curator"},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			w := app.doJSON(t, http.MethodPost, "/auth/register", "", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	app := newTestApp(t)
	app.signup(t, "renoir", models.RoleArtist)

	w := app.doJSON(t, http.MethodPost, "/auth/login", "", models.UserLogin{Username: "renoir", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
	assert.Contains(t, w.Body.String(), "incorrect username or password")
}

func TestLogin_PasswordForm(t *testing.T) {
	app := newTestApp(t)
	app.signup(t, "sisley", models.RoleArtist)

	form := url.Values{"username": {"sisley"}, "password": {"correct horse"}}
	w := app.do(t, http.MethodPost, "/auth/login", "", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	assert.Equal(t, http.StatusOK, w.Code)
	token := decode[models.Token](t, w)
	assert.Equal(t, "bearer", token.TokenType)
	assert.NotEmpty(t, token.AccessToken)
}

func TestUsersMe(t *testing.T) {
	app := newTestApp(t)
	user, token := app.signup(t, "morisot", models.RoleArtist)

	w := app.do(t, http.MethodGet, "/users/me", "", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodGet, "/users/me", token, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, user.ID, decode[models.UserResponse](t, w).ID)

	bio := "painter of everyday life"
	w = app.doJSON(t, http.MethodPut, "/users/me", token, models.UserUpdate{Bio: &bio})
	assert.Equal(t, http.StatusOK, w.Code)
	updated := decode[models.UserResponse](t, w)
	assert.Equal(t, bio, *updated.Bio)
	assert.Equal(t, "morisot", updated.Username)
}

func TestGetUser(t *testing.T) {
	app := newTestApp(t)
	user, _ := app.signup(t, "pissarro", models.RoleArtist)

	w := app.do(t, http.MethodGet, idPath("/users", user.ID), "", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pissarro", decode[models.UserResponse](t, w).Username)

	w = app.do(t, http.MethodGet, "/users/999", "", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(t, http.MethodGet, "/users/abc", "", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
