package handlers

import (
	"net/http"

	"art-gallery-backend/internal/models"
	"art-gallery-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	users *services.UserService
	auth  *services.AuthService
	log   logrus.FieldLogger
}

func NewAuthHandler(users *services.UserService, auth *services.AuthService, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{users: users, auth: auth, log: log}
}

// Register godoc
// @Summary     Register a new user
// @Description Creates an artist or enthusiast account. Role defaults to enthusiast.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body models.UserCreate true "Account details"
// @Success     201 {object} models.UserResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.UserCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, bindError(err))
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.log.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("user registered")
	c.JSON(http.StatusCreated, models.NewUserResponse(user))
}

// Login godoc
// @Summary     Log in
// @Description Exchanges a username and password for a bearer token. Accepts JSON or an OAuth2 password form.
// @Tags        auth
// @Accept      json,x-www-form-urlencoded
// @Produce     json
// @Param       request body models.UserLogin true "Credentials"
// @Success     200 {object} models.Token
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.UserLogin
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, h.log, bindError(err))
		return
	}

	user, err := h.auth.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	token, err := h.auth.IssueToken(user)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, token)
}
