package handlers

import (
	"net/http"

	"art-gallery-backend/internal/models"
	"art-gallery-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type UsersHandler struct {
	users     *services.UserService
	paintings *services.PaintingService
	log       logrus.FieldLogger
}

func NewUsersHandler(users *services.UserService, paintings *services.PaintingService, log logrus.FieldLogger) *UsersHandler {
	return &UsersHandler{users: users, paintings: paintings, log: log}
}

// GetMe godoc
// @Summary     Current user
// @Tags        users
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.UserResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /users/me [get]
func (h *UsersHandler) GetMe(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	user, err := h.users.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, models.NewUserResponse(user))
}

// UpdateMe godoc
// @Summary     Update current user
// @Description Applies a partial profile update. Omitted fields are left unchanged.
// @Tags        users
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.UserUpdate true "Fields to change"
// @Success     200 {object} models.UserResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /users/me [put]
func (h *UsersHandler) UpdateMe(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var req models.UserUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, bindError(err))
		return
	}

	user, err := h.users.UpdateUser(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, models.NewUserResponse(user))
}

// GetUser godoc
// @Summary     Get a user
// @Tags        users
// @Produce     json
// @Param       id path int true "User ID"
// @Success     200 {object} models.UserResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /users/{id} [get]
func (h *UsersHandler) GetUser(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	user, err := h.users.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, models.NewUserResponse(user))
}

// ListUserPaintings godoc
// @Summary     List an artist's paintings
// @Tags        users
// @Produce     json
// @Param       id    path  int true  "User ID"
// @Param       page  query int false "Page number" default(1)
// @Param       limit query int false "Page size (max 100)" default(10)
// @Success     200 {object} models.PaginatedResponse[models.PaintingResponse]
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /users/{id}/paintings [get]
func (h *UsersHandler) ListUserPaintings(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var page models.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		respondError(c, h.log, bindError(err))
		return
	}

	paintings, total, err := h.paintings.ListArtistPaintings(c.Request.Context(), id, page)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, models.NewPage(models.NewPaintingResponses(paintings), total, page))
}
