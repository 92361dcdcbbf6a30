package handlers

import (
	"net/http"
	"strconv"

	"art-gallery-backend/internal/apperr"
	"art-gallery-backend/internal/middleware"
	"art-gallery-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindTooLarge:
		return http.StatusRequestEntityTooLarge
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindAuth:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as an ErrorResponse. Internal causes are logged and
// replaced with a generic message.
func respondError(c *gin.Context, log logrus.FieldLogger, err error) {
	kind := apperr.KindOf(err)
	status := statusFor(kind)

	if status == http.StatusInternalServerError {
		log.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Error("request failed")
	}
	if kind == apperr.KindAuth {
		c.Header("WWW-Authenticate", "Bearer")
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, models.ErrorResponse{Error: apperr.Message(err)})
}

// bindError wraps a gin binding failure so it renders as a 400.
func bindError(err error) error {
	return apperr.Validation("%s", err.Error())
}

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, apperr.Validation("%s must be a positive integer", name)
	}
	return id, nil
}

// currentUser reads the id AuthMiddleware stored for the caller.
func currentUser(c *gin.Context) (int64, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return 0, apperr.Unauthorized("could not validate credentials")
	}
	return id, nil
}
