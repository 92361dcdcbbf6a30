package middleware

import (
	"net/http"
	"strings"

	"art-gallery-backend/internal/apperr"
	"art-gallery-backend/internal/logging"
	"art-gallery-backend/internal/models"
	"art-gallery-backend/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	UserIDKey   = logging.UserIDKey
	UsernameKey = "username"
	RoleKey     = "user_role"
)

type TokenParser interface {
	ParseToken(token string) (*services.Claims, error)
}

func unauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
		Error:   "unauthorized",
		Message: message,
	})
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// AuthMiddleware requires a valid bearer token and stores the caller's id,
// username and role in the gin context.
func AuthMiddleware(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "missing authorization header")
			return
		}

		tokenString, ok := bearerToken(authHeader)
		if !ok {
			unauthorized(c, "invalid authorization header format")
			return
		}

		claims, err := parser.ParseToken(tokenString)
		if err != nil {
			unauthorized(c, apperr.Message(err))
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			unauthorized(c, apperr.Message(err))
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(UsernameKey, claims.Username)
		c.Set(RoleKey, claims.Role)
		c.Next()
	}
}

// RequireRole must run after AuthMiddleware.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if got, _ := Role(c); got != role {
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{
				Error:   "forbidden",
				Message: "only users with the " + string(role) + " role can perform this action",
			})
			return
		}
		c.Next()
	}
}

func UserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func Role(c *gin.Context) (models.Role, bool) {
	v, ok := c.Get(RoleKey)
	if !ok {
		return "", false
	}
	role, ok := v.(models.Role)
	return role, ok
}
