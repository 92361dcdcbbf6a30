package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"art-gallery-backend/internal/apperr"
	"art-gallery-backend/internal/models"
	"art-gallery-backend/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenType = "bearer"

type Claims struct {
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

// UserID parses the numeric subject.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, apperr.Unauthorized("could not validate credentials")
	}
	return id, nil
}

type AuthService struct {
	repo   store.Repository
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
}

func NewAuthService(repo store.Repository, secret, algorithm string, ttl time.Duration) (*AuthService, error) {
	method := jwt.GetSigningMethod(algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	return &AuthService{
		repo:   repo,
		secret: []byte(secret),
		method: method,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperr.Internal(err, "failed to hash password")
	}
	return string(hash), nil
}

func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Authenticate never says which of username or password was wrong.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if apperr.Is(err, apperr.KindNotFound) {
		return nil, apperr.Unauthorized("incorrect username or password")
	}
	if err != nil {
		return nil, err
	}
	if !VerifyPassword(user.HashedPassword, password) {
		return nil, apperr.Unauthorized("incorrect username or password")
	}
	if !user.IsActive {
		return nil, apperr.Unauthorized("inactive user")
	}
	return user, nil
}

func (s *AuthService) IssueToken(user *models.User) (models.Token, error) {
	now := s.now()
	claims := Claims{
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return models.Token{}, apperr.Internal(err, "failed to sign token")
	}
	return models.Token{AccessToken: signed, TokenType: tokenType}, nil
}

func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{s.method.Alg()}), jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.Unauthorized("token has expired")
		}
		return nil, apperr.Unauthorized("could not validate credentials")
	}
	if !token.Valid || claims.Subject == "" {
		return nil, apperr.Unauthorized("could not validate credentials")
	}
	return claims, nil
}
