package services

import (
	"context"

	"art-gallery-backend/internal/apperr"
	"art-gallery-backend/internal/models"
	"art-gallery-backend/internal/store"
)

type UserService struct {
	repo store.Repository
}

func NewUserService(repo store.Repository) *UserService {
	return &UserService{repo: repo}
}

// CreateUser registers a new account. Role defaults to enthusiast.
func (s *UserService) CreateUser(ctx context.Context, in models.UserCreate) (*models.User, error) {
	if err := s.ensureEmailFree(ctx, in.Email, 0); err != nil {
		return nil, err
	}
	if err := s.ensureUsernameFree(ctx, in.Username, 0); err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = models.RoleEnthusiast
	}
	if !role.Valid() {
		return nil, apperr.Validation("role must be artist or enthusiast")
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:          in.Email,
		Username:       in.Username,
		FullName:       in.FullName,
		HashedPassword: hash,
		Role:           role,
		IsActive:       true,
		Bio:            in.Bio,
	}
	// the unique constraints still catch a concurrent registration
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.repo.GetUserByUsername(ctx, username)
}

// UpdateUser applies only the non-nil fields of in.
func (s *UserService) UpdateUser(ctx context.Context, id int64, in models.UserUpdate) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Email != nil && *in.Email != user.Email {
		if err := s.ensureEmailFree(ctx, *in.Email, id); err != nil {
			return nil, err
		}
		user.Email = *in.Email
	}
	if in.Username != nil && *in.Username != user.Username {
		if err := s.ensureUsernameFree(ctx, *in.Username, id); err != nil {
			return nil, err
		}
		user.Username = *in.Username
	}
	if in.FullName != nil {
		user.FullName = *in.FullName
	}
	if in.Bio != nil {
		user.Bio = in.Bio
	}
	if in.ProfilePicture != nil {
		user.ProfilePicture = in.ProfilePicture
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ensureEmailFree(ctx context.Context, email string, self int64) error {
	existing, err := s.repo.GetUserByEmail(ctx, email)
	if apperr.Is(err, apperr.KindNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != self {
		return apperr.Conflict("email already registered")
	}
	return nil
}

func (s *UserService) ensureUsernameFree(ctx context.Context, username string, self int64) error {
	existing, err := s.repo.GetUserByUsername(ctx, username)
	if apperr.Is(err, apperr.KindNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != self {
		return apperr.Conflict("username already taken")
	}
	return nil
}
