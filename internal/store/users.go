package store

import (
	"context"

	"art-gallery-backend/internal/models"
)

const userColumns = `id, email, username, full_name, hashed_password, role, is_active, bio, profile_picture, created_at, updated_at`

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	query, args, err := s.db.BindNamed(`
		INSERT INTO users (email, username, full_name, hashed_password, role, is_active, bio, profile_picture)
		VALUES (:email, :username, :full_name, :hashed_password, :role, :is_active, :bio, :profile_picture)
		RETURNING id, created_at
	`, u)
	if err != nil {
		return mapError(err, "user")
	}
	return mapError(s.db.QueryRowxContext(ctx, query, args...).Scan(&u.ID, &u.CreatedAt), "user")
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	if err := s.db.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE id = $1`, id); err != nil {
		return nil, mapError(err, "user")
	}
	return &u, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := s.db.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE username = $1`, username); err != nil {
		return nil, mapError(err, "user")
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.db.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE email = $1`, email); err != nil {
		return nil, mapError(err, "user")
	}
	return &u, nil
}

// UpdateUser writes the profile columns of u and refreshes u.UpdatedAt.
func (s *Store) UpdateUser(ctx context.Context, u *models.User) error {
	query, args, err := s.db.BindNamed(`
		UPDATE users
		SET email = :email, username = :username, full_name = :full_name,
		    bio = :bio, profile_picture = :profile_picture, updated_at = NOW()
		WHERE id = :id
		RETURNING updated_at
	`, u)
	if err != nil {
		return mapError(err, "user")
	}
	return mapError(s.db.QueryRowxContext(ctx, query, args...).Scan(&u.UpdatedAt), "user")
}
