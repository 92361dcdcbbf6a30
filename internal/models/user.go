package models

import "time"

type Role string

const (
	RoleArtist     Role = "artist"
	RoleEnthusiast Role = "enthusiast"
)

func (r Role) Valid() bool {
	return r == RoleArtist || r == RoleEnthusiast
}

type User struct {
	ID             int64      `db:"id"`
	Email          string     `db:"email"`
	Username       string     `db:"username"`
	FullName       string     `db:"full_name"`
	HashedPassword string     `db:"hashed_password"`
	Role           Role       `db:"role"`
	IsActive       bool       `db:"is_active"`
	Bio            *string    `db:"bio"`
	ProfilePicture *string    `db:"profile_picture"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      *time.Time `db:"updated_at"`
}
