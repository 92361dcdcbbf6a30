package models

import "time"

type PaintingStatus string

// Creation always stores StatusPublished; the other values are reachable only
// through an explicit update.
const (
	StatusDraft     PaintingStatus = "draft"
	StatusPublished PaintingStatus = "published"
	StatusArchived  PaintingStatus = "archived"
)

func (s PaintingStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

type Category struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Description *string   `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}

type Painting struct {
	ID            int64          `db:"id"`
	Title         string         `db:"title"`
	Description   *string        `db:"description"`
	ArtistID      int64          `db:"artist_id"`
	CategoryID    *int64         `db:"category_id"`
	ImageURL      string         `db:"image_url"`
	ThumbnailURL  *string        `db:"thumbnail_url"`
	Price         *float64       `db:"price"`
	YearCreated   *int           `db:"year_created"`
	Dimensions    *string        `db:"dimensions"`
	Medium        *string        `db:"medium"`
	Status        PaintingStatus `db:"status"`
	ViewCount     int            `db:"view_count"`
	AverageRating float64        `db:"average_rating"`
	RatingCount   int            `db:"rating_count"`
	Tags          *string        `db:"tags"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     *time.Time     `db:"updated_at"`

	// Loaded alongside the row, never columns.
	Artist   *User     `db:"-"`
	Category *Category `db:"-"`
}

type Rating struct {
	ID         int64      `db:"id"`
	UserID     int64      `db:"user_id"`
	PaintingID int64      `db:"painting_id"`
	Rating     int        `db:"rating"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  *time.Time `db:"updated_at"`

	User *User `db:"-"`
}

type Comment struct {
	ID         int64      `db:"id"`
	UserID     int64      `db:"user_id"`
	PaintingID int64      `db:"painting_id"`
	Content    string     `db:"content"`
	ParentID   *int64     `db:"parent_id"`
	IsApproved bool       `db:"is_approved"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  *time.Time `db:"updated_at"`

	User *User `db:"-"`
}
