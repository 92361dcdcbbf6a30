package models

import (
	"fmt"
	"strings"
)

type UserCreate struct {
	Email    string  `json:"email" binding:"required,email" example:"artist@example.com"`
	Username string  `json:"username" binding:"required,max=50" example:"monet"`
	FullName string  `json:"full_name" binding:"required" example:"Claude Monet"`
	Role     Role    `json:"role" binding:"omitempty,oneof=artist enthusiast" example:"artist"`
	Bio      *string `json:"bio,omitempty"`
	Password string  `json:"password" binding:"required,min=8" example:"water-lilies"`
}

// UserUpdate carries a partial profile update. Nil fields are left untouched.
type UserUpdate struct {
	Email          *string `json:"email,omitempty" binding:"omitempty,email"`
	Username       *string `json:"username,omitempty" binding:"omitempty,min=1,max=50"`
	FullName       *string `json:"full_name,omitempty" binding:"omitempty,min=1"`
	Bio            *string `json:"bio,omitempty"`
	ProfilePicture *string `json:"profile_picture,omitempty"`
}

// UserLogin accepts a JSON body or an OAuth2 password-grant form.
type UserLogin struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type CategoryCreate struct {
	Name        string  `json:"name" binding:"required,max=100" example:"Impressionism"`
	Description *string `json:"description,omitempty"`
}

// PaintingCreate is bound from the multipart form that also carries the image.
type PaintingCreate struct {
	Title       string   `form:"title" binding:"required,max=200"`
	Description *string  `form:"description"`
	CategoryID  *int64   `form:"category_id"`
	Price       *float64 `form:"price" binding:"omitempty,min=0"`
	YearCreated *int     `form:"year_created"`
	Dimensions  *string  `form:"dimensions"`
	Medium      *string  `form:"medium"`
	Tags        *string  `form:"tags"`
}

type PaintingUpdate struct {
	Title       *string         `json:"title,omitempty" binding:"omitempty,min=1,max=200"`
	Description *string         `json:"description,omitempty"`
	CategoryID  *int64          `json:"category_id,omitempty"`
	Price       *float64        `json:"price,omitempty" binding:"omitempty,min=0"`
	YearCreated *int            `json:"year_created,omitempty"`
	Dimensions  *string         `json:"dimensions,omitempty"`
	Medium      *string         `json:"medium,omitempty"`
	Status      *PaintingStatus `json:"status,omitempty" binding:"omitempty,oneof=draft published archived"`
	Tags        *string         `json:"tags,omitempty"`
}

func (u PaintingUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.CategoryID == nil && u.Price == nil &&
		u.YearCreated == nil && u.Dimensions == nil && u.Medium == nil && u.Status == nil && u.Tags == nil
}

type RatingCreate struct {
	PaintingID int64 `json:"painting_id" binding:"required"`
	Rating     int   `json:"rating" binding:"required,min=1,max=5" example:"4"`
}

type CommentCreate struct {
	PaintingID int64  `json:"painting_id" binding:"required"`
	Content    string `json:"content" binding:"required,max=5000"`
	ParentID   *int64 `json:"parent_id,omitempty"`
}

type CommentUpdate struct {
	Content string `json:"content" binding:"required,max=5000"`
}

// PaintingFilters are applied conjunctively; nil means "no constraint".
type PaintingFilters struct {
	CategoryID  *int64   `form:"category_id"`
	MinPrice    *float64 `form:"min_price"`
	MaxPrice    *float64 `form:"max_price"`
	YearCreated *int     `form:"year_created"`
	ArtistID    *int64   `form:"artist_id"`
	MinRating   *float64 `form:"min_rating"`
	Tags        *string  `form:"tags"`
	Search      *string  `form:"search"`
}

type SortOption string

const (
	SortNewest     SortOption = "newest"
	SortOldest     SortOption = "oldest"
	SortPriceLow   SortOption = "price_low"
	SortPriceHigh  SortOption = "price_high"
	SortRatingHigh SortOption = "rating_high"
	SortRatingLow  SortOption = "rating_low"
	SortMostViewed SortOption = "most_viewed"
	SortTitleAZ    SortOption = "title_az"
	SortTitleZA    SortOption = "title_za"
)

var sortOptions = []SortOption{
	SortNewest, SortOldest, SortPriceLow, SortPriceHigh, SortRatingHigh,
	SortRatingLow, SortMostViewed, SortTitleAZ, SortTitleZA,
}

// ParseSortOption maps the sort_by query value; empty means newest.
func ParseSortOption(raw string) (SortOption, error) {
	if raw == "" {
		return SortNewest, nil
	}
	for _, opt := range sortOptions {
		if string(opt) == raw {
			return opt, nil
		}
	}
	names := make([]string, len(sortOptions))
	for i, opt := range sortOptions {
		names[i] = string(opt)
	}
	return "", fmt.Errorf("sort_by must be one of %s", strings.Join(names, ", "))
}

type PaintingQuery struct {
	Pagination
	PaintingFilters
	SortBy string `form:"sort_by"`
}

type CommentQuery struct {
	Skip     int    `form:"skip,default=0" binding:"min=0"`
	Limit    int    `form:"limit,default=20" binding:"min=1,max=50"`
	ParentID *int64 `form:"parent_id"`
}
