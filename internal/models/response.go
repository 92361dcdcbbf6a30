package models

import "time"

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type ServiceInfo struct {
	Message string `json:"message"`
	Version string `json:"version"`
	Docs    string `json:"docs"`
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type UserResponse struct {
	ID             int64      `json:"id"`
	Email          string     `json:"email"`
	Username       string     `json:"username"`
	FullName       string     `json:"full_name"`
	Role           Role       `json:"role"`
	Bio            *string    `json:"bio"`
	IsActive       bool       `json:"is_active"`
	ProfilePicture *string    `json:"profile_picture"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"`
}

type CategoryResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type PaintingResponse struct {
	ID            int64             `json:"id"`
	Title         string            `json:"title"`
	Description   *string           `json:"description"`
	CategoryID    *int64            `json:"category_id"`
	Price         *float64          `json:"price"`
	YearCreated   *int              `json:"year_created"`
	Dimensions    *string           `json:"dimensions"`
	Medium        *string           `json:"medium"`
	Tags          *string           `json:"tags"`
	ArtistID      int64             `json:"artist_id"`
	ImageURL      string            `json:"image_url"`
	ThumbnailURL  *string           `json:"thumbnail_url"`
	Status        PaintingStatus    `json:"status"`
	ViewCount     int               `json:"view_count"`
	AverageRating float64           `json:"average_rating"`
	RatingCount   int               `json:"rating_count"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     *time.Time        `json:"updated_at"`
	Artist        *UserResponse     `json:"artist"`
	Category      *CategoryResponse `json:"category"`
}

type RatingResponse struct {
	ID         int64         `json:"id"`
	Rating     int           `json:"rating"`
	UserID     int64         `json:"user_id"`
	PaintingID int64         `json:"painting_id"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  *time.Time    `json:"updated_at"`
	User       *UserResponse `json:"user"`
}

type CommentResponse struct {
	ID         int64             `json:"id"`
	Content    string            `json:"content"`
	ParentID   *int64            `json:"parent_id"`
	UserID     int64             `json:"user_id"`
	PaintingID int64             `json:"painting_id"`
	IsApproved bool              `json:"is_approved"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  *time.Time        `json:"updated_at"`
	User       *UserResponse     `json:"user"`
	Replies    []CommentResponse `json:"replies"`
}

func NewUserResponse(u *User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:             u.ID,
		Email:          u.Email,
		Username:       u.Username,
		FullName:       u.FullName,
		Role:           u.Role,
		Bio:            u.Bio,
		IsActive:       u.IsActive,
		ProfilePicture: u.ProfilePicture,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func NewCategoryResponse(c *Category) *CategoryResponse {
	if c == nil {
		return nil
	}
	return &CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

func NewCategoryResponses(categories []Category) []CategoryResponse {
	out := make([]CategoryResponse, len(categories))
	for i := range categories {
		out[i] = *NewCategoryResponse(&categories[i])
	}
	return out
}

func NewPaintingResponse(p *Painting) PaintingResponse {
	return PaintingResponse{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		CategoryID:    p.CategoryID,
		Price:         p.Price,
		YearCreated:   p.YearCreated,
		Dimensions:    p.Dimensions,
		Medium:        p.Medium,
		Tags:          p.Tags,
		ArtistID:      p.ArtistID,
		ImageURL:      p.ImageURL,
		ThumbnailURL:  p.ThumbnailURL,
		Status:        p.Status,
		ViewCount:     p.ViewCount,
		AverageRating: p.AverageRating,
		RatingCount:   p.RatingCount,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Artist:        NewUserResponse(p.Artist),
		Category:      NewCategoryResponse(p.Category),
	}
}

func NewPaintingResponses(paintings []Painting) []PaintingResponse {
	out := make([]PaintingResponse, len(paintings))
	for i := range paintings {
		out[i] = NewPaintingResponse(&paintings[i])
	}
	return out
}

func NewRatingResponse(r *Rating) RatingResponse {
	return RatingResponse{
		ID:         r.ID,
		Rating:     r.Rating,
		UserID:     r.UserID,
		PaintingID: r.PaintingID,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
		User:       NewUserResponse(r.User),
	}
}

// NewCommentResponse never populates Replies; replies are fetched with their
// own listing call.
func NewCommentResponse(c *Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		Content:    c.Content,
		ParentID:   c.ParentID,
		UserID:     c.UserID,
		PaintingID: c.PaintingID,
		IsApproved: c.IsApproved,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
		User:       NewUserResponse(c.User),
		Replies:    []CommentResponse{},
	}
}

func NewCommentResponses(comments []Comment) []CommentResponse {
	out := make([]CommentResponse, len(comments))
	for i := range comments {
		out[i] = NewCommentResponse(&comments[i])
	}
	return out
}
