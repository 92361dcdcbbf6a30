package services

import (
	"context"

	"art-gallery-backend/internal/apperr"
	"art-gallery-backend/internal/models"
	"art-gallery-backend/internal/store"
)

const (
	minRating = 1
	maxRating = 5
)

type RatingService struct {
	repo store.Repository
}

func NewRatingService(repo store.Repository) *RatingService {
	return &RatingService{repo: repo}
}

// UpsertRating creates or replaces userID's score for the painting. Artists
// cannot rate their own work.
func (s *RatingService) UpsertRating(ctx context.Context, userID int64, in models.RatingCreate) (*models.Rating, error) {
	if in.Rating < minRating || in.Rating > maxRating {
		return nil, apperr.Validation("rating must be between %d and %d", minRating, maxRating)
	}

	p, err := s.repo.GetPainting(ctx, in.PaintingID)
	if err != nil {
		return nil, err
	}
	if p.ArtistID == userID {
		return nil, apperr.Validation("you cannot rate your own painting")
	}

	r, err := s.repo.UpsertRating(ctx, userID, in.PaintingID, in.Rating)
	if err != nil {
		return nil, err
	}
	if user, err := s.repo.GetUserByID(ctx, userID); err == nil {
		r.User = user
	}
	return r, nil
}

func (s *RatingService) GetUserRating(ctx context.Context, userID, paintingID int64) (*models.Rating, error) {
	return s.repo.GetRating(ctx, userID, paintingID)
}
