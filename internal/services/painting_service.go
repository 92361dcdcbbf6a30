package services

import (
	"context"

	"art-gallery-backend/internal/apperr"
	"art-gallery-backend/internal/models"
	"art-gallery-backend/internal/store"

	"github.com/sirupsen/logrus"
)

type PaintingService struct {
	repo store.Repository
	log  logrus.FieldLogger
}

func NewPaintingService(repo store.Repository, log logrus.FieldLogger) *PaintingService {
	return &PaintingService{repo: repo, log: log}
}

func paintingNotFound() error {
	return apperr.NotFound("painting not found")
}

// CreatePainting stores a new painting. New paintings are always published.
func (s *PaintingService) CreatePainting(ctx context.Context, in models.PaintingCreate, artistID int64, imageURL, thumbnailURL string) (*models.Painting, error) {
	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	p := &models.Painting{
		Title:       in.Title,
		Description: in.Description,
		ArtistID:    artistID,
		CategoryID:  in.CategoryID,
		ImageURL:    imageURL,
		Price:       in.Price,
		YearCreated: in.YearCreated,
		Dimensions:  in.Dimensions,
		Medium:      in.Medium,
		Status:      models.StatusPublished,
		Tags:        in.Tags,
	}
	if thumbnailURL != "" {
		p.ThumbnailURL = &thumbnailURL
	}

	if err := s.repo.CreatePainting(ctx, p); err != nil {
		return nil, err
	}
	return s.repo.GetPainting(ctx, p.ID)
}

func (s *PaintingService) checkCategory(ctx context.Context, id *int64) error {
	if id == nil {
		return nil
	}
	_, err := s.repo.GetCategory(ctx, *id)
	if apperr.Is(err, apperr.KindNotFound) {
		return apperr.Validation("category %d does not exist", *id)
	}
	return err
}

func (s *PaintingService) GetPainting(ctx context.Context, id int64) (*models.Painting, error) {
	return s.repo.GetPainting(ctx, id)
}

func (s *PaintingService) ListPaintings(ctx context.Context, page models.Pagination, filters models.PaintingFilters, sort models.SortOption) ([]models.Painting, int, error) {
	if err := page.Validate(models.MaxPaintingPageLimit); err != nil {
		return nil, 0, apperr.Validation("%s", err.Error())
	}
	return s.repo.ListPaintings(ctx, store.PaintingListParams{
		Filters: filters,
		Sort:    sort,
		Limit:   page.Limit,
		Offset:  page.Offset(),
	})
}

func (s *PaintingService) ListArtistPaintings(ctx context.Context, artistID int64, page models.Pagination) ([]models.Painting, int, error) {
	if err := page.Validate(models.MaxUserPageLimit); err != nil {
		return nil, 0, apperr.Validation("%s", err.Error())
	}
	if _, err := s.repo.GetUserByID(ctx, artistID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListPaintings(ctx, store.PaintingListParams{
		Filters: models.PaintingFilters{ArtistID: &artistID},
		Sort:    models.SortNewest,
		Limit:   page.Limit,
		Offset:  page.Offset(),
	})
}

// owned loads the painting and hides it unless requesterID owns it.
func (s *PaintingService) owned(ctx context.Context, id, requesterID int64) (*models.Painting, error) {
	p, err := s.repo.GetPainting(ctx, id)
	if err != nil && !apperr.Is(err, apperr.KindNotFound) {
		return nil, err
	}
	var ownerID int64
	if p != nil {
		ownerID = p.ArtistID
	}
	if err := HideForeign(CheckOwnership(p != nil, ownerID, requesterID), paintingNotFound()); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PaintingService) UpdatePainting(ctx context.Context, id int64, in models.PaintingUpdate, requesterID int64) (*models.Painting, error) {
	p, err := s.owned(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}
	if in.Empty() {
		return p, nil
	}

	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Description != nil {
		p.Description = in.Description
	}
	if in.CategoryID != nil {
		if err := s.checkCategory(ctx, in.CategoryID); err != nil {
			return nil, err
		}
		p.CategoryID = in.CategoryID
	}
	if in.Price != nil {
		p.Price = in.Price
	}
	if in.YearCreated != nil {
		p.YearCreated = in.YearCreated
	}
	if in.Dimensions != nil {
		p.Dimensions = in.Dimensions
	}
	if in.Medium != nil {
		p.Medium = in.Medium
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, apperr.Validation("status must be draft, published or archived")
		}
		p.Status = *in.Status
	}
	if in.Tags != nil {
		p.Tags = in.Tags
	}

	if err := s.repo.UpdatePainting(ctx, p); err != nil {
		return nil, err
	}
	return s.repo.GetPainting(ctx, id)
}

// DeletePainting removes the row and returns it so the caller can delete the
// image files it referenced.
func (s *PaintingService) DeletePainting(ctx context.Context, id, requesterID int64) (*models.Painting, error) {
	p, err := s.owned(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.DeletePainting(ctx, id); err != nil {
		return nil, err
	}
	return p, nil
}

// IncrementViewCount is best-effort; a failure is logged and reported as false.
func (s *PaintingService) IncrementViewCount(ctx context.Context, id int64) bool {
	if err := s.repo.IncrementViewCount(ctx, id); err != nil {
		s.log.WithError(err).WithField("painting_id", id).Warn("failed to increment view count")
		return false
	}
	return true
}
