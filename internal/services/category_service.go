package services

import (
	"context"
	"time"

	"art-gallery-backend/internal/apperr"
	"art-gallery-backend/internal/cache"
	"art-gallery-backend/internal/models"
	"art-gallery-backend/internal/store"

	"github.com/sirupsen/logrus"
)

const (
	categoryListKey = "categories:all"
	categoryListTTL = 5 * time.Minute
)

type CategoryService struct {
	repo  store.Repository
	cache cache.Cache
	log   logrus.FieldLogger
}

func NewCategoryService(repo store.Repository, c cache.Cache, log logrus.FieldLogger) *CategoryService {
	if c == nil {
		c = cache.Nop{}
	}
	return &CategoryService{repo: repo, cache: c, log: log}
}

func (s *CategoryService) CreateCategory(ctx context.Context, in models.CategoryCreate) (*models.Category, error) {
	if _, err := s.repo.GetCategoryByName(ctx, in.Name); err == nil {
		return nil, apperr.Conflict("category already exists")
	} else if !apperr.Is(err, apperr.KindNotFound) {
		return nil, err
	}

	category := &models.Category{Name: in.Name, Description: in.Description}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}

	if err := s.cache.Delete(ctx, categoryListKey); err != nil {
		s.log.WithError(err).Warn("failed to invalidate category cache")
	}
	return category, nil
}

// ListCategories serves from the cache when it can. Cache failures fall
// through to the database.
func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cached []models.Category
	hit, err := s.cache.Get(ctx, categoryListKey, &cached)
	if err != nil {
		s.log.WithError(err).Warn("failed to read category cache")
	}
	if hit {
		return cached, nil
	}

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, categoryListKey, categories, categoryListTTL); err != nil {
		s.log.WithError(err).Warn("failed to populate category cache")
	}
	return categories, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	return s.repo.GetCategory(ctx, id)
}
