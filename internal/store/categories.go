package store

import (
	"context"

	"art-gallery-backend/internal/models"

	"github.com/lib/pq"
)

const categoryColumns = `id, name, description, created_at`

func (s *Store) CreateCategory(ctx context.Context, c *models.Category) error {
	err := s.db.QueryRowxContext(ctx,
		`INSERT INTO categories (name, description) VALUES ($1, $2) RETURNING id, created_at`,
		c.Name, c.Description,
	).Scan(&c.ID, &c.CreatedAt)
	return mapError(err, "category")
}

func (s *Store) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	var c models.Category
	if err := s.db.GetContext(ctx, &c, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id); err != nil {
		return nil, mapError(err, "category")
	}
	return &c, nil
}

func (s *Store) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	var c models.Category
	if err := s.db.GetContext(ctx, &c, `SELECT `+categoryColumns+` FROM categories WHERE name = $1`, name); err != nil {
		return nil, mapError(err, "category")
	}
	return &c, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	if err := s.db.SelectContext(ctx, &categories, `SELECT `+categoryColumns+` FROM categories ORDER BY name, id`); err != nil {
		return nil, mapError(err, "category")
	}
	return categories, nil
}

func (s *Store) categoriesByID(ctx context.Context, ids []int64) (map[int64]*models.Category, error) {
	out := make(map[int64]*models.Category, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var categories []models.Category
	if err := s.db.SelectContext(ctx, &categories,
		`SELECT `+categoryColumns+` FROM categories WHERE id = ANY($1)`, pq.Array(ids)); err != nil {
		return nil, mapError(err, "category")
	}
	for i := range categories {
		out[categories[i].ID] = &categories[i]
	}
	return out, nil
}
