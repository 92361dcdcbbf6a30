package store

import (
	"context"
	"fmt"
	"strings"

	"art-gallery-backend/internal/models"
)

const paintingColumns = `id, title, description, artist_id, category_id, image_url, thumbnail_url, price,
	year_created, dimensions, medium, status, view_count, average_rating, rating_count, tags, created_at, updated_at`

// paintingOrder always ends in an id tiebreaker so offset pages never overlap.
var paintingOrder = map[models.SortOption]string{
	models.SortNewest:     "created_at DESC, id DESC",
	models.SortOldest:     "created_at ASC, id ASC",
	models.SortPriceLow:   "price ASC NULLS LAST, id ASC",
	models.SortPriceHigh:  "price DESC NULLS LAST, id DESC",
	models.SortRatingHigh: "average_rating DESC, id DESC",
	models.SortRatingLow:  "average_rating ASC, id ASC",
	models.SortMostViewed: "view_count DESC, id DESC",
	models.SortTitleAZ:    "title ASC, id ASC",
	models.SortTitleZA:    "title DESC, id DESC",
}

func orderClause(sort models.SortOption) string {
	if clause, ok := paintingOrder[sort]; ok {
		return clause
	}
	return paintingOrder[models.SortNewest]
}

// whereClause renders the conjunctive listing filters. Placeholders are
// numbered from 1 in the order args are returned.
func whereClause(f models.PaintingFilters) (string, []interface{}) {
	var conds []string
	var args []interface{}
	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", len(args))))
	}

	if f.CategoryID != nil {
		add("category_id = ?", *f.CategoryID)
	}
	if f.ArtistID != nil {
		add("artist_id = ?", *f.ArtistID)
	}
	if f.MinPrice != nil {
		add("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		add("price <= ?", *f.MaxPrice)
	}
	if f.YearCreated != nil {
		add("year_created = ?", *f.YearCreated)
	}
	if f.MinRating != nil {
		add("average_rating >= ?", *f.MinRating)
	}
	if f.Tags != nil && *f.Tags != "" {
		add("tags LIKE ?", "%"+escapeLike(*f.Tags)+"%")
	}
	if f.Search != nil && *f.Search != "" {
		add("(title ILIKE ? OR description ILIKE ?)", "%"+escapeLike(*f.Search)+"%")
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (s *Store) CreatePainting(ctx context.Context, p *models.Painting) error {
	query, args, err := s.db.BindNamed(`
		INSERT INTO paintings (title, description, artist_id, category_id, image_url, thumbnail_url,
		                       price, year_created, dimensions, medium, status, tags)
		VALUES (:title, :description, :artist_id, :category_id, :image_url, :thumbnail_url,
		        :price, :year_created, :dimensions, :medium, :status, :tags)
		RETURNING id, view_count, average_rating, rating_count, created_at
	`, p)
	if err != nil {
		return mapError(err, "painting")
	}
	err = s.db.QueryRowxContext(ctx, query, args...).Scan(
		&p.ID, &p.ViewCount, &p.AverageRating, &p.RatingCount, &p.CreatedAt,
	)
	return mapError(err, "painting")
}

// GetPainting returns the painting with its artist and category attached.
func (s *Store) GetPainting(ctx context.Context, id int64) (*models.Painting, error) {
	var p models.Painting
	if err := s.db.GetContext(ctx, &p, `SELECT `+paintingColumns+` FROM paintings WHERE id = $1`, id); err != nil {
		return nil, mapError(err, "painting")
	}
	paintings := []models.Painting{p}
	if err := s.attachPaintingRelations(ctx, paintings); err != nil {
		return nil, err
	}
	return &paintings[0], nil
}

func (s *Store) ListPaintings(ctx context.Context, params PaintingListParams) ([]models.Painting, int, error) {
	where, args := whereClause(params.Filters)

	var total int
	if err := s.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM paintings`+where, args...); err != nil {
		return nil, 0, mapError(err, "painting")
	}

	n := len(args)
	query := fmt.Sprintf(`SELECT %s FROM paintings%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		paintingColumns, where, orderClause(params.Sort), n+1, n+2)
	args = append(args, params.Limit, params.Offset)

	paintings := []models.Painting{}
	if err := s.db.SelectContext(ctx, &paintings, query, args...); err != nil {
		return nil, 0, mapError(err, "painting")
	}
	if err := s.attachPaintingRelations(ctx, paintings); err != nil {
		return nil, 0, err
	}
	return paintings, total, nil
}

func (s *Store) attachPaintingRelations(ctx context.Context, paintings []models.Painting) error {
	if len(paintings) == 0 {
		return nil
	}
	artistIDs := make([]int64, 0, len(paintings))
	categoryIDs := make([]int64, 0, len(paintings))
	for _, p := range paintings {
		artistIDs = append(artistIDs, p.ArtistID)
		if p.CategoryID != nil {
			categoryIDs = append(categoryIDs, *p.CategoryID)
		}
	}

	artists, err := s.usersByID(ctx, uniqueIDs(artistIDs))
	if err != nil {
		return err
	}
	categories, err := s.categoriesByID(ctx, uniqueIDs(categoryIDs))
	if err != nil {
		return err
	}

	for i := range paintings {
		paintings[i].Artist = artists[paintings[i].ArtistID]
		if paintings[i].CategoryID != nil {
			paintings[i].Category = categories[*paintings[i].CategoryID]
		}
	}
	return nil
}

func (s *Store) UpdatePainting(ctx context.Context, p *models.Painting) error {
	query, args, err := s.db.BindNamed(`
		UPDATE paintings
		SET title = :title, description = :description, category_id = :category_id, price = :price,
		    year_created = :year_created, dimensions = :dimensions, medium = :medium,
		    status = :status, tags = :tags, updated_at = NOW()
		WHERE id = :id
		RETURNING updated_at
	`, p)
	if err != nil {
		return mapError(err, "painting")
	}
	return mapError(s.db.QueryRowxContext(ctx, query, args...).Scan(&p.UpdatedAt), "painting")
}

func (s *Store) DeletePainting(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM paintings WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "painting")
	}
	return expectAffected(res, "painting")
}

func (s *Store) IncrementViewCount(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `UPDATE paintings SET view_count = view_count + 1 WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "painting")
	}
	return expectAffected(res, "painting")
}
