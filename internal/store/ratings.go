package store

import (
	"context"

	"art-gallery-backend/internal/apperr"
	"art-gallery-backend/internal/models"
)

const ratingColumns = `id, user_id, painting_id, rating, created_at, updated_at`

// UpsertRating locks the painting row first, so concurrent raters of the same
// painting serialize and the aggregate always reflects every committed rating.
func (s *Store) UpsertRating(ctx context.Context, userID, paintingID int64, value int) (*models.Rating, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, apperr.Internal(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	var locked int64
	if err := tx.GetContext(ctx, &locked, `SELECT id FROM paintings WHERE id = $1 FOR UPDATE`, paintingID); err != nil {
		return nil, mapError(err, "painting")
	}

	var r models.Rating
	err = tx.GetContext(ctx, &r, `
		INSERT INTO ratings (user_id, painting_id, rating)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, painting_id)
		DO UPDATE SET rating = EXCLUDED.rating, updated_at = NOW()
		RETURNING `+ratingColumns, userID, paintingID, value)
	if err != nil {
		return nil, mapError(err, "rating")
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE paintings
		SET average_rating = COALESCE((SELECT ROUND(AVG(rating)::numeric, 2) FROM ratings WHERE painting_id = $1), 0),
		    rating_count = (SELECT COUNT(*) FROM ratings WHERE painting_id = $1)
		WHERE id = $1
	`, paintingID)
	if err != nil {
		return nil, mapError(err, "painting")
	}

	if err := tx.Commit(); err != nil {
		return nil, apperr.Internal(err, "failed to commit rating")
	}
	return &r, nil
}

func (s *Store) GetRating(ctx context.Context, userID, paintingID int64) (*models.Rating, error) {
	var r models.Rating
	err := s.db.GetContext(ctx, &r,
		`SELECT `+ratingColumns+` FROM ratings WHERE user_id = $1 AND painting_id = $2`, userID, paintingID)
	if err != nil {
		return nil, mapError(err, "rating")
	}
	users, err := s.usersByID(ctx, []int64{r.UserID})
	if err != nil {
		return nil, err
	}
	r.User = users[r.UserID]
	return &r, nil
}
