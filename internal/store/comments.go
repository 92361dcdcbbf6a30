package store

import (
	"context"

	"art-gallery-backend/internal/models"
)

const commentColumns = `id, user_id, painting_id, content, parent_id, is_approved, created_at, updated_at`

func (s *Store) CreateComment(ctx context.Context, c *models.Comment) error {
	query, args, err := s.db.BindNamed(`
		INSERT INTO comments (user_id, painting_id, content, parent_id, is_approved)
		VALUES (:user_id, :painting_id, :content, :parent_id, :is_approved)
		RETURNING id, created_at
	`, c)
	if err != nil {
		return mapError(err, "comment")
	}
	return mapError(s.db.QueryRowxContext(ctx, query, args...).Scan(&c.ID, &c.CreatedAt), "comment")
}

func (s *Store) GetComment(ctx context.Context, id int64) (*models.Comment, error) {
	var c models.Comment
	if err := s.db.GetContext(ctx, &c, `SELECT `+commentColumns+` FROM comments WHERE id = $1`, id); err != nil {
		return nil, mapError(err, "comment")
	}
	return &c, nil
}

// ListComments returns approved comments oldest first, authors attached.
func (s *Store) ListComments(ctx context.Context, params CommentListParams) ([]models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE painting_id = $1 AND is_approved = TRUE`
	args := []interface{}{params.PaintingID}
	if params.ParentID == nil {
		query += ` AND parent_id IS NULL ORDER BY created_at ASC, id ASC LIMIT $2 OFFSET $3`
	} else {
		query += ` AND parent_id = $2 ORDER BY created_at ASC, id ASC LIMIT $3 OFFSET $4`
		args = append(args, *params.ParentID)
	}
	args = append(args, params.Limit, params.Offset)

	comments := []models.Comment{}
	if err := s.db.SelectContext(ctx, &comments, query, args...); err != nil {
		return nil, mapError(err, "comment")
	}

	ids := make([]int64, len(comments))
	for i, c := range comments {
		ids[i] = c.UserID
	}
	users, err := s.usersByID(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, err
	}
	for i := range comments {
		comments[i].User = users[comments[i].UserID]
	}
	return comments, nil
}

func (s *Store) UpdateComment(ctx context.Context, c *models.Comment) error {
	err := s.db.QueryRowxContext(ctx,
		`UPDATE comments SET content = $1, updated_at = NOW() WHERE id = $2 RETURNING updated_at`,
		c.Content, c.ID,
	).Scan(&c.UpdatedAt)
	return mapError(err, "comment")
}

func (s *Store) DeleteComment(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "comment")
	}
	return expectAffected(res, "comment")
}
