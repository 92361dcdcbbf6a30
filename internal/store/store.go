// Package store persists gallery entities. Store is the Postgres
// implementation; MockRepository keeps everything in memory for tests.
package store

import (
	"context"
	"database/sql"
	"errors"

	"art-gallery-backend/internal/apperr"
	"art-gallery-backend/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type PaintingListParams struct {
	Filters models.PaintingFilters
	Sort    models.SortOption
	Limit   int
	Offset  int
}

// CommentListParams selects approved comments of one painting. A nil ParentID
// selects top-level comments, otherwise the direct replies of that parent.
type CommentListParams struct {
	PaintingID int64
	ParentID   *int64
	Limit      int
	Offset     int
}

type Repository interface {
	Ping(ctx context.Context) error

	CreateUser(ctx context.Context, u *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error

	CreateCategory(ctx context.Context, c *models.Category) error
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)

	CreatePainting(ctx context.Context, p *models.Painting) error
	GetPainting(ctx context.Context, id int64) (*models.Painting, error)
	ListPaintings(ctx context.Context, params PaintingListParams) ([]models.Painting, int, error)
	UpdatePainting(ctx context.Context, p *models.Painting) error
	DeletePainting(ctx context.Context, id int64) error
	IncrementViewCount(ctx context.Context, id int64) error

	// UpsertRating stores the score and recomputes the painting's aggregate
	// atomically.
	UpsertRating(ctx context.Context, userID, paintingID int64, value int) (*models.Rating, error)
	GetRating(ctx context.Context, userID, paintingID int64) (*models.Rating, error)

	CreateComment(ctx context.Context, c *models.Comment) error
	GetComment(ctx context.Context, id int64) (*models.Comment, error)
	ListComments(ctx context.Context, params CommentListParams) ([]models.Comment, error)
	UpdateComment(ctx context.Context, c *models.Comment) error
	DeleteComment(ctx context.Context, id int64) error
}

type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

var _ Repository = (*Store)(nil)

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// conflictMessages names the unique constraints clients can trip.
var conflictMessages = map[string]string{
	"users_email_key":          "email already registered",
	"users_username_key":       "username already taken",
	"categories_name_key":      "category already exists",
	"uq_ratings_user_painting": "rating already exists",
}

// mapError translates driver errors into apperr kinds.
func mapError(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("%s not found", entity)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		if msg, ok := conflictMessages[pqErr.Constraint]; ok {
			return apperr.Conflict("%s", msg)
		}
		return apperr.Conflict("%s already exists", entity)
	}
	return apperr.Internal(err, "%s query failed", entity)
}

func expectAffected(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Internal(err, "%s query failed", entity)
	}
	if n == 0 {
		return apperr.NotFound("%s not found", entity)
	}
	return nil
}

// usersByID loads the given users in one round trip.
func (s *Store) usersByID(ctx context.Context, ids []int64) (map[int64]*models.User, error) {
	out := make(map[int64]*models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var users []models.User
	if err := s.db.SelectContext(ctx, &users,
		`SELECT `+userColumns+` FROM users WHERE id = ANY($1)`, pq.Array(ids)); err != nil {
		return nil, mapError(err, "user")
	}
	for i := range users {
		out[users[i].ID] = &users[i]
	}
	return out, nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
