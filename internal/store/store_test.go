package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"art-gallery-backend/internal/apperr"
	"art-gallery-backend/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(sqlx.NewDb(db, "postgres")), mock
}

func int64Ptr(v int64) *int64       { return &v }
func float64Ptr(v float64) *float64 { return &v }
func strPtr(v string) *string       { return &v }

func TestWhereClause_NoFilters(t *testing.T) {
	where, args := whereClause(models.PaintingFilters{})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestWhereClause_NumbersPlaceholdersInOrder(t *testing.T) {
	where, args := whereClause(models.PaintingFilters{
		CategoryID: int64Ptr(3),
		MinPrice:   float64Ptr(10),
		MaxPrice:   float64Ptr(500),
		Search:     strPtr("Sun_set"),
	})

	assert.Equal(t,
		" WHERE category_id = $1 AND price >= $2 AND price <= $3 AND (title ILIKE $4 OR description ILIKE $4)",
		where)
	assert.Equal(t, []interface{}{int64(3), float64(10), float64(500), `%Sun\_set%`}, args)
}

func TestWhereClause_EmptyStringsIgnored(t *testing.T) {
	where, _ := whereClause(models.PaintingFilters{Tags: strPtr(""), Search: strPtr("")})
	assert.Empty(t, where)
}

func TestOrderClause_AlwaysEndsWithIDTiebreaker(t *testing.T) {
	for opt, clause := range paintingOrder {
		assert.True(t, strings.HasSuffix(clause, "id ASC") || strings.HasSuffix(clause, "id DESC"), "sort %s", opt)
	}
	assert.Equal(t, paintingOrder[models.SortNewest], orderClause("unknown"))
	assert.Contains(t, orderClause(models.SortPriceLow), "NULLS LAST")
}

func TestCreateUser_UniqueViolationMapsToConflict(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	err := s.CreateUser(context.Background(), &models.User{Email: "a@b.c", Username: "a", Role: models.RoleArtist})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindConflict))
	assert.Equal(t, "email already registered", apperr.Message(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_ReturnsGeneratedID(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("a@b.c", "a", "A", "hash", models.RoleArtist, true, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(9), now))

	u := &models.User{Email: "a@b.c", Username: "a", FullName: "A", HashedPassword: "hash", Role: models.RoleArtist, IsActive: true}
	require.NoError(t, s.CreateUser(context.Background(), u))
	assert.Equal(t, int64(9), u.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPainting_AbsentIsNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT .+ FROM paintings WHERE id = \$1`).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := s.GetPainting(context.Background(), 42)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPaintings_BatchLoadsRelations(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM paintings WHERE artist_id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`FROM paintings WHERE artist_id = \$1 ORDER BY created_at DESC, id DESC LIMIT \$2 OFFSET \$3`).
		WithArgs(int64(7), 10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "artist_id", "category_id", "image_url", "status", "created_at"}).
			AddRow(int64(2), "Second", int64(7), int64(1), "/uploads/paintings/b.png", "published", now).
			AddRow(int64(1), "First", int64(7), nil, "/uploads/paintings/a.png", "published", now))
	mock.ExpectQuery(`FROM users WHERE id = ANY\(\$1\)`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "role", "created_at"}).
			AddRow(int64(7), "monet", "artist", now))
	mock.ExpectQuery(`FROM categories WHERE id = ANY\(\$1\)`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}).
			AddRow(int64(1), "Impressionism", now))

	paintings, total, err := s.ListPaintings(context.Background(), PaintingListParams{
		Filters: models.PaintingFilters{ArtistID: int64Ptr(7)},
		Sort:    models.SortNewest,
		Limit:   10,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, paintings, 2)
	assert.Equal(t, "monet", paintings[0].Artist.Username)
	assert.Equal(t, "Impressionism", paintings[0].Category.Name)
	assert.Nil(t, paintings[1].Category)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertRating_RunsInOneTransaction(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM paintings WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))
	mock.ExpectQuery(`INSERT INTO ratings .+ ON CONFLICT \(user_id, painting_id\)`).
		WithArgs(int64(3), int64(5), 4).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "painting_id", "rating", "created_at", "updated_at"}).
			AddRow(int64(1), int64(3), int64(5), 4, now, nil))
	mock.ExpectExec(`UPDATE paintings\s+SET average_rating = .+ROUND\(AVG\(rating\)`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	r, err := s.UpsertRating(context.Background(), 3, 5, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, r.Rating)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertRating_MissingPaintingRollsBack(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := s.UpsertRating(context.Background(), 3, 99, 4)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeletePainting_NoRowsIsNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`DELETE FROM paintings WHERE id = \$1`).
		WithArgs(int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.DeletePainting(context.Background(), 8)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListComments_RepliesFilterByParent(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`FROM comments WHERE painting_id = \$1 AND is_approved = TRUE AND parent_id = \$2 ORDER BY created_at ASC, id ASC LIMIT \$3 OFFSET \$4`).
		WithArgs(int64(5), int64(11), 20, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "painting_id", "content"}))

	comments, err := s.ListComments(context.Background(), CommentListParams{PaintingID: 5, ParentID: int64Ptr(11), Limit: 20})
	require.NoError(t, err)
	assert.Empty(t, comments)
	assert.NoError(t, mock.ExpectationsWereMet())
}
