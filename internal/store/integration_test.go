//go:build integration
// +build integration

package store_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"art-gallery-backend/internal/apperr"
	"art-gallery-backend/internal/database"
	"art-gallery-backend/internal/logging"
	"art-gallery-backend/internal/models"
	"art-gallery-backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupStore starts a PostgreSQL container, applies the migrations and
// returns a store bound to it.
func setupStore(t *testing.T) *store.Store {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("gallery"),
		postgres.WithUsername("gallery"),
		postgres.WithPassword("gallery"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "failed to start PostgreSQL container")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	migrator, err := database.NewMigrator(connStr, logging.Discard())
	require.NoError(t, err)
	require.NoError(t, migrator.Run())
	require.NoError(t, migrator.Close())

	db, err := database.Open(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return store.New(db)
}

func TestIntegration_PaintingLifecycle(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	artist := &models.User{Email: "monet@example.com", Username: "monet", FullName: "Claude Monet",
		HashedPassword: "x", Role: models.RoleArtist, IsActive: true}
	require.NoError(t, s.CreateUser(ctx, artist))

	dup := &models.User{Email: "monet@example.com", Username: "other", FullName: "x",
		HashedPassword: "x", Role: models.RoleArtist, IsActive: true}
	err := s.CreateUser(ctx, dup)
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	category := &models.Category{Name: "Impressionism"}
	require.NoError(t, s.CreateCategory(ctx, category))

	price := 250.0
	p := &models.Painting{Title: "Water Lilies", ArtistID: artist.ID, CategoryID: &category.ID,
		ImageURL: "http://localhost/uploads/paintings/a.png", Price: &price, Status: models.StatusPublished}
	require.NoError(t, s.CreatePainting(ctx, p))

	got, err := s.GetPainting(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Artist)
	assert.Equal(t, "monet", got.Artist.Username)
	require.NotNil(t, got.Category)
	assert.Equal(t, "Impressionism", got.Category.Name)

	search := "lilies"
	list, total, err := s.ListPaintings(ctx, store.PaintingListParams{
		Filters: models.PaintingFilters{Search: &search},
		Sort:    models.SortPriceHigh,
		Limit:   10,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, list, 1)

	require.NoError(t, s.IncrementViewCount(ctx, p.ID))
	got, err = s.GetPainting(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ViewCount)

	require.NoError(t, s.DeletePainting(ctx, p.ID))
	_, err = s.GetPainting(ctx, p.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestIntegration_ConcurrentRatingsKeepAggregateConsistent(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	artist := &models.User{Email: "a@example.com", Username: "a", FullName: "A",
		HashedPassword: "x", Role: models.RoleArtist, IsActive: true}
	require.NoError(t, s.CreateUser(ctx, artist))
	p := &models.Painting{Title: "Sunrise", ArtistID: artist.ID, ImageURL: "x", Status: models.StatusPublished}
	require.NoError(t, s.CreatePainting(ctx, p))

	const raters = 10
	var raterIDs []int64
	for i := 0; i < raters; i++ {
		u := &models.User{Email: string(rune('a'+i)) + "@r.io", Username: "rater" + string(rune('a'+i)),
			FullName: "R", HashedPassword: "x", Role: models.RoleEnthusiast, IsActive: true}
		require.NoError(t, s.CreateUser(ctx, u))
		raterIDs = append(raterIDs, u.ID)
	}

	var wg sync.WaitGroup
	for i, id := range raterIDs {
		wg.Add(1)
		go func(userID int64, score int) {
			defer wg.Done()
			_, err := s.UpsertRating(ctx, userID, p.ID, score)
			assert.NoError(t, err)
		}(id, i%5+1)
	}
	wg.Wait()

	got, err := s.GetPainting(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, raters, got.RatingCount)
	assert.Equal(t, 3.0, got.AverageRating)
}
