package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"art-gallery-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatePainting(t *testing.T) {
	app := newTestApp(t)
	_, artist := app.signup(t, "turner", models.RoleArtist)
	ann, annToken := app.signup(t, "ann", models.RoleEnthusiast)
	_, bobToken := app.signup(t, "bob", models.RoleEnthusiast)
	p := app.uploadPainting(t, artist, map[string]string{"title": "Rain, Steam and Speed"})

	w := app.doJSON(t, http.MethodPost, "/ratings", "", models.RatingCreate{PaintingID: p.ID, Rating: 5})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.doJSON(t, http.MethodPost, "/ratings", artist, models.RatingCreate{PaintingID: p.ID, Rating: 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.doJSON(t, http.MethodPost, "/ratings", annToken, models.RatingCreate{PaintingID: p.ID, Rating: 6})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.doJSON(t, http.MethodPost, "/ratings", annToken, models.RatingCreate{PaintingID: 999, Rating: 3})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.doJSON(t, http.MethodPost, "/ratings", annToken, models.RatingCreate{PaintingID: p.ID, Rating: 4})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	rating := decode[models.RatingResponse](t, w)
	assert.Equal(t, ann.ID, rating.UserID)
	require.NotNil(t, rating.User)
	assert.Equal(t, "ann", rating.User.Username)

	w = app.doJSON(t, http.MethodPost, "/ratings", bobToken, models.RatingCreate{PaintingID: p.ID, Rating: 1})
	require.Equal(t, http.StatusCreated, w.Code)

	// re-rating replaces the earlier score
	w = app.doJSON(t, http.MethodPost, "/ratings", annToken, models.RatingCreate{PaintingID: p.ID, Rating: 2})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, rating.ID, decode[models.RatingResponse](t, w).ID)

	w = app.do(t, http.MethodGet, idPath("/paintings", p.ID), "", nil, "")
	got := decode[models.PaintingResponse](t, w)
	assert.Equal(t, 2, got.RatingCount)
	assert.InDelta(t, 1.5, got.AverageRating, 0.001)

	w = app.do(t, http.MethodGet, fmt.Sprintf("/ratings/%d/rating/%d", p.ID, ann.ID), "", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, decode[models.RatingResponse](t, w).Rating)

	w = app.do(t, http.MethodGet, fmt.Sprintf("/ratings/%d/rating/%d", p.ID, 999), "", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
