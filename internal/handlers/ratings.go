package handlers

import (
	"net/http"

	"art-gallery-backend/internal/metrics"
	"art-gallery-backend/internal/models"
	"art-gallery-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type RatingsHandler struct {
	ratings *services.RatingService
	log     logrus.FieldLogger
}

func NewRatingsHandler(ratings *services.RatingService, log logrus.FieldLogger) *RatingsHandler {
	return &RatingsHandler{ratings: ratings, log: log}
}

// RatePainting godoc
// @Summary     Rate a painting
// @Description Creates or replaces the caller's 1-5 rating and refreshes the painting's average. Artists cannot rate their own work.
// @Tags        ratings
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.RatingCreate true "Rating"
// @Success     201 {object} models.RatingResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /ratings [post]
func (h *RatingsHandler) RatePainting(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var req models.RatingCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, bindError(err))
		return
	}

	rating, err := h.ratings.UpsertRating(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	metrics.RecordRating(rating.Rating)
	c.JSON(http.StatusCreated, models.NewRatingResponse(rating))
}

// GetUserRating godoc
// @Summary     Get a user's rating of a painting
// @Tags        ratings
// @Produce     json
// @Param       painting_id path int true "Painting ID"
// @Param       user_id     path int true "User ID"
// @Success     200 {object} models.RatingResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /ratings/{painting_id}/rating/{user_id} [get]
func (h *RatingsHandler) GetUserRating(c *gin.Context) {
	paintingID, err := pathID(c, "painting_id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	userID, err := pathID(c, "user_id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	rating, err := h.ratings.GetUserRating(c.Request.Context(), userID, paintingID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, models.NewRatingResponse(rating))
}
