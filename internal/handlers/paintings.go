package handlers

import (
	"errors"
	"net/http"

	"art-gallery-backend/internal/apperr"
	"art-gallery-backend/internal/metrics"
	"art-gallery-backend/internal/models"
	"art-gallery-backend/internal/services"
	"art-gallery-backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sirupsen/logrus"
)

type PaintingsHandler struct {
	paintings *services.PaintingService
	images    *storage.ImageService
	log       logrus.FieldLogger
}

func NewPaintingsHandler(paintings *services.PaintingService, images *storage.ImageService, log logrus.FieldLogger) *PaintingsHandler {
	return &PaintingsHandler{paintings: paintings, images: images, log: log}
}

// ListPaintings godoc
// @Summary     List paintings
// @Description Paginated listing with optional filters. Filters combine with AND.
// @Tags        paintings
// @Produce     json
// @Param       page         query int    false "Page number" default(1)
// @Param       limit        query int    false "Page size (max 50)" default(10)
// @Param       category_id  query int    false "Category ID"
// @Param       min_price    query number false "Minimum price"
// @Param       max_price    query number false "Maximum price"
// @Param       year_created query int    false "Year created"
// @Param       artist_id    query int    false "Artist ID"
// @Param       min_rating   query number false "Minimum average rating"
// @Param       tags         query string false "Tag substring"
// @Param       search       query string false "Case-insensitive title or description search"
// @Param       sort_by      query string false "Sort order" Enums(newest, oldest, price_low, price_high, rating_high, rating_low, most_viewed, title_az, title_za)
// @Success     200 {object} models.PaginatedResponse[models.PaintingResponse]
// @Failure     400 {object} models.ErrorResponse
// @Router      /paintings [get]
func (h *PaintingsHandler) ListPaintings(c *gin.Context) {
	var q models.PaintingQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, h.log, bindError(err))
		return
	}

	sort, err := models.ParseSortOption(q.SortBy)
	if err != nil {
		respondError(c, h.log, apperr.Validation("%s", err.Error()))
		return
	}

	paintings, total, err := h.paintings.ListPaintings(c.Request.Context(), q.Pagination, q.PaintingFilters, sort)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, models.NewPage(models.NewPaintingResponses(paintings), total, q.Pagination))
}

// GetPainting godoc
// @Summary     Get a painting
// @Description Returns the painting with its artist and category, and counts a view.
// @Tags        paintings
// @Produce     json
// @Param       id path int true "Painting ID"
// @Success     200 {object} models.PaintingResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /paintings/{id} [get]
func (h *PaintingsHandler) GetPainting(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	painting, err := h.paintings.GetPainting(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	if h.paintings.IncrementViewCount(c.Request.Context(), id) {
		painting.ViewCount++
		metrics.RecordPaintingView()
	}
	c.JSON(http.StatusOK, models.NewPaintingResponse(painting))
}

// CreatePainting godoc
// @Summary     Upload a painting
// @Description Artists only. Stores the image, generates a thumbnail and publishes the painting.
// @Tags        paintings
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       title        formData string true  "Title"
// @Param       description  formData string false "Description"
// @Param       category_id  formData int    false "Category ID"
// @Param       price        formData number false "Price"
// @Param       year_created formData int    false "Year created"
// @Param       dimensions   formData string false "Dimensions"
// @Param       medium       formData string false "Medium"
// @Param       tags         formData string false "Comma separated tags"
// @Param       image        formData file   true  "Image file"
// @Success     201 {object} models.PaintingResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     413 {object} models.ErrorResponse
// @Router      /paintings [post]
func (h *PaintingsHandler) CreatePainting(c *gin.Context) {
	artistID, err := currentUser(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var req models.PaintingCreate
	if err := c.ShouldBindWith(&req, binding.FormMultipart); err != nil {
		respondError(c, h.log, bindError(err))
		return
	}

	file, err := c.FormFile("image")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		respondError(c, h.log, apperr.Validation("invalid image upload"))
		return
	}

	ctx := c.Request.Context()
	imageURL, thumbnailURL, err := h.images.SaveImage(ctx, file)
	if err != nil {
		metrics.RecordImageUpload(apperr.KindOf(err).String())
		respondError(c, h.log, err)
		return
	}
	metrics.RecordImageUpload("stored")

	painting, err := h.paintings.CreatePainting(ctx, req, artistID, imageURL, thumbnailURL)
	if err != nil {
		h.images.DeleteImageFiles(ctx, imageURL, thumbnailURL)
		respondError(c, h.log, err)
		return
	}

	metrics.RecordPaintingCreated()
	h.log.WithFields(logrus.Fields{"painting_id": painting.ID, "artist_id": artistID}).Info("painting created")
	c.JSON(http.StatusCreated, models.NewPaintingResponse(painting))
}

// UpdatePainting godoc
// @Summary     Update a painting
// @Description Owner only. Applies a partial update; paintings owned by someone else report 404.
// @Tags        paintings
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id      path int                   true "Painting ID"
// @Param       request body models.PaintingUpdate true "Fields to change"
// @Success     200 {object} models.PaintingResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /paintings/{id} [put]
func (h *PaintingsHandler) UpdatePainting(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var req models.PaintingUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, bindError(err))
		return
	}

	painting, err := h.paintings.UpdatePainting(c.Request.Context(), id, req, userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, models.NewPaintingResponse(painting))
}

// DeletePainting godoc
// @Summary     Delete a painting
// @Description Owner only. Removes the painting, its ratings and comments, and its image files.
// @Tags        paintings
// @Security    Bearer
// @Param       id path int true "Painting ID"
// @Success     204
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /paintings/{id} [delete]
func (h *PaintingsHandler) DeletePainting(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	ctx := c.Request.Context()
	painting, err := h.paintings.DeletePainting(ctx, id, userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	urls := []string{painting.ImageURL}
	if painting.ThumbnailURL != nil {
		urls = append(urls, *painting.ThumbnailURL)
	}
	h.images.DeleteImageFiles(ctx, urls...)

	c.Status(http.StatusNoContent)
}
