package handlers

import (
	"net/http"

	"art-gallery-backend/internal/models"
	"art-gallery-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CategoriesHandler struct {
	categories *services.CategoryService
	log        logrus.FieldLogger
}

func NewCategoriesHandler(categories *services.CategoryService, log logrus.FieldLogger) *CategoriesHandler {
	return &CategoriesHandler{categories: categories, log: log}
}

// ListCategories godoc
// @Summary     List categories
// @Tags        categories
// @Produce     json
// @Success     200 {array} models.CategoryResponse
// @Router      /categories [get]
func (h *CategoriesHandler) ListCategories(c *gin.Context) {
	categories, err := h.categories.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, models.NewCategoryResponses(categories))
}

// GetCategory godoc
// @Summary     Get a category
// @Tags        categories
// @Produce     json
// @Param       id path int true "Category ID"
// @Success     200 {object} models.CategoryResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /categories/{id} [get]
func (h *CategoriesHandler) GetCategory(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	category, err := h.categories.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, models.NewCategoryResponse(category))
}

// CreateCategory godoc
// @Summary     Create a category
// @Description Artists only. Names are unique.
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CategoryCreate true "Category"
// @Success     201 {object} models.CategoryResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /categories [post]
func (h *CategoriesHandler) CreateCategory(c *gin.Context) {
	var req models.CategoryCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, bindError(err))
		return
	}

	category, err := h.categories.CreateCategory(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, models.NewCategoryResponse(category))
}
